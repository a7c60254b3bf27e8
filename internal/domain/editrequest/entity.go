package editrequest

import (
	"time"

	"github.com/teampulse/attendance-backend-go/internal/domain/mark"
)

// RequestKind states what an edit request does when approved. Zero targets an
// existing mark; the other values materialize a new mark of the mirrored
// presence kind.
type RequestKind int

const (
	RequestKindEdit        RequestKind = 0
	RequestKindNewCheckIn  RequestKind = 1
	RequestKindNewBreak    RequestKind = 2
	RequestKindNewCheckOut RequestKind = 3
)

// MarkKind maps a new-mark request kind onto the ledger event it creates.
func (k RequestKind) MarkKind() (mark.Kind, bool) {
	switch k {
	case RequestKindNewCheckIn:
		return mark.KindCheckIn, true
	case RequestKindNewBreak:
		return mark.KindBreak, true
	case RequestKindNewCheckOut:
		return mark.KindCheckOut, true
	}
	return "", false
}

// EditRequest is a human-submitted correction to the ledger. MarkID 0 means
// "create a new mark" rather than edit an existing one. A request is terminal
// once Approved or Withdrawn is set; CreatedMarkID records the mark an
// approval materialized, for audit.
type EditRequest struct {
	ID            int64
	MarkID        int64
	UserID        int64
	TeamID        int64
	ProposedAt    time.Time
	Kind          RequestKind
	Approved      bool
	Withdrawn     bool
	CreatedMarkID *int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Pending reports whether the request is still awaiting a decision.
func (r EditRequest) Pending() bool {
	return !r.Approved && !r.Withdrawn
}
