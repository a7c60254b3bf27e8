package mark

import (
	"time"
)

// Kind is a presence event type. The wire values are inherited from the
// original attendance system and are part of the stored data contract.
type Kind string

const (
	KindCheckIn  Kind = "entrada"
	KindBreak    Kind = "descanso"
	KindCheckOut Kind = "salida"
)

// Valid reports whether k is one of the three presence event types.
func (k Kind) Valid() bool {
	switch k {
	case KindCheckIn, KindBreak, KindCheckOut:
		return true
	}
	return false
}

// DayStatus is the derived presence state for one user's day. It is computed
// from the day's marks and never persisted.
type DayStatus string

const (
	StatusNoRecord DayStatus = "SIN_REGISTRO"
	StatusWorking  DayStatus = "TRABAJANDO"
	StatusOnBreak  DayStatus = "DESCANSANDO"
	StatusDone     DayStatus = "TERMINADO"
)

// Mark is one presence event in the ledger. Marks are ordered by At within a
// (user, day) scope; break marks occur in open/close pairs, and an odd count
// means a break is currently open. Marks are never hard-deleted in normal
// operation, only deactivated.
type Mark struct {
	ID        int64
	UserID    int64
	TeamID    int64
	Kind      Kind
	At        time.Time
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
