package http

import (
	"net/http"
	"strconv"

	"github.com/teampulse/attendance-backend-go/internal/domain/report"
	"github.com/teampulse/attendance-backend-go/internal/handler/http/response"
	"github.com/teampulse/attendance-backend-go/internal/pkg/identity"
)

type ReportHandler interface {
	Range(w http.ResponseWriter, r *http.Request)
	TeamDay(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// Range implements ReportHandler. Without a user_id parameter the report is
// scoped to the caller's whole team.
func (h *reportHandlerImpl) Range(w http.ResponseWriter, r *http.Request) {
	filter := report.RangeFilter{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	if v := r.URL.Query().Get("user_id"); v != "" {
		userID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.BadRequest(w, "Invalid user_id", nil)
			return
		}
		filter.UserID = &userID
	} else {
		_, teamID, err := identity.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}
		filter.TeamID = &teamID
	}

	result, err := h.reportService.Range(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// TeamDay implements ReportHandler.
func (h *reportHandlerImpl) TeamDay(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.TeamDay(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
