package http

import (
	"encoding/json"
	"net/http"

	"github.com/teampulse/attendance-backend-go/internal/domain/overtime"
	"github.com/teampulse/attendance-backend-go/internal/handler/http/response"
)

type OvertimeHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListForTeam(w http.ResponseWriter, r *http.Request)
}

type overtimeHandlerImpl struct {
	overtimeService overtime.OvertimeService
}

func NewOvertimeHandler(overtimeService overtime.OvertimeService) OvertimeHandler {
	return &overtimeHandlerImpl{
		overtimeService: overtimeService,
	}
}

// Submit implements OvertimeHandler.
func (h *overtimeHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req overtime.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.overtimeService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Overtime request submitted", result)
}

// Decide implements OvertimeHandler.
func (h *overtimeHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.BadRequest(w, "Invalid request id", nil)
		return
	}

	var req overtime.DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.overtimeService.Decide(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime request decided", result)
}

// ListMine implements OvertimeHandler.
func (h *overtimeHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	result, err := h.overtimeService.ListMine(r.Context(), overtimeFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListForTeam implements OvertimeHandler.
func (h *overtimeHandlerImpl) ListForTeam(w http.ResponseWriter, r *http.Request) {
	result, err := h.overtimeService.ListForTeam(r.Context(), overtimeFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func overtimeFilter(r *http.Request) overtime.ListFilter {
	filter := overtime.ListFilter{
		Page:  queryInt(r, "page", 1),
		Limit: queryInt(r, "limit", 20),
	}
	if v := r.URL.Query().Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := r.URL.Query().Get("end_date"); v != "" {
		filter.EndDate = &v
	}
	if v := r.URL.Query().Get("outcome"); v != "" {
		outcome := overtime.Outcome(v)
		filter.Outcome = &outcome
	}
	return filter
}
