package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/teampulse/attendance-backend-go/internal/domain/editrequest"
	"github.com/teampulse/attendance-backend-go/internal/handler/http/response"
)

type EditRequestHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	MissingExits(w http.ResponseWriter, r *http.Request)
	RequestMissingExit(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type editRequestHandlerImpl struct {
	editRequestService editrequest.EditRequestService
}

func NewEditRequestHandler(editRequestService editrequest.EditRequestService) EditRequestHandler {
	return &editRequestHandlerImpl{
		editRequestService: editRequestService,
	}
}

// Submit implements EditRequestHandler.
func (h *editRequestHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req editrequest.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.editRequestService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Edit request submitted", result)
}

// Approve implements EditRequestHandler.
func (h *editRequestHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.BadRequest(w, "Invalid request id", nil)
		return
	}

	result, err := h.editRequestService.Approve(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Edit request approved", result)
}

// Reject implements EditRequestHandler.
func (h *editRequestHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.BadRequest(w, "Invalid request id", nil)
		return
	}

	result, err := h.editRequestService.Reject(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Edit request rejected", result)
}

// MissingExits implements EditRequestHandler.
func (h *editRequestHandlerImpl) MissingExits(w http.ResponseWriter, r *http.Request) {
	windowDays := queryInt(r, "window_days", 30)

	days, err := h.editRequestService.MissingExitCheck(r.Context(), windowDays)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, days)
}

// RequestMissingExit implements EditRequestHandler.
func (h *editRequestHandlerImpl) RequestMissingExit(w http.ResponseWriter, r *http.Request) {
	var req editrequest.MissingExitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.editRequestService.RequestMissingExit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Missing exit request submitted", result)
}

// List implements EditRequestHandler.
func (h *editRequestHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := editrequest.ListRequestsFilter{
		OnlyPending: r.URL.Query().Get("pending") == "true",
		Page:        queryInt(r, "page", 1),
		Limit:       queryInt(r, "limit", 20),
	}

	requests, total, err := h.editRequestService.ListForTeam(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, requests, &response.Meta{
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalItems: total,
	})
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
