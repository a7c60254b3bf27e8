package http

import (
	"encoding/json"
	"net/http"

	"github.com/teampulse/attendance-backend-go/internal/domain/project"
	"github.com/teampulse/attendance-backend-go/internal/handler/http/response"
)

type ProjectTimeHandler interface {
	Open(w http.ResponseWriter, r *http.Request)
	Close(w http.ResponseWriter, r *http.Request)
	Threshold(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type projectTimeHandlerImpl struct {
	projectTimeService project.ProjectTimeService
}

func NewProjectTimeHandler(projectTimeService project.ProjectTimeService) ProjectTimeHandler {
	return &projectTimeHandlerImpl{
		projectTimeService: projectTimeService,
	}
}

// Open implements ProjectTimeHandler.
func (h *projectTimeHandlerImpl) Open(w http.ResponseWriter, r *http.Request) {
	var req project.OpenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.projectTimeService.Open(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Project time opened", result)
}

// Close implements ProjectTimeHandler.
func (h *projectTimeHandlerImpl) Close(w http.ResponseWriter, r *http.Request) {
	var req project.CloseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.projectTimeService.Close(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Project time closed", result)
}

// Threshold implements ProjectTimeHandler.
func (h *projectTimeHandlerImpl) Threshold(w http.ResponseWriter, r *http.Request) {
	result, err := h.projectTimeService.ThresholdStatus(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements ProjectTimeHandler.
func (h *projectTimeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.projectTimeService.ListMine(
		r.Context(),
		r.URL.Query().Get("start_date"),
		r.URL.Query().Get("end_date"),
	)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
