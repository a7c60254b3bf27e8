package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/teampulse/attendance-backend-go/internal/domain/mark"
	"github.com/teampulse/attendance-backend-go/internal/handler/http/response"
)

type MarkHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type markHandlerImpl struct {
	markService mark.MarkService
}

func NewMarkHandler(markService mark.MarkService) MarkHandler {
	return &markHandlerImpl{
		markService: markService,
	}
}

// Register implements MarkHandler.
func (h *markHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var req mark.RegisterMarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.markService.Register(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Mark registered", result)
}

// Today implements MarkHandler.
func (h *markHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	result, err := h.markService.Today(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements MarkHandler.
func (h *markHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := mark.ListMarksFilter{
		Page:  queryInt(r, "page", 1),
		Limit: queryInt(r, "limit", 20),
	}
	if v := r.URL.Query().Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := r.URL.Query().Get("end_date"); v != "" {
		filter.EndDate = &v
	}

	result, err := h.markService.ListMine(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
