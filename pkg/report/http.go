package report

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/clinscribe-ai/platform/pkg/common/logger"
	"github.com/clinscribe-ai/platform/pkg/common/models"
	"github.com/clinscribe-ai/platform/pkg/summary"
	"github.com/gorilla/mux"
)

type HTTPHandler struct {
	service *Service
	maxBody int64
}

func NewHTTPHandler(service *Service, maxBody int64) *HTTPHandler {
	return &HTTPHandler{service: service, maxBody: maxBody}
}

func (h *HTTPHandler) Register(router *mux.Router) {
	router.HandleFunc("/api/v1/reports/{id}", h.handleGet).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/sections", h.handleSections).Methods(http.MethodPost)
}

func (h *HTTPHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	rep, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "report not found", http.StatusNotFound)
			return
		}
		logger.Log.WithError(err).Error("failed to fetch report")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rep)
}

// handleSections parses a caller-supplied narrative without generating or
// persisting anything. Useful for re-rendering stored narratives.
func (h *HTTPHandler) handleSections(w http.ResponseWriter, r *http.Request) {
	if h.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}

	var req models.SectionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.WithError(err).Warn("invalid sections payload")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Narrative == "" {
		http.Error(w, "narrative required", http.StatusBadRequest)
		return
	}

	sections := summary.Parse(req.Narrative)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		Sections summary.Sections `json:"sections"`
	}{Sections: sections})
}
