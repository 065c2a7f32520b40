package modal

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dehaleesankr/folio/internal/clock"
	"github.com/dehaleesankr/folio/internal/conversation"
)

const maxDraftBody = 16 << 10

type draftRequest struct {
	Reason string `json:"reason"`
}

type draftResponse struct {
	Message string `json:"message"`
}

// handleDraft runs one draft-helper session without a socket, for pages that
// only want the contact form filled.
func (h *Handler) handleDraft(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxDraftBody)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Reason) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "reason is required"})
		return
	}

	presenter := conversation.NewHeadlessPresenter()
	// Nobody watches the transitions, so they never need to fire.
	controller := conversation.New(h.provider, presenter,
		h.controllerOptions(uuid.New().String(), clock.NewManual())...)
	defer controller.Shutdown()

	if err := controller.Open(conversation.ModeDraftHelper); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if _, err := controller.Submit(r.Context(), req.Reason); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, draftResponse{Message: presenter.ContactMessage()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
