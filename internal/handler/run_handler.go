package handler

import (
	"net/http"
	"time"

	"github.com/entroapps/bookingflow-backend/internal/service"
	"github.com/entroapps/bookingflow-backend/internal/signature"
)

// RunHandler exposes the sweep over HTTP for the external cron caller.
type RunHandler struct {
	Sweeps   service.Sweeper
	Verifier signature.Verifier
	Token    string
}

func NewRunHandler(sweeps service.Sweeper, verifier signature.Verifier, token string) *RunHandler {
	return &RunHandler{Sweeps: sweeps, Verifier: verifier, Token: token}
}

// RunHandler fires one sweep cycle. The caller signs the configured run
// token; a bad signature is rejected before any task is touched.
func (h *RunHandler) RunHandler(w http.ResponseWriter, r *http.Request) {
	if !h.Verifier.Verify(h.Token, r.Header.Get(signature.Header)) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	result, err := h.Sweeps.Run(time.Now())
	if err != nil {
		http.Error(w, "sweep failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}
