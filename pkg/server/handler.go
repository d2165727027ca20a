package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"pushel/pkg/metrics"
	"pushel/pkg/notification"
)

// notifyHandler dispatches ad-hoc notifications.
type notifyHandler struct {
	notifier notification.Notifier
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// notify handles POST /api/v1/notify. Malformed or invalid payloads are
// client errors, not system faults, so they are not logged as errors.
func (h *notifyHandler) notify(w http.ResponseWriter, r *http.Request) {
	var n notification.Notification
	if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := n.Validate(); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := h.notifier.Send(n); err != nil {
		h.metrics.DispatchesTotal.WithLabelValues(metrics.SourceAdhoc, metrics.StatusFailed).Inc()
		h.logger.Error().Err(err).Str("message", n.Message).Msg("failed to dispatch ad-hoc notification")
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to dispatch notification"})
		return
	}

	h.metrics.DispatchesTotal.WithLabelValues(metrics.SourceAdhoc, metrics.StatusSent).Inc()
	h.logger.Info().Str("message", n.Message).Msg("ad-hoc notification dispatched")
	respondJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
