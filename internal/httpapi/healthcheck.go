package httpapi

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Asad-28/weather-app/internal/utils"
)

// ConnectionReporter is satisfied by the MQTT publisher.
type ConnectionReporter interface {
	IsConnected() bool
}

type healthcheckerImpl struct {
	db   *sql.DB
	mqtt ConnectionReporter
}

func (h *healthcheckerImpl) handleHealthz(w http.ResponseWriter, r *http.Request) {
	var ok int
	if err := h.db.QueryRowContext(r.Context(), `SELECT 1`).Scan(&ok); err != nil {
		slog.Error("failed to check database connectivity", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to check database connectivity")
		return
	}

	// MQTT is best effort; it never fails the check.
	mqttStatus := "disabled"
	if h.mqtt != nil {
		mqttStatus = "disconnected"
		if h.mqtt.IsConnected() {
			mqttStatus = "connected"
		}
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok", "mqtt": mqttStatus})
}

// registerHealthcheck mounts GET /healthz. Pass a nil reporter when MQTT is off.
func registerHealthcheck(r chi.Router, db *sql.DB, mqtt ConnectionReporter) {
	h := &healthcheckerImpl{db: db, mqtt: mqtt}
	r.Get("/healthz", h.handleHealthz)
}
