package handlers

import (
	"log/slog"
	"net/http"
)

// statsSource is anything that can describe its own state
type statsSource interface {
	Stats() map[string]interface{}
}

// AdminHandler exposes operator statistics
type AdminHandler struct {
	catalog dishCounter
	dedupe  statsSource
	logger  *slog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(catalog dishCounter, dedupe statsSource, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		catalog: catalog,
		dedupe:  dedupe,
		logger:  logger,
	}
}

// GetStats handles GET /api/admin/stats
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats := map[string]interface{}{
		"catalog": map[string]interface{}{
			"dishes": h.catalog.Count(),
		},
		"dedupe": h.dedupe.Stats(),
	}

	WriteJSON(w, http.StatusOK, stats, h.logger)
}
