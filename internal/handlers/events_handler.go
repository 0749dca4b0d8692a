package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Lixing-Zhang/restaurant-site/backend/internal/service"
)

// EventsHandler serves event packages and price quotes
type EventsHandler struct {
	service *service.EventService
	logger  *slog.Logger
}

// NewEventsHandler creates a new EventsHandler
func NewEventsHandler(service *service.EventService, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{
		service: service,
		logger:  logger,
	}
}

// ListPackages handles GET /api/events/packages
func (h *EventsHandler) ListPackages(w http.ResponseWriter, r *http.Request) {
	packages, err := h.service.Packages(r.Context())
	if err != nil {
		h.logger.Error("failed to list event packages", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, packages, h.logger)
}

// Quote handles GET /api/events/quote?packageId=1&guests=25
// A missing or unknown package yields {"available": false} rather than a zero total.
func (h *EventsHandler) Quote(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	var packageID int64
	if v := values.Get("packageId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid package ID", h.logger)
			return
		}
		packageID = id
	}

	guests, err := strconv.Atoi(values.Get("guests"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid guest count", h.logger)
		return
	}

	quote, err := h.service.Quote(r.Context(), packageID, guests)
	if err != nil {
		if errors.Is(err, service.ErrInvalidGuests) {
			WriteError(w, http.StatusBadRequest, "Invalid guest count", h.logger)
			return
		}
		h.logger.Error("failed to quote event", "packageId", packageID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, quote, h.logger)
}
