package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/restaurant-site/backend/internal/menu"
	"github.com/Lixing-Zhang/restaurant-site/backend/internal/metrics"
	"github.com/Lixing-Zhang/restaurant-site/backend/internal/models"
	"github.com/Lixing-Zhang/restaurant-site/backend/internal/repository"
	"github.com/Lixing-Zhang/restaurant-site/backend/internal/service"
)

// MenuHandler handles menu browsing requests
type MenuHandler struct {
	service *service.MenuService
	logger  *slog.Logger
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(service *service.MenuService, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger,
	}
}

// MenuResponse is the derived dish list
type MenuResponse struct {
	Dishes []models.Dish `json:"dishes"`
	Count  int           `json:"count"`
}

// ListDishes handles GET /api/menu
// Query parameters: category, search, sort, popular, special.
// An empty result is returned as 200 with an empty list.
func (h *MenuHandler) ListDishes(w http.ResponseWriter, r *http.Request) {
	q, err := parseMenuQuery(r)
	if err != nil {
		h.logger.Warn("invalid menu query", "query", r.URL.RawQuery, "error", err)
		WriteError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	dishes, err := h.service.Query(r.Context(), q)
	if err != nil {
		if errors.Is(err, service.ErrUnknownCategory) {
			WriteError(w, http.StatusBadRequest, "Unknown category", h.logger)
			return
		}
		h.logger.Error("failed to query menu", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	metrics.MenuQueriesTotal.WithLabelValues(string(q.Sort)).Inc()
	WriteJSON(w, http.StatusOK, MenuResponse{Dishes: dishes, Count: len(dishes)}, h.logger)
}

func parseMenuQuery(r *http.Request) (menu.Query, error) {
	values := r.URL.Query()
	q := menu.DefaultQuery()

	if category := values.Get("category"); category != "" {
		q.Category = category
	}
	q.Search = values.Get("search")

	sort, err := menu.ParseSortMode(values.Get("sort"))
	if err != nil {
		return q, err
	}
	q.Sort = sort

	if q.PopularOnly, err = parseFlag(values.Get("popular")); err != nil {
		return q, errors.New("popular must be true or false")
	}
	if q.SpecialOnly, err = parseFlag(values.Get("special")); err != nil {
		return q, errors.New("special must be true or false")
	}

	return q, nil
}

func parseFlag(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}

// ListCategories handles GET /api/menu/categories
func (h *MenuHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		h.logger.Error("failed to list categories", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, categories, h.logger)
}

// PopularHighlights handles GET /api/menu/popular
func (h *MenuHandler) PopularHighlights(w http.ResponseWriter, r *http.Request) {
	dishes, err := h.service.PopularHighlights(r.Context())
	if err != nil {
		h.logger.Error("failed to list popular dishes", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, dishes, h.logger)
}

// ChefsSpecials handles GET /api/menu/specials
func (h *MenuHandler) ChefsSpecials(w http.ResponseWriter, r *http.Request) {
	dishes, err := h.service.ChefsSpecials(r.Context())
	if err != nil {
		h.logger.Error("failed to list chef's specials", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, dishes, h.logger)
}

// GetDish handles GET /api/menu/{dishId}
// - 200: successful operation
// - 400: Invalid ID supplied
// - 404: Dish not found
func (h *MenuHandler) GetDish(w http.ResponseWriter, r *http.Request) {
	dishID := chi.URLParam(r, "dishId")

	id, err := strconv.ParseInt(dishID, 10, 64)
	if err != nil {
		h.logger.Warn("invalid dish ID format", "dishId", dishID, "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	dish, err := h.service.GetDish(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrDishNotFound) {
			h.logger.Info("dish not found", "dishId", id)
			WriteError(w, http.StatusNotFound, "Dish not found", h.logger)
			return
		}

		h.logger.Error("failed to get dish", "dishId", id, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, dish, h.logger)
}
