package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/restaurant-site/backend/internal/models"
	"github.com/Lixing-Zhang/restaurant-site/backend/internal/service"
)

const maxFormBytes = 64 << 10

// InquiryHandler handles the booking, event and contact forms
type InquiryHandler struct {
	service *service.InquiryService
	phone   string
	log     *slog.Logger
}

// NewInquiryHandler creates a new inquiry handler. phone is offered to visitors
// when a submission cannot be delivered.
func NewInquiryHandler(inquiryService *service.InquiryService, phone string, log *slog.Logger) *InquiryHandler {
	return &InquiryHandler{
		service: inquiryService,
		phone:   phone,
		log:     log,
	}
}

// validationResponse lists the fields that failed validation
type validationResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// CreateBooking handles POST /api/booking
func (h *InquiryHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req models.BookingRequest
	handleSubmission(h, w, r, &req, func(ctx context.Context) (*models.InquiryReceipt, error) {
		return h.service.SubmitBooking(ctx, req)
	})
}

// CreateEventInquiry handles POST /api/events/inquiry
func (h *InquiryHandler) CreateEventInquiry(w http.ResponseWriter, r *http.Request) {
	var req models.EventInquiryRequest
	handleSubmission(h, w, r, &req, func(ctx context.Context) (*models.InquiryReceipt, error) {
		return h.service.SubmitEventInquiry(ctx, req)
	})
}

// CreateContact handles POST /api/contact
func (h *InquiryHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	handleSubmission(h, w, r, &req, func(ctx context.Context) (*models.InquiryReceipt, error) {
		return h.service.SubmitContact(ctx, req)
	})
}

// handleSubmission decodes the body into req, runs submit and maps its errors to responses
func handleSubmission[T any](h *InquiryHandler, w http.ResponseWriter, r *http.Request, req *T, submit func(context.Context) (*models.InquiryReceipt, error)) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		h.log.Warn("failed to decode form submission", "path", r.URL.Path, "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	receipt, err := submit(r.Context())
	if err != nil {
		h.writeSubmitError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, receipt, h.log)
}

func (h *InquiryHandler) writeSubmitError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError

	switch {
	case errors.As(err, &verr):
		WriteJSON(w, http.StatusBadRequest, validationResponse{
			Error:  "Validation failed",
			Fields: verr.Fields,
		}, h.log)
	case errors.Is(err, service.ErrDuplicateSubmission):
		WriteError(w, http.StatusConflict, "This request was already received", h.log)
	case errors.Is(err, service.ErrDispatchFailed):
		WriteError(w, http.StatusBadGateway, h.retryMessage(), h.log)
	default:
		h.log.Error("failed to submit form", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
	}
}

func (h *InquiryHandler) retryMessage() string {
	if h.phone == "" {
		return "We could not send your request. Please try again."
	}
	return fmt.Sprintf("We could not send your request. Please try again or call us at %s.", h.phone)
}
