package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Lixing-Zhang/restaurant-site/backend/internal/dedupe"
	"github.com/Lixing-Zhang/restaurant-site/backend/internal/metrics"
	"github.com/Lixing-Zhang/restaurant-site/backend/internal/models"
	"github.com/Lixing-Zhang/restaurant-site/backend/internal/notify"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrDuplicateSubmission = errors.New("duplicate submission")
	ErrDispatchFailed      = errors.New("failed to dispatch inquiry")
)

// BookingTimeSlots are the reservable lunch and dinner slots
var BookingTimeSlots = []string{
	"11:00 AM", "11:30 AM", "12:00 PM", "12:30 PM", "1:00 PM", "1:30 PM",
	"2:00 PM", "2:30 PM", "6:00 PM", "6:30 PM", "7:00 PM", "7:30 PM",
	"8:00 PM", "8:30 PM", "9:00 PM", "9:30 PM", "10:00 PM", "10:30 PM",
}

// ValidationError lists the fields that failed validation, keyed by JSON name
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	slices.Sort(names)
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(names, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// DuplicateGuard remembers recent submissions. Reserve must claim key
// atomically so two identical in-flight submissions cannot both pass.
type DuplicateGuard interface {
	Reserve(key string) bool
	Release(key string)
	Remember(key string)
}

// InquiryRules bounds what the forms accept
type InquiryRules struct {
	BookingAdvanceDays int
	BookingMaxGuests   int
	EventMinGuests     int
	EventMaxGuests     int
}

// DefaultInquiryRules returns the limits the site has always used
func DefaultInquiryRules() InquiryRules {
	return InquiryRules{
		BookingAdvanceDays: 30,
		BookingMaxGuests:   10,
		EventMinGuests:     10,
		EventMaxGuests:     200,
	}
}

// InquiryService validates form submissions and forwards them to staff
type InquiryService struct {
	sender   notify.Sender
	guard    DuplicateGuard
	events   *EventService
	rules    InquiryRules
	validate *validator.Validate
	now      func() time.Time
	log      *slog.Logger
}

// NewInquiryService creates a new inquiry service. guard may be nil to disable duplicate detection.
func NewInquiryService(sender notify.Sender, guard DuplicateGuard, events *EventService, rules InquiryRules, log *slog.Logger) *InquiryService {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &InquiryService{
		sender:   sender,
		guard:    guard,
		events:   events,
		rules:    rules,
		validate: v,
		now:      time.Now,
		log:      log,
	}
}

// SetClock overrides the time source used for date rules
func (s *InquiryService) SetClock(now func() time.Time) {
	s.now = now
}

// SubmitContact forwards the contact form
func (s *InquiryService) SubmitContact(ctx context.Context, req models.ContactRequest) (*models.InquiryReceipt, error) {
	if err := s.check(req, nil); err != nil {
		return nil, s.reject(models.InquiryContact, err)
	}

	params := notify.Params{
		"from_name":  req.Name,
		"from_email": req.Email,
		"phone":      req.Phone,
		"message":    req.Message,
	}
	key := []string{string(models.InquiryContact), req.Email, req.Message}

	return s.dispatch(ctx, models.InquiryContact, key, params, nil)
}

// SubmitBooking forwards a table booking
func (s *InquiryService) SubmitBooking(ctx context.Context, req models.BookingRequest) (*models.InquiryReceipt, error) {
	fields := make(map[string]string)

	if req.Guests > s.rules.BookingMaxGuests {
		fields["guests"] = fmt.Sprintf("must be between 1 and %d", s.rules.BookingMaxGuests)
	}
	if req.Time != "" && !slices.Contains(BookingTimeSlots, req.Time) {
		fields["time"] = "not an available time slot"
	}
	if date, ok := s.parseDate(req.Date); ok {
		today := s.today()
		last := today.AddDate(0, 0, s.rules.BookingAdvanceDays)
		if date.Before(today) || date.After(last) {
			fields["date"] = fmt.Sprintf("must be within the next %d days", s.rules.BookingAdvanceDays)
		}
	}

	if err := s.check(req, fields); err != nil {
		return nil, s.reject(models.InquiryBooking, err)
	}

	params := notify.Params{
		"type":             "Table Booking",
		"name":             req.Name,
		"email":            req.Email,
		"phone":            req.Phone,
		"date":             req.Date,
		"time":             req.Time,
		"guests":           strconv.Itoa(req.Guests),
		"special_requests": req.SpecialRequests,
	}
	key := []string{string(models.InquiryBooking), req.Email, req.Phone, req.Date, req.Time}

	return s.dispatch(ctx, models.InquiryBooking, key, params, nil)
}

// SubmitEventInquiry forwards a private event inquiry with its price estimate
func (s *InquiryService) SubmitEventInquiry(ctx context.Context, req models.EventInquiryRequest) (*models.InquiryReceipt, error) {
	fields := make(map[string]string)

	if req.Guests != 0 && (req.Guests < s.rules.EventMinGuests || req.Guests > s.rules.EventMaxGuests) {
		fields["guests"] = fmt.Sprintf("must be between %d and %d", s.rules.EventMinGuests, s.rules.EventMaxGuests)
	}
	if date, ok := s.parseDate(req.EventDate); ok && date.Before(s.today()) {
		fields["eventDate"] = "must not be in the past"
	}

	pkg, err := s.events.Package(ctx, req.PackageID)
	if err != nil {
		return nil, err
	}
	if req.PackageID != 0 && pkg == nil {
		fields["packageId"] = "unknown package"
	}

	if err := s.check(req, fields); err != nil {
		return nil, s.reject(models.InquiryEvent, err)
	}

	quote := s.events.calculator.Quote(pkg, req.Guests)

	packageName := "Custom"
	if pkg != nil {
		packageName = pkg.Name
	}

	params := notify.Params{
		"type":       "Event Inquiry",
		"name":       req.Name,
		"email":      req.Email,
		"phone":      req.Phone,
		"event_type": req.EventType,
		"event_date": req.EventDate,
		"guests":     strconv.Itoa(req.Guests),
		"package":    packageName,
		"message":    req.Message,
	}
	if quote.Available {
		params["estimate"] = strconv.FormatInt(quote.Total, 10)
	}
	key := []string{string(models.InquiryEvent), req.Email, req.Phone, req.EventDate, req.EventType}

	var q *models.EventQuote
	if quote.Available {
		q = &quote
	}
	return s.dispatch(ctx, models.InquiryEvent, key, params, q)
}

// check runs struct validation and merges it with rule violations found by the caller
func (s *InquiryService) check(req interface{}, fields map[string]string) error {
	if fields == nil {
		fields = make(map[string]string)
	}

	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			if _, exists := fields[fe.Field()]; !exists {
				fields[fe.Field()] = describe(fe)
			}
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "is invalid"
	}
}

func (s *InquiryService) reject(kind models.InquiryKind, err error) error {
	metrics.InquiriesTotal.WithLabelValues(string(kind), "invalid").Inc()
	return err
}

// dispatch sends params unless an identical submission was recently accepted
// or is being sent right now. A submission is only remembered after it was
// delivered, so failed sends can be retried.
func (s *InquiryService) dispatch(ctx context.Context, kind models.InquiryKind, key []string, params notify.Params, quote *models.EventQuote) (*models.InquiryReceipt, error) {
	fingerprint := dedupe.Fingerprint(key...)

	if s.guard != nil && !s.guard.Reserve(fingerprint) {
		metrics.InquiriesTotal.WithLabelValues(string(kind), "duplicate").Inc()
		return nil, ErrDuplicateSubmission
	}

	receipt := &models.InquiryReceipt{
		ID:          uuid.New().String(),
		Kind:        kind,
		SubmittedAt: s.now().UTC(),
		Quote:       quote,
	}
	params["reference"] = receipt.ID

	if err := s.sender.Send(ctx, params); err != nil {
		if s.guard != nil {
			s.guard.Release(fingerprint)
		}
		s.log.Error("failed to dispatch inquiry", "kind", kind, "reference", receipt.ID, "error", err)
		metrics.InquiriesTotal.WithLabelValues(string(kind), "failed").Inc()
		return nil, fmt.Errorf("%w: %w", ErrDispatchFailed, err)
	}

	if s.guard != nil {
		s.guard.Remember(fingerprint)
	}

	metrics.InquiriesTotal.WithLabelValues(string(kind), "sent").Inc()
	s.log.Info("inquiry dispatched", "kind", kind, "reference", receipt.ID)
	return receipt, nil
}

func (s *InquiryService) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// parseDate reads a YYYY-MM-DD date in the clock's location. Malformed dates
// are left to struct validation.
func (s *InquiryService) parseDate(value string) (time.Time, bool) {
	date, err := time.ParseInLocation("2006-01-02", value, s.now().Location())
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}
