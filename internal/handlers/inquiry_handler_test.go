package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Lixing-Zhang/restaurant-site/backend/internal/dedupe"
	"github.com/Lixing-Zhang/restaurant-site/backend/internal/models"
	"github.com/Lixing-Zhang/restaurant-site/backend/internal/notify"
	"github.com/Lixing-Zhang/restaurant-site/backend/internal/service"
	"github.com/Lixing-Zhang/restaurant-site/backend/pkg/logger"
)

func newTestInquiryHandler(sender notify.Sender) *InquiryHandler {
	log := logger.New("error")
	guard := dedupe.NewGuard(10*time.Minute, 100)
	svc := service.NewInquiryService(sender, guard, newTestEventService(), service.DefaultInquiryRules(), log)
	return NewInquiryHandler(svc, "+91 98765 43210", log)
}

func okSender() notify.Sender {
	return notify.SenderFunc(func(ctx context.Context, p notify.Params) error { return nil })
}

func postJSON(t *testing.T, handler http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func tomorrow() string {
	return time.Now().AddDate(0, 0, 1).Format("2006-01-02")
}

func TestInquiryHandler_CreateBooking(t *testing.T) {
	handler := newTestInquiryHandler(okSender())

	booking := models.BookingRequest{
		Name:   "Asha Rao",
		Email:  "asha@example.com",
		Phone:  "9876543210",
		Date:   tomorrow(),
		Time:   "8:00 PM",
		Guests: 2,
	}

	w := postJSON(t, handler.CreateBooking, booking)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var receipt models.InquiryReceipt
	if err := json.NewDecoder(w.Body).Decode(&receipt); err != nil {
		t.Fatalf("failed to decode receipt: %v", err)
	}
	if receipt.ID == "" || receipt.Kind != models.InquiryBooking {
		t.Errorf("unexpected receipt: %+v", receipt)
	}

	// same booking again is a duplicate
	w = postJSON(t, handler.CreateBooking, booking)
	if w.Code != http.StatusConflict {
		t.Errorf("expected status 409 for duplicate, got %d", w.Code)
	}
}

func TestInquiryHandler_ValidationError(t *testing.T) {
	handler := newTestInquiryHandler(okSender())

	w := postJSON(t, handler.CreateBooking, models.BookingRequest{
		Name:   "Asha Rao",
		Email:  "not-an-email",
		Phone:  "9876543210",
		Date:   tomorrow(),
		Time:   "4:15 PM",
		Guests: 2,
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}

	var resp validationResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if _, ok := resp.Fields["email"]; !ok {
		t.Errorf("expected email field error, got %v", resp.Fields)
	}
	if _, ok := resp.Fields["time"]; !ok {
		t.Errorf("expected time field error, got %v", resp.Fields)
	}
}

func TestInquiryHandler_InvalidBody(t *testing.T) {
	handler := newTestInquiryHandler(okSender())

	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"name": `},
		{"unknown field", `{"name": "a", "voucher": "FIFTYOFF"}`},
		{"wrong type", `{"guests": "four"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, handler.CreateContact, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", w.Code)
			}
		})
	}
}

func TestInquiryHandler_DispatchFailure(t *testing.T) {
	failing := notify.SenderFunc(func(ctx context.Context, p notify.Params) error {
		return errors.New("connection refused")
	})
	handler := newTestInquiryHandler(failing)

	w := postJSON(t, handler.CreateContact, models.ContactRequest{
		Name:    "Priya",
		Email:   "priya@example.com",
		Message: "Hello",
	})

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", w.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	want := "We could not send your request. Please try again or call us at +91 98765 43210."
	if response["error"] != want {
		t.Errorf("expected %q, got %q", want, response["error"])
	}
}

func TestInquiryHandler_CreateEventInquiry(t *testing.T) {
	var sent notify.Params
	sender := notify.SenderFunc(func(ctx context.Context, p notify.Params) error {
		sent = p
		return nil
	})
	handler := newTestInquiryHandler(sender)

	w := postJSON(t, handler.CreateEventInquiry, models.EventInquiryRequest{
		Name:      "Vikram Singh",
		Email:     "vikram@example.com",
		Phone:     "9876543210",
		EventType: "Anniversary",
		EventDate: tomorrow(),
		Guests:    60,
		PackageID: 2,
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var receipt models.InquiryReceipt
	if err := json.NewDecoder(w.Body).Decode(&receipt); err != nil {
		t.Fatalf("failed to decode receipt: %v", err)
	}
	if receipt.Quote == nil || receipt.Quote.Total != 40000 {
		t.Errorf("expected quote total 40000, got %+v", receipt.Quote)
	}
	if sent["package"] != "Medium Event" || sent["estimate"] != "40000" {
		t.Errorf("unexpected params: %v", sent)
	}
}
