package models

import "time"

// InquiryKind identifies which form a submission came from
type InquiryKind string

const (
	InquiryContact InquiryKind = "contact"
	InquiryBooking InquiryKind = "booking"
	InquiryEvent   InquiryKind = "event"
)

// ContactRequest represents the contact form
type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,min=7,max=20"`
	Message string `json:"message" validate:"required,max=2000"`
}

// BookingRequest represents the table booking form.
// Date is a calendar date in YYYY-MM-DD form.
type BookingRequest struct {
	Name            string `json:"name" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,min=7,max=20"`
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	Time            string `json:"time" validate:"required"`
	Guests          int    `json:"guests" validate:"required,min=1"`
	SpecialRequests string `json:"specialRequests" validate:"max=1000"`
}

// EventInquiryRequest represents the private event form.
// PackageID 0 means a custom event with no package selected.
type EventInquiryRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,min=7,max=20"`
	EventType string `json:"eventType" validate:"required,max=100"`
	EventDate string `json:"eventDate" validate:"required,datetime=2006-01-02"`
	Guests    int    `json:"guests" validate:"required"`
	PackageID int64  `json:"packageId" validate:"min=0"`
	Message   string `json:"message" validate:"max=2000"`
}

// InquiryReceipt confirms an accepted submission
type InquiryReceipt struct {
	ID          string      `json:"id"`
	Kind        InquiryKind `json:"kind"`
	SubmittedAt time.Time   `json:"submittedAt"`
	Quote       *EventQuote `json:"quote,omitempty"`
}
