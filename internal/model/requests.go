package model

import "time"

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email_format"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest is the payload for opening a session.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email_format"`
	Password string `json:"password"`
}

// RenameRequest is the payload for editing the logged-in user's name.
type RenameRequest struct {
	Name string `json:"name" validate:"required,min=2"`
}

// PaymentRequest carries the voucher code typed by the user.
type PaymentRequest struct {
	Code string `json:"code"`
}

// PaymentReceipt acknowledges a confirmed voucher payment.
type PaymentReceipt struct {
	ID      string    `json:"id"`
	EventID int       `json:"event_id"`
	UserID  int       `json:"user_id"`
	PaidAt  time.Time `json:"paid_at"`
}

// EventDetail is an event together with the session user's enrollment, if any.
type EventDetail struct {
	EventView
	Enrollment *EnrollmentView `json:"enrollment,omitempty"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
