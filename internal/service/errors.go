package service

import "errors"

var (
	// ErrDuplicateEmail is returned when registering an email that already exists.
	ErrDuplicateEmail = errors.New("email is already registered")
	// ErrInvalidCredentials is returned when no user matches the email and password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotLoggedIn is returned by operations that need a session.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrAlreadyEnrolled is returned when enrolling twice in the same event.
	ErrAlreadyEnrolled = errors.New("already enrolled in this event")
	// ErrInvalidInput is returned for malformed names, emails or passwords.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEventNotFound is returned for unknown event ids.
	ErrEventNotFound = errors.New("event not found")
	// ErrNotEnrolled is returned when paying for an event the user is not enrolled in.
	ErrNotEnrolled = errors.New("not enrolled in this event")
	// ErrPaymentNotRequired is returned when paying for a free event.
	ErrPaymentNotRequired = errors.New("event does not require payment")
	// ErrInvalidVoucher is returned when the voucher code is empty or does not match.
	ErrInvalidVoucher = errors.New("invalid voucher code")
)
