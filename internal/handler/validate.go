package handler

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Shivanand-hulikatti/cosmo-events/internal/service"
	"github.com/go-playground/validator/v10"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("email_format", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return v
}

// validate checks req and wraps failures in service.ErrInvalidInput.
func (h *EventHandler) validate(req any) error {
	err := h.validator.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", service.ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describeField(fe))
	}
	return fmt.Errorf("%w: %s", service.ErrInvalidInput, strings.Join(msgs, "; "))
}

func describeField(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "email_format":
		return field + " is not a valid email address"
	default:
		return field + " is invalid"
	}
}
