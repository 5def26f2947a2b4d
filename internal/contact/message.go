// Package contact implements the two-step contact form: validate an email
// address, then accept a message, persist it and forward it to the inbox.
package contact

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"
)

// MaxMessageLength is the longest accepted message, in runes.
const MaxMessageLength = 5000

// Form is the submitted contact form.
type Form struct {
	Email   string `form:"email" validate:"required,email"`
	Message string `form:"message" validate:"required,max=5000"`
}

// Message is a validated submission ready to be stored and sent.
type Message struct {
	ID        string
	Email     string
	Body      string
	HashedIP  string
	CreatedAt time.Time
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldError describes why a single form field was rejected.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Reason
}

// Normalize trims surrounding whitespace from both fields.
func (f Form) Normalize() Form {
	return Form{
		Email:   strings.TrimSpace(f.Email),
		Message: strings.TrimSpace(f.Message),
	}
}

// ValidateEmail checks the first step of the form.
func ValidateEmail(email string) error {
	if err := validate.Var(strings.TrimSpace(email), "required,email"); err != nil {
		return fieldError("email", err)
	}
	return nil
}

// Validate checks the whole form.
func (f Form) Validate() error {
	f = f.Normalize()
	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return describe(strings.ToLower(verrs[0].Field()), verrs[0].Tag())
		}
		return err
	}
	return nil
}

// NewMessage validates f and stamps it with a fresh ULID.
func NewMessage(f Form, now time.Time) (Message, error) {
	if err := f.Validate(); err != nil {
		return Message{}, err
	}
	f = f.Normalize()
	return Message{
		ID:        ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		Email:     f.Email,
		Body:      f.Message,
		CreatedAt: now,
	}, nil
}

func fieldError(field string, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return describe(field, verrs[0].Tag())
	}
	return &FieldError{Field: field, Reason: err.Error()}
}

func describe(field, tag string) *FieldError {
	switch field {
	case "email":
		if tag == "required" {
			return &FieldError{Field: field, Reason: "Email is required"}
		}
		return &FieldError{Field: field, Reason: "Invalid email address"}
	case "message":
		if tag == "required" {
			return &FieldError{Field: field, Reason: "Message is required"}
		}
		return &FieldError{Field: field, Reason: "Message must be at most 5000 characters"}
	}
	return &FieldError{Field: field, Reason: "Invalid value"}
}
