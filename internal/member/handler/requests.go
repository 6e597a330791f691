package handler

import (
	"strings"

	"backoffice/internal/domain"
	dErrors "backoffice/pkg/domain-errors"
)

// RegisterRequest is the HTTP request body for POST /members.
type RegisterRequest struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	PhoneRegion string `json:"phone_region"`

	// Parsed values (populated by Validate)
	parsedEmail domain.Email
	parsedPhone domain.PhoneNumber
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *RegisterRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "name is required")
	}

	email, err := domain.NewEmail(r.Email)
	if err != nil {
		return err
	}
	r.parsedEmail = email

	region := domain.PhoneRegion(strings.ToUpper(strings.TrimSpace(r.PhoneRegion)))
	if region == "" {
		region = domain.PhoneRegionKorea
	}
	phone, err := domain.NewPhoneNumber(r.Phone, region)
	if err != nil {
		return err
	}
	r.parsedPhone = phone

	return nil
}

// ParsedEmail returns the validated email.
func (r *RegisterRequest) ParsedEmail() domain.Email {
	return r.parsedEmail
}

// ParsedPhone returns the validated phone number.
func (r *RegisterRequest) ParsedPhone() domain.PhoneNumber {
	return r.parsedPhone
}
