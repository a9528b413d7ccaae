// Package validation enforces the lead-form field rules. Checks run in a
// fixed order and the first failure wins, so every rejected submission maps
// to exactly one reason code.
package validation

import (
	"regexp"
	"unicode/utf8"

	"github.com/nikkes174/blph/pkg/models"
)

// Field length limits, counted in runes.
const (
	MaxFirstNameLen = 60
	MaxEmailLen     = 120
	MaxPhoneLen     = 32
	MaxMessageLen   = 4000
)

// Reason codes returned to the client on rejection.
const (
	CodeRequiredFields   = "required_fields"
	CodeConsentRequired  = "consent_required"
	CodeInvalidFormToken = "invalid_form_token"
	CodeInvalidFirstName = "invalid_first_name"
	CodeInvalidEmail     = "invalid_email"
	CodeInvalidPhone     = "invalid_phone"
	CodeMessageTooLong   = "message_too_long"
)

// The whitespace classes include Unicode space separators, so a pasted
// non-breaking space behaves like an ordinary space in names and phones
// and is still banned inside emails.
var (
	nameRe  = regexp.MustCompile(`^[A-Za-zА-Яа-яЁё\-\s\p{Zs}]{1,60}$`)
	phoneRe = regexp.MustCompile(`^[0-9+\-\s()\p{Zs}]{6,32}$`)
	emailRe = regexp.MustCompile(`^[^@\s\p{Zs}]+@[^@\s\p{Zs}]+\.[^@\s\p{Zs}]+$`)
)

// TokenVerifier validates a form token string.
type TokenVerifier interface {
	Verify(token string) bool
}

// Validate runs the ordered pipeline over a trimmed submission and returns
// the first failing reason code, or "" when the submission is acceptable.
// Cheap structural checks run before the token signature check, which runs
// before the pattern matches.
func Validate(s models.LeadSubmission, tokens TokenVerifier) string {
	if s.FirstName == "" || s.Email == "" || s.Phone == "" || s.Message == "" {
		return CodeRequiredFields
	}

	if !consentGiven(s.Consent) {
		return CodeConsentRequired
	}

	if s.FormToken == "" || !tokens.Verify(s.FormToken) {
		return CodeInvalidFormToken
	}

	if utf8.RuneCountInString(s.FirstName) > MaxFirstNameLen || !nameRe.MatchString(s.FirstName) {
		return CodeInvalidFirstName
	}
	if utf8.RuneCountInString(s.Email) > MaxEmailLen || !emailRe.MatchString(s.Email) {
		return CodeInvalidEmail
	}
	if utf8.RuneCountInString(s.Phone) > MaxPhoneLen || !phoneRe.MatchString(s.Phone) {
		return CodeInvalidPhone
	}
	if utf8.RuneCountInString(s.Message) > MaxMessageLen {
		return CodeMessageTooLong
	}

	return ""
}

// consentGiven reports whether v is one of the accepted truthy consent
// representations: true, "true", "on", "1" or the number 1. The set is
// closed; anything else, including absence, counts as a refusal.
func consentGiven(v any) bool {
	switch c := v.(type) {
	case bool:
		return c
	case string:
		return c == "true" || c == "on" || c == "1"
	case float64: // JSON numbers decode as float64
		return c == 1
	case int:
		return c == 1
	}
	return false
}
