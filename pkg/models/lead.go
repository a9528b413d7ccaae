package models

import "strings"

// LeadPayload is the wire form of a lead submission. JSON bodies unmarshal
// into it directly; form-encoded bodies are mapped onto it field by field.
// Consent stays untyped because clients send it as a boolean, a string
// ("true", "on", "1") or a number.
type LeadPayload struct {
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
	Consent   any    `json:"consent"`
	FormToken string `json:"form_token"`
}

// Lead returns the submission with the text fields trimmed. Consent is kept
// as received.
func (p LeadPayload) Lead() LeadSubmission {
	return LeadSubmission{
		FirstName: strings.TrimSpace(p.FirstName),
		Email:     strings.TrimSpace(p.Email),
		Phone:     strings.TrimSpace(p.Phone),
		Message:   strings.TrimSpace(p.Message),
		Consent:   p.Consent,
		FormToken: strings.TrimSpace(p.FormToken),
	}
}

// LeadSubmission is a single contact-form entry after trimming, ready for
// validation and delivery. It is never persisted.
type LeadSubmission struct {
	FirstName string
	Email     string
	Phone     string
	Message   string
	Consent   any
	FormToken string
}

// LeadResponse is the JSON body returned by the lead endpoint.
type LeadResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}
