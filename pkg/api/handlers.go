package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nikkes174/blph/pkg/formtoken"
	"github.com/nikkes174/blph/pkg/metrics"
	"github.com/nikkes174/blph/pkg/middleware"
	"github.com/nikkes174/blph/pkg/models"
	"github.com/nikkes174/blph/pkg/services"
	"github.com/nikkes174/blph/pkg/validation"
)

// maxBodyBytes caps the request body for the lead endpoint.
const maxBodyBytes = 32 * 1024

// Reason codes for rejections that happen before field validation.
const (
	codePayloadTooLarge      = "payload_too_large"
	codeInvalidContentLength = "invalid_content_length"
)

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	leads  services.LeadService
	tokens *formtoken.Issuer
	log    *slog.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(leads services.LeadService, tokens *formtoken.Issuer, log *slog.Logger) *Handlers {
	return &Handlers{
		leads:  leads,
		tokens: tokens,
		log:    log,
	}
}

// Index renders the landing page with a freshly issued form token embedded.
func (h *Handlers) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"form_token": h.tokens.Issue(),
	})
}

// Privacy renders the policy page, or 404 when it is not deployed.
func (h *Handlers) Privacy(c *gin.Context) {
	if _, err := os.Stat(filepath.Join("templates", "privacy.html")); err != nil {
		c.String(http.StatusNotFound, "privacy.html not found")
		return
	}
	c.HTML(http.StatusOK, "privacy.html", nil)
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// CreateLead accepts a lead submission and relays it to the operator.
//
// Checks run in a fixed order and the first failure terminates the request:
// declared size, actual size, decode, presence, consent, form token,
// per-field syntax, then dispatch. Decode failures produce an empty field
// set and surface as required_fields instead of a parser error.
func (h *Handlers) CreateLead(c *gin.Context) {
	metrics.LeadsReceivedTotal.Inc()

	fail := func(status int, code string) {
		h.log.Warn("lead rejected",
			"reason", code,
			"ip", c.ClientIP(),
			"request_id", c.GetString(middleware.RequestIDKey),
		)
		metrics.LeadsRejectedTotal.WithLabelValues(code).Inc()
		c.JSON(status, models.LeadResponse{OK: false, Error: code})
	}

	// The declared length is checked before the body is read at all, so an
	// oversized upload is refused without consuming it.
	if declared := c.GetHeader("Content-Length"); declared != "" {
		length, err := strconv.ParseInt(declared, 10, 64)
		if err != nil {
			fail(http.StatusBadRequest, codeInvalidContentLength)
			return
		}
		if length > maxBodyBytes {
			fail(http.StatusRequestEntityTooLarge, codePayloadTooLarge)
			return
		}
	}

	// Re-check the actual size; the header may be absent or wrong.
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes+1))
	if err != nil {
		body = nil
	}
	if len(body) > maxBodyBytes {
		fail(http.StatusRequestEntityTooLarge, codePayloadTooLarge)
		return
	}

	lead := decodePayload(c.ContentType(), body).Lead()

	if code := validation.Validate(lead, h.tokens); code != "" {
		status := http.StatusBadRequest
		if code == validation.CodeInvalidFormToken {
			status = http.StatusForbidden
		}
		fail(status, code)
		return
	}

	if err := h.leads.Dispatch(lead); err != nil {
		h.log.Error("lead delivery failed",
			"error", err,
			"request_id", c.GetString(middleware.RequestIDKey),
		)
		metrics.LeadDeliveryFailedTotal.Inc()
		c.JSON(http.StatusBadGateway, models.LeadResponse{OK: false, Error: err.Error()})
		return
	}

	metrics.LeadsAcceptedTotal.Inc()
	c.JSON(http.StatusOK, models.LeadResponse{OK: true})
}

// decodePayload decodes the body by declared content type: JSON or
// form-encoded. The media type is compared case-insensitively. Any decode
// failure returns the zero payload, which then fails the presence check
// rather than leaking parser details to callers.
func decodePayload(contentType string, body []byte) models.LeadPayload {
	var payload models.LeadPayload

	if strings.EqualFold(contentType, "application/json") {
		if err := json.Unmarshal(body, &payload); err != nil {
			return models.LeadPayload{}
		}
		return payload
	}

	values, err := url.ParseQuery(string(body))
	if err != nil {
		return models.LeadPayload{}
	}
	payload.FirstName = values.Get("first_name")
	payload.Email = values.Get("email")
	payload.Phone = values.Get("phone")
	payload.Message = values.Get("message")
	payload.FormToken = values.Get("form_token")
	if values.Has("consent") {
		payload.Consent = values.Get("consent")
	}
	return payload
}
