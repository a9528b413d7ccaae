package services

import (
	"fmt"
	"html"
	"strings"

	"github.com/nikkes174/blph/pkg/clients/telegram"
	"github.com/nikkes174/blph/pkg/models"
)

// LeadService defines the interface for delivering validated lead submissions
type LeadService interface {
	Dispatch(lead models.LeadSubmission) error
}

type leadServiceImpl struct {
	telegramClient telegram.Client
}

// NewLeadService creates a new lead delivery service
func NewLeadService(telegramClient telegram.Client) LeadService {
	return &leadServiceImpl{
		telegramClient: telegramClient,
	}
}

// Dispatch formats the submission as an operator notification and relays it
// through the messaging gateway. The user-supplied fields are HTML-escaped
// so form input cannot inject markup into the message. One attempt, no retry.
func (s *leadServiceImpl) Dispatch(lead models.LeadSubmission) error {
	lines := []string{
		"<b>Новая заявка с сайта</b>",
		fmt.Sprintf("Имя: %s", html.EscapeString(lead.FirstName)),
		fmt.Sprintf("Email: %s", html.EscapeString(lead.Email)),
		fmt.Sprintf("Телефон: %s", html.EscapeString(lead.Phone)),
		fmt.Sprintf("Сообщение: %s", html.EscapeString(lead.Message)),
	}

	return s.telegramClient.SendMessage(strings.Join(lines, "\n"))
}
