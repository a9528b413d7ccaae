package telegram

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultAPIBase = "https://api.telegram.org"

// requestTimeout bounds a single sendMessage call end to end.
const requestTimeout = 10 * time.Second

// ErrMissingCredentials is returned when the bot token or chat ID is not
// configured; no request is attempted in that case.
var ErrMissingCredentials = errors.New("Missing TELEGRAM_BOT_TOKEN or TELEGRAM_CHAT_ID")

// ErrInvalidProxyURL is returned on every send when the configured proxy URL
// does not parse. The client never falls back to the environment proxy in
// that case: a typo must not silently reroute traffic.
var ErrInvalidProxyURL = errors.New("invalid TELEGRAM_PROXY_URL")

// Client defines the interface for interacting with the Telegram Bot API
type Client interface {
	SendMessage(text string) error
}

type clientImpl struct {
	botToken   string
	chatID     string
	apiBase    string
	proxyErr   error
	httpClient *http.Client
}

// NewClient creates a new Telegram client. apiBase overrides the public API
// endpoint when non-empty; proxyURL overrides the proxy taken from the
// standard environment variables (HTTPS_PROXY and friends).
func NewClient(botToken, chatID, apiBase, proxyURL string) Client {
	if apiBase == "" {
		apiBase = defaultAPIBase
	}

	transport := &http.Transport{Proxy: http.ProxyFromEnvironment}
	var proxyErr error
	if proxyURL != "" {
		if proxy, err := url.Parse(proxyURL); err != nil {
			proxyErr = ErrInvalidProxyURL
		} else {
			transport.Proxy = http.ProxyURL(proxy)
		}
	}

	return &clientImpl{
		botToken: botToken,
		chatID:   chatID,
		apiBase:  strings.TrimRight(apiBase, "/"),
		proxyErr: proxyErr,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   requestTimeout,
		},
	}
}

// SendMessage relays text to the configured chat via the sendMessage
// endpoint. A single attempt is made; any failure is returned as-is with
// enough detail to diagnose it.
func (c *clientImpl) SendMessage(text string) error {
	if c.botToken == "" || c.chatID == "" {
		return ErrMissingCredentials
	}
	if c.proxyErr != nil {
		return requestFailed(c.proxyErr)
	}

	payload := map[string]any{
		"chat_id":                  c.chatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return requestFailed(err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", c.apiBase, c.botToken)
	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return requestFailed(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return requestFailed(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			respBody = []byte("<failed to read body>")
		}
		return fmt.Errorf("Telegram API error: %d; body: %s", resp.StatusCode, respBody)
	}

	return nil
}

// requestFailed formats a transport-level failure. A *url.Error spells out
// the full request URL, which contains the bot token, so only its underlying
// cause is kept; the error text this produces is safe to show to callers.
func requestFailed(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		err = uerr.Err
	}
	return fmt.Errorf("Telegram request failed: %w", err)
}
