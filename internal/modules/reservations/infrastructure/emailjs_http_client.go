package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"elyseeWeb/internal/modules/reservations/application/port"
	"elyseeWeb/internal/modules/reservations/domain"
)

const (
	defaultEmailJSBaseURL = "https://api.emailjs.com"
	emailJSSendPath       = "/api/v1.0/email/send"
)

// EmailJSConfig identifies the EmailJS service, template and account keys.
type EmailJSConfig struct {
	BaseURL    string
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string
	Timeout    time.Duration
}

// EmailJSClient relays reservation requests through the EmailJS REST API.
type EmailJSClient struct {
	cfg    EmailJSConfig
	client *http.Client
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

func NewEmailJSClient(cfg EmailJSConfig, client *http.Client) *EmailJSClient {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultEmailJSBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &EmailJSClient{cfg: cfg, client: client}
}

func (c *EmailJSClient) Send(ctx context.Context, req domain.Request) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	body, err := json.Marshal(emailJSRequest{
		ServiceID:      c.cfg.ServiceID,
		TemplateID:     c.cfg.TemplateID,
		UserID:         c.cfg.PublicKey,
		AccessToken:    c.cfg.PrivateKey,
		TemplateParams: req.TemplateParams(),
	})
	if err != nil {
		return fmt.Errorf("encode emailjs request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+emailJSSendPath, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("emailjs request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		slog.Error("emailjs unexpected status", slog.Int("status", res.StatusCode), slog.String("body", strings.TrimSpace(string(text))))
		return fmt.Errorf("emailjs responded %d: %s", res.StatusCode, strings.TrimSpace(string(text)))
	}
	_, _ = io.Copy(io.Discard, res.Body)
	return nil
}

var _ port.EmailRelay = (*EmailJSClient)(nil)
