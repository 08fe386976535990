package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/roadassist/backend/internal/config"
	"github.com/roadassist/backend/internal/domain"
)

type smsSender struct {
	config config.SMSConfig
	client *http.Client
}

// NewSMSSender sends messages through the SMS gateway HTTP API.
func NewSMSSender(cfg config.SMSConfig) *smsSender {
	return &smsSender{
		config: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type smsRequest struct {
	Recipient string `json:"recipient"`
	From      string `json:"from"`
	Text      string `json:"text"`
}

func (s *smsSender) Deliver(ctx context.Context, recipient string, msg domain.Message) error {
	payload, err := json.Marshal(smsRequest{
		Recipient: recipient,
		From:      s.config.Sender,
		Text:      msg.Body,
	})
	if err != nil {
		return errors.Wrap(err, "marshal sms payload failed")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.APIURL, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "create sms request failed")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "sms gateway request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sms gateway returned %d: %s", resp.StatusCode, body)
	}

	return nil
}
