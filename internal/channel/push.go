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

type pushSender struct {
	config config.PushConfig
	client *http.Client
}

// NewPushSender delivers notifications to a device token through the push
// provider HTTP API.
func NewPushSender(cfg config.PushConfig) *pushSender {
	return &pushSender{
		config: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type pushRequest struct {
	To           string           `json:"to"`
	Notification pushNotification `json:"notification"`
}

type pushNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (s *pushSender) Deliver(ctx context.Context, recipient string, msg domain.Message) error {
	payload, err := json.Marshal(pushRequest{
		To: recipient,
		Notification: pushNotification{
			Title: msg.Subject,
			Body:  msg.Body,
		},
	})
	if err != nil {
		return errors.Wrap(err, "marshal push payload failed")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.APIURL, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "create push request failed")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+s.config.ServerKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "push provider request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("push provider returned %d: %s", resp.StatusCode, body)
	}

	return nil
}
