package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// WebhookNotifier forwards push messages to the hosted notification
// delivery service. Delivery is best-effort: callers log and move on when
// Notify fails, so the retry here stays short.
type WebhookNotifier struct {
	endpoint string
	apiKey   string
	session  *http.Client
}

func NewWebhookNotifier(endpoint, apiKey string) *WebhookNotifier {
	return &WebhookNotifier{
		endpoint: endpoint,
		apiKey:   apiKey,
		session:  &http.Client{Timeout: 5 * time.Second},
	}
}

type pushPayload struct {
	StudentID string `json:"student_id"`
	Message   string `json:"message"`
}

func (n *WebhookNotifier) Notify(ctx context.Context, studentID, message string) error {
	body, err := json.Marshal(pushPayload{StudentID: studentID, Message: message})
	if err != nil {
		return fmt.Errorf("notify student %s: encode payload: %w", studentID, err)
	}

	const attempts = 3
	backoff := 200 * time.Millisecond

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("notify student %s: %w", studentID, ctx.Err())
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		code, err := n.post(ctx, body)
		if err == nil {
			return nil
		}
		lastErr = err

		// Client errors will not improve on retry.
		if code >= 400 && code < 500 {
			break
		}
	}

	return fmt.Errorf("notify student %s: %w", studentID, lastErr)
}

func (n *WebhookNotifier) post(ctx context.Context, body []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if n.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+n.apiKey)
	}

	resp, err := n.session.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return resp.StatusCode, fmt.Errorf("push endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return resp.StatusCode, nil
}

// LogNotifier writes messages to the process log instead of delivering
// them. Used when no push endpoint is configured.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, studentID, message string) error {
	log.Printf("op=notify.log student_id=%s msg=%q", studentID, message)
	return nil
}
