package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const resendEndpoint = "https://api.resend.com/emails"

// EmailService delivers reminder emails through the Resend HTTP API
type EmailService struct {
	apiKey string
	from   string
	client *http.Client
}

// NewEmailService creates a new email service
func NewEmailService(apiKey, from string) *EmailService {
	return &EmailService{
		apiKey: apiKey,
		from:   from,
		client: http.DefaultClient,
	}
}

// SendReminder emails a log-your-weight nudge
func (s *EmailService) SendReminder(ctx context.Context, to, displayName, groupName string) error {
	pload := map[string]interface{}{
		"from":    s.from,
		"to":      []string{to},
		"subject": "Your group is waiting for a weigh-in",
		"html":    buildReminderEmail(displayName, groupName),
	}

	body, err := json.Marshal(pload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("email http error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("email api error %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

func buildReminderEmail(displayName, groupName string) string {
	return `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family:Arial,sans-serif;background:#f4f4f4;padding:20px;">
  <div style="max-width:480px;margin:0 auto;background:#fff;border-radius:8px;padding:32px;">
    <h2 style="color:#333;">Time for a weigh-in</h2>
    <p>Hi ` + displayName + `,</p>
    <p>It has been a few days since your last entry. Your group
       <strong>` + groupName + `</strong> would love to see how you are doing.</p>
    <p>Open the app and log today's weight to stay on the leaderboard.</p>
    <hr style="border:none;border-top:1px solid #eee;margin:24px 0;">
    <p style="color:#999;font-size:12px;">Weight Circle</p>
  </div>
</body>
</html>`
}
