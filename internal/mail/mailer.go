package mail

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Mailer delivers account and notification email.
type Mailer interface {
	SendConfirmationCode(email, name, code string) error
	Send(email, subject, body string) error
}

// APIMailer posts through an HTTP transactional mail gateway.
type APIMailer struct {
	APIKey   string
	Endpoint string
	From     string
	client   *http.Client
}

func NewAPIMailer(apiKey, endpoint, from string) *APIMailer {
	return &APIMailer{
		APIKey:   apiKey,
		Endpoint: endpoint,
		From:     from,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (m *APIMailer) SendConfirmationCode(email, name, code string) error {
	body := fmt.Sprintf("Hi %s,\n\nYour Second Watch Network confirmation code is %s. It expires in 30 minutes.", name, code)
	return m.Send(email, "Confirm your account", body)
}

func (m *APIMailer) Send(email, subject, body string) error {
	payload := map[string]interface{}{
		"from":    m.From,
		"to":      []string{email},
		"subject": subject,
		"text":    body,
	}

	jsonData, _ := json.Marshal(payload)
	req, err := http.NewRequest("POST", m.Endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.APIKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("mail API error (status %d): %s", resp.StatusCode, string(raw))
	}
	return nil
}

// LogMailer writes mail to the log instead of sending it. Default in
// development and tests.
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendConfirmationCode(email, name, code string) error {
	m.logger.Info("mock mail: confirmation code",
		zap.String("to", email),
		zap.String("name", name),
		zap.String("code", code))
	return nil
}

func (m *LogMailer) Send(email, subject, body string) error {
	m.logger.Info("mock mail",
		zap.String("to", email),
		zap.String("subject", subject),
		zap.String("body", body))
	return nil
}
