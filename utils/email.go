package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// email request payload for the ZeptoMail API
type emailRequest struct {
	From     emailAddress  `json:"from"`
	To       []toRecipient `json:"to"`
	Subject  string        `json:"subject"`
	HtmlBody string        `json:"htmlbody"`
}

type emailAddress struct {
	Address string `json:"address"`
}

type toRecipient struct {
	Email emailWithName `json:"email_address"`
}

type emailWithName struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

// Mailer sends HTML email through the ZeptoMail HTTP API. Notification
// sends are best effort; callers log failures and move on.
type Mailer struct {
	APIURL string
	APIKey string
	From   string
	Logger *zap.Logger

	client *http.Client
}

func NewMailer(apiURL, apiKey, from string, logger *zap.Logger) (*Mailer, error) {
	if apiURL == "" || apiKey == "" || from == "" {
		return nil, fmt.Errorf("missing required email config")
	}
	return &Mailer{
		APIURL: apiURL,
		APIKey: apiKey,
		From:   from,
		Logger: logger,
		client: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

func (m *Mailer) Send(to, toName, subject, body string) error {
	payload := emailRequest{
		From: emailAddress{Address: m.From},
		To: []toRecipient{
			{Email: emailWithName{Address: to, Name: toName}},
		},
		Subject:  subject,
		HtmlBody: body,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, m.APIURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("create email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", m.APIKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("zeptomail API error: %s", resp.Status)
	}

	m.Logger.Debug("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}
