package notify

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultSolapiEndpoint = "https://api.solapi.com/messages/v4/send"

// solapiSender posts a single message to the SOLAPI gateway using its
// HMAC-SHA256 request signature scheme.
type solapiSender struct {
	apiKey     string
	apiSecret  string
	fromNumber string
	endpoint   string
	client     *http.Client
}

func newSolapiSender(cfg Config) *solapiSender {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultSolapiEndpoint
	}
	return &solapiSender{
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		fromNumber: cfg.FromNumber,
		endpoint:   endpoint,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *solapiSender) Send(ctx context.Context, recipient, message string) error {
	payload := map[string]any{
		"message": map[string]string{
			"to":   recipient,
			"from": s.fromNumber,
			"text": message,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	auth, err := s.authorization(time.Now().UTC())
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", auth)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway rejected request: %s", resp.Status)
	}
	return nil
}

func (s *solapiSender) authorization(now time.Time) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	date := now.Format(time.RFC3339)
	saltHex := hex.EncodeToString(salt)

	mac := hmac.New(sha256.New, []byte(s.apiSecret))
	mac.Write([]byte(date + saltHex))
	signature := hex.EncodeToString(mac.Sum(nil))

	return fmt.Sprintf("HMAC-SHA256 apiKey=%s, date=%s, salt=%s, signature=%s",
		s.apiKey, date, saltHex, signature), nil
}
