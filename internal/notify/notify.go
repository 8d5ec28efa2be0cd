package notify

import (
	"context"
	"log"
	"strings"
)

// Sender delivers a single SMS. Implementations must treat delivery as
// best effort; callers never roll back queue state on a send failure.
type Sender interface {
	Send(ctx context.Context, recipient, message string) error
}

// Config selects and parameterizes the sender.
type Config struct {
	Kind       string
	APIKey     string
	APISecret  string
	FromNumber string
	Endpoint   string
}

// NewSender picks a sender by kind. An unusable solapi configuration
// degrades to the log sender so a misconfigured event still runs.
func NewSender(cfg Config) Sender {
	switch cfg.Kind {
	case "solapi":
		if cfg.APIKey == "" || cfg.APISecret == "" || cfg.FromNumber == "" {
			log.Printf("notify: solapi credentials incomplete, falling back to log sender")
			return LogSender{}
		}
		return newSolapiSender(cfg)
	case "noop":
		return NoopSender{}
	default:
		return LogSender{}
	}
}

// LogSender writes the message to the process log instead of sending it.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, recipient, message string) error {
	log.Printf("send sms to %s: %s", recipient, message)
	return nil
}

type NoopSender struct{}

func (NoopSender) Send(ctx context.Context, recipient, message string) error {
	return nil
}

// NormalizePhone converts a local number to E.164 form for the gateway.
// Separators are stripped, a leading 010 becomes +8210, and any other
// bare number gets the +82 country code. Already-normalized input passes
// through unchanged.
func NormalizePhone(phone string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' {
			return -1
		}
		return r
	}, phone)
	if cleaned == "" {
		return ""
	}
	if strings.HasPrefix(cleaned, "+82") {
		return cleaned
	}
	if strings.HasPrefix(cleaned, "010") {
		return "+82" + cleaned[1:]
	}
	if strings.HasPrefix(cleaned, "0") {
		return "+82" + cleaned[1:]
	}
	return "+82" + cleaned
}
