package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port          string
	DatabaseURL   string
	AdminPassword string
	BaseURL       string

	EventName  string
	CertPrefix string
	CertYear   string

	SMSProvider  string
	SolapiAPIKey string
	SolapiSecret string
	SolapiSender string

	UploadDir          string
	SealPath           string
	DefaultSeal        string
	SessionTTL         time.Duration
	RateLimitPerMinute int
	RateLimitBurst     int
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + port
	}

	return Config{
		Port:          port,
		DatabaseURL:   os.Getenv("DB_DSN"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		BaseURL:       baseURL,

		EventName:  readString("EVENT_NAME", "Daegu Math Festival"),
		CertPrefix: readString("CERT_PREFIX", "FEST"),
		CertYear:   readString("CERT_YEAR", "25"),

		SMSProvider:  readString("SMS_PROVIDER", "log"),
		SolapiAPIKey: os.Getenv("SOLAPI_API_KEY"),
		SolapiSecret: os.Getenv("SOLAPI_API_SECRET"),
		SolapiSender: os.Getenv("SOLAPI_SENDER_PHONE"),

		UploadDir:   readString("UPLOAD_DIR", "uploads"),
		SealPath:    readString("SEAL_PATH", "uploads/seal.png"),
		DefaultSeal: readString("DEFAULT_SEAL_PATH", "assets/seal-default.png"),
		SessionTTL:  readDurationSeconds("SESSION_TTL_SECONDS", 8*3600),

		RateLimitPerMinute: readInt("RATE_LIMIT_PER_MIN", 120),
		RateLimitBurst:     readInt("RATE_LIMIT_BURST", 30),
	}
}

func readString(key, fallback string) string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	return raw
}

func readDurationSeconds(key string, fallback int) time.Duration {
	value := readInt(key, fallback)
	if value <= 0 {
		return 0
	}
	return time.Duration(value) * time.Second
}

func readInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
