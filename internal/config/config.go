package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"elyseeWeb/internal/shared/normalization"
)

// ErrInvalidConfig is wrapped by every validation failure returned from Load.
var ErrInvalidConfig = errors.New("invalid configuration")

const (
	EmailProviderEmailJS  = "emailjs"
	EmailProviderSES      = "ses"
	EmailProviderDisabled = "disabled"
)

type Config struct {
	Server    ServerConfig
	Logging   LoggingConfig
	Content   ContentConfig
	Email     EmailConfig
	SES       SESConfig
	WhatsApp  WhatsAppConfig
	Kafka     KafkaConfig
	Security  SecurityConfig
	Telegram  TelegramConfig
	Concierge ConciergeConfig
}

type ServerConfig struct {
	Port            string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

type LoggingConfig struct {
	Level     string
	Format    string
	Directory string
	AddSource bool
}

// ContentConfig points at an optional catalog override. An empty Path serves
// the embedded catalog.
type ContentConfig struct {
	Path  string
	Watch bool
}

type EmailConfig struct {
	Provider   string
	BaseURL    string
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string
	Timeout    time.Duration
}

// EmailJSReady reports whether the EmailJS identifiers are all present.
func (c EmailConfig) EmailJSReady() bool {
	return c.ServiceID != "" && c.TemplateID != "" && c.PublicKey != ""
}

type SESConfig struct {
	Region string
	From   string
	To     []string
}

type WhatsAppConfig struct {
	Phone string
}

type KafkaConfig struct {
	Brokers      []string
	GroupID      string
	Topic        string
	WriteTimeout time.Duration
}

// Enabled reports whether reservation events go through Kafka.
func (c KafkaConfig) Enabled() bool { return len(c.Brokers) > 0 }

type SecurityConfig struct {
	JWTSecret    string
	JWTPublicKey string
	StaffRoles   []string
}

// ConciergeEnabled reports whether staff tokens can be verified at all.
func (c SecurityConfig) ConciergeEnabled() bool {
	return c.JWTSecret != "" || c.JWTPublicKey != ""
}

type TelegramConfig struct {
	Token  string
	ChatID int64
}

type ConciergeConfig struct {
	Topics []string
}

// Load reads the environment. Call godotenv first to pick up a local .env.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnvOrDefault("PORT", "8080"),
			AllowedOrigins:  getEnvListOrDefault("ALLOWED_ORIGINS", nil),
			ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Logging: LoggingConfig{
			Level:     getEnvOrDefault("LOG_LEVEL", "info"),
			Format:    getEnvOrDefault("LOG_FORMAT", "text"),
			Directory: getEnvOrDefault("LOG_DIR", "./logs"),
			AddSource: getEnvBoolOrDefault("LOG_ADD_SOURCE", true),
		},
		Content: ContentConfig{
			Path:  getEnvOrDefault("CONTENT_PATH", ""),
			Watch: getEnvBoolOrDefault("CONTENT_WATCH", true),
		},
		Email: EmailConfig{
			Provider:   strings.ToLower(getEnvOrDefault("EMAIL_PROVIDER", EmailProviderEmailJS)),
			BaseURL:    getEnvOrDefault("EMAILJS_BASE_URL", "https://api.emailjs.com"),
			ServiceID:  getEnvOrDefault("EMAILJS_SERVICE_ID", ""),
			TemplateID: getEnvOrDefault("EMAILJS_TEMPLATE_ID", ""),
			PublicKey:  getEnvOrDefault("EMAILJS_PUBLIC_KEY", ""),
			PrivateKey: getEnvOrDefault("EMAILJS_PRIVATE_KEY", ""),
			Timeout:    getEnvDurationOrDefault("EMAIL_TIMEOUT", 10*time.Second),
		},
		SES: SESConfig{
			Region: getEnvOrDefault("AWS_REGION", ""),
			From:   getEnvOrDefault("SES_FROM", ""),
			To:     getEnvListOrDefault("SES_TO", nil),
		},
		WhatsApp: WhatsAppConfig{
			Phone: getEnvOrDefault("WHATSAPP_PHONE", "971501234567"),
		},
		Kafka: KafkaConfig{
			Brokers:      getEnvListOrDefault("KAFKA_BROKERS", getEnvListOrDefault("KAFKA_BROKER", nil)),
			GroupID:      getEnvOrDefault("KAFKA_GROUP_ID", "elysee-web"),
			Topic:        getEnvOrDefault("KAFKA_RESERVATIONS_TOPIC", "reservations.requested"),
			WriteTimeout: getEnvDurationOrDefault("KAFKA_WRITE_TIMEOUT", 5*time.Second),
		},
		Security: SecurityConfig{
			JWTSecret:    getEnvOrDefault("JWT_SECRET", ""),
			JWTPublicKey: getEnvOrDefault("JWT_PUBLIC_KEY", ""),
			StaffRoles:   getEnvListOrDefault("CONCIERGE_ROLES", []string{"concierge", "admin"}),
		},
		Telegram: TelegramConfig{
			Token: getEnvOrDefault("TELEGRAM_BOT_TOKEN", ""),
		},
		Concierge: ConciergeConfig{
			Topics: getEnvListOrDefault("CONCIERGE_TOPICS", []string{"reservations.*"}),
		},
	}

	var errs []error
	if raw := getEnvOrDefault("TELEGRAM_CHAT_ID", ""); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: TELEGRAM_CHAT_ID %q is not an integer", ErrInvalidConfig, raw))
		}
		cfg.Telegram.ChatID = id
	}
	if err := cfg.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

// Validate checks the cross-field rules Load cannot express as defaults.
func (c *Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		fail("PORT %q is not a number", c.Server.Port)
	}
	switch c.Email.Provider {
	case EmailProviderEmailJS, EmailProviderDisabled:
	case EmailProviderSES:
		if c.SES.Region == "" || c.SES.From == "" || len(c.SES.To) == 0 {
			fail("EMAIL_PROVIDER=ses requires AWS_REGION, SES_FROM and SES_TO")
		}
	default:
		fail("EMAIL_PROVIDER %q must be emailjs, ses or disabled", c.Email.Provider)
	}
	if len(normalization.Digits(c.WhatsApp.Phone)) < 7 {
		fail("WHATSAPP_PHONE %q has too few digits", c.WhatsApp.Phone)
	}
	if c.Telegram.Token != "" && c.Telegram.ChatID == 0 {
		fail("TELEGRAM_BOT_TOKEN is set without TELEGRAM_CHAT_ID")
	}
	if c.Kafka.Enabled() && c.Kafka.Topic == "" {
		fail("KAFKA_RESERVATIONS_TOPIC must not be empty")
	}
	return errors.Join(errs...)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

// getEnvListOrDefault splits a comma separated variable, dropping blanks.
func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
