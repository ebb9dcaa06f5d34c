package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration holds the static settings the service needs at startup.
// Values come from config/env/<GO_ENV>.env plus the process environment.
type Configuration struct {
	Address   string `env:"ADDRESS" envDefault:":4201"` // Server listen address
	JwtSecret string `env:"JWT_SECRET,required"`        // Secret used to verify bearer tokens

	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"` // Mongo connection string
	MongoDB_DBName        string `env:"MONGODB_DBNAME,required"`         // Assessment database name

	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Allowed origins, comma separated (* = all)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Allow credentialed requests
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Max requests per window (0 = disabled)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Window length in seconds
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Toggle rate limiting

	// External rating engine
	ScoringEngineURL     string `env:"SCORING_ENGINE_URL,required"`             // Rating engine endpoint
	ScoringEngineTimeout int    `env:"SCORING_ENGINE_TIMEOUT" envDefault:"30"`  // Engine call timeout in seconds

	// Reporting and ops alerting
	ReportingWebhookURL string `env:"REPORTING_WEBHOOK_URL"` // Completed-submission reporting ingest endpoint
	OpsAlertWebhookURL  string `env:"OPS_ALERT_WEBHOOK_URL"` // Operational alert endpoint

	// SMTP for rating outcome emails
	SMTPHost string `env:"SMTP_HOST"`
	SMTPPort int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser string `env:"SMTP_USER"`
	SMTPPass string `env:"SMTP_PASS"`
	SMTPFrom string `env:"SMTP_FROM" envDefault:"no-reply@vidya.local"`

	// Default recipients for rating outcome emails, comma separated.
	// Used whenever the solution does not carry its own recipient list, and
	// always for failure emails raised before the solution could be loaded.
	RatingEmailRecipients string `env:"RATING_EMAIL_RECIPIENTS"`

	// Rating queue worker
	RatingQueueInterval  int `env:"RATING_QUEUE_INTERVAL" envDefault:"60"`   // Seconds between queue polls
	RatingQueueBatchSize int `env:"RATING_QUEUE_BATCH_SIZE" envDefault:"20"` // Max entries per poll

	// TLS/HTTPS
	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"`
	TLSCertFile string `env:"TLS_CERT_FILE"`
	TLSKeyFile  string `env:"TLS_KEY_FILE"`
}

// DefaultRatingRecipients splits RatingEmailRecipients into a clean slice.
func (c *Configuration) DefaultRatingRecipients() []string {
	if c == nil || strings.TrimSpace(c.RatingEmailRecipients) == "" {
		return nil
	}
	parts := strings.Split(c.RatingEmailRecipients, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if addr := strings.TrimSpace(p); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// getEnvPath returns the env file path for the current environment,
// walking up from the working directory until a config/env dir is found.
func getEnvPath() string {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		// fmt here because the logger is not initialized yet
		fmt.Printf("cannot determine working directory: %v\n", err)
		return ""
	}

	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", env))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig loads the env file for the current GO_ENV and parses it into a Configuration.
func NewConfig() *Configuration {
	envPath := getEnvPath()
	if envPath == "" {
		fmt.Printf("config/env directory not found\n")
		return nil
	}

	if err := godotenv.Load(envPath); err != nil {
		fmt.Printf("cannot load env file %s: %v\n", envPath, err)
		return nil
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Printf("cannot parse configuration: %+v\n", err)
		return nil
	}

	return &cfg
}
