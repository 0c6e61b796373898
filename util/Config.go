package util

import (
	"errors"
	"time"
)

// Config is everything the daemon reads from the environment (.env is loaded first by the CLI)
type Config struct {
	Port string

	// Token verification. RS256 is used when RSAPublicKey is set, HS256 with JWTSecret otherwise.
	JWTSecret     string
	RSAPublicKey  string
	RSAPrivateKey string // only needed by the `issue` command

	// "memory" or "postgres"
	SessionStore    string
	SessionStoreKey string

	DB   DBConfig
	SMTP SMTPConfig

	RateLimitMax    int
	RateLimitWindow time.Duration
}

type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

type SMTPConfig struct {
	Host       string
	Port       int
	User       string
	Pass       string
	SenderName string
}

// Enabled reports whether sign-in notices should be mailed
func (c SMTPConfig) Enabled() bool {
	return c.Host != ""
}

func LoadConfig() Config {
	return Config{
		Port: getEnv("PORT", "4000"),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		RSAPublicKey:  getEnv("RSA_PUBLIC_KEY", ""),
		RSAPrivateKey: getEnv("RSA_PRIVATE_KEY", ""),

		SessionStore:    getEnv("SESSION_STORE", "memory"),
		SessionStoreKey: getEnv("SESSION_STORE_KEY", ""),

		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "farm_session"),
			Port:     getEnv("DB_PORT", "5432"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvInt("SMTP_PORT", 587),
			User:       getEnv("SMTP_USER", ""),
			Pass:       getEnv("SMTP_PASS", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Farm Market"),
		},

		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 10),
		RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
	}
}

// Validate refuses to start without a trust root for tokens, or with a persistent store it cannot seal
func (c Config) Validate() error {
	if c.RSAPublicKey == "" && c.JWTSecret == "" {
		return errors.New("neither RSA_PUBLIC_KEY nor JWT_SECRET is set")
	}
	if c.SessionStore == "postgres" && c.SessionStoreKey == "" {
		return errors.New("SESSION_STORE_KEY is required when SESSION_STORE=postgres")
	}
	return nil
}
