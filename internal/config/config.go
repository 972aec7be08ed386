package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string
	AppEnv  string // "development" | "production"

	LogLevel  string
	LogFormat string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	JWTSecret  string
	SessionTTL time.Duration

	OTPSecret string

	MailAPIKey    string
	MailFromEmail string
	MailFromName  string
	// Template ids keyed by the mailer template type names.
	MailTemplates map[string]string

	StorageBackend   string // "local" | "cloudinary"
	UploadDir        string
	CloudinaryName   string
	CloudinaryKey    string
	CloudinarySecret string
	CloudinaryFolder string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	c := &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		AppEnv:    getenv("APP_ENV", "development"),
		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "json"),

		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "loanhub"),
		MySQLUser: getenv("MYSQL_USER", "loanhub"),
		MySQLPass: getenv("MYSQL_PASS", "loanhub"),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		IdempTTLSecs: 300,

		JWTSecret:  getenv("JWT_SECRET", ""),
		SessionTTL: 7 * 24 * time.Hour,

		OTPSecret: getenv("OTP_SECRET", ""),

		MailAPIKey:    getenv("MAIL_API_KEY", ""),
		MailFromEmail: getenv("MAIL_FROM_EMAIL", "no-reply@loanhub.ng"),
		MailFromName:  getenv("MAIL_FROM_NAME", "LoanHub"),
		MailTemplates: map[string]string{
			"welcome":              getenv("MAIL_TEMPLATE_WELCOME", ""),
			"email_verification":   getenv("MAIL_TEMPLATE_VERIFICATION", ""),
			"password_reset":       getenv("MAIL_TEMPLATE_PASSWORD_RESET", ""),
			"application_received": getenv("MAIL_TEMPLATE_APP_RECEIVED", ""),
			"application_approved": getenv("MAIL_TEMPLATE_APP_APPROVED", ""),
			"application_rejected": getenv("MAIL_TEMPLATE_APP_REJECTED", ""),
		},

		StorageBackend:   getenv("STORAGE_BACKEND", "local"),
		UploadDir:        getenv("UPLOAD_DIR", "./uploads"),
		CloudinaryName:   getenv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryKey:    getenv("CLOUDINARY_API_KEY", ""),
		CloudinarySecret: getenv("CLOUDINARY_API_SECRET", ""),
		CloudinaryFolder: getenv("CLOUDINARY_FOLDER", "loanhub"),
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisDB = n
		}
	}
	if v := os.Getenv("IDEMPOTENCY_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.IdempTTLSecs = n
		}
	}
	if v := os.Getenv("SESSION_TTL_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.SessionTTL = time.Duration(n) * time.Hour
		}
	}
	return c
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.JWTSecret == "" {
		return errors.New("missing JWT_SECRET")
	}
	if c.OTPSecret == "" {
		return errors.New("missing OTP_SECRET")
	}
	if c.StorageBackend == "cloudinary" {
		if c.CloudinaryName == "" || c.CloudinaryKey == "" || c.CloudinarySecret == "" {
			return errors.New("cloudinary backend selected but CLOUDINARY_* config missing")
		}
	}
	return nil
}

// Production reports whether cookies must be marked Secure.
func (c *Config) Production() bool { return c.AppEnv == "production" }

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
