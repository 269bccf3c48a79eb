package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/linskybing/robolab-go/internal/domain/profile"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

const defaultJWTSecret = "defaultsecret"

type StoreConfig struct {
	Driver string
	URL    string
	Key    string
	Host   string
	Port   string
	User   string
	Name   string
}

// DSN returns the connection string for the configured driver. An explicit
// DATA_STORE_URL wins; otherwise a postgres key/value DSN is assembled.
func (s StoreConfig) DSN() string {
	if s.URL != "" {
		return s.URL
	}
	if s.Driver == DriverSQLite {
		return "robolab.db"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		s.Host, s.Port, s.User, s.Key, s.Name)
}

type MailConfig struct {
	Provider          string
	APIKey            string
	From              string
	FromName          string
	SMTPHost          string
	SMTPPort          int
	SMTPUser          string
	SMTPPass          string
	SMTPSkipTLSVerify bool
	MaxAttempts       int
	Schedule          string
	BatchSize         int
	RetryBackoff      time.Duration
	SendingLease      time.Duration
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func (m MinioConfig) Enabled() bool {
	return m.Endpoint != ""
}

type AuthConfig struct {
	JWTSecret         string
	Issuer            string
	SessionTTL        time.Duration
	BootstrapEmail    string
	BootstrapPassword string
}

type AccessConfig struct {
	RolesFile          string
	DefaultRole        profile.Role
	ReviewAllowFaculty bool
	// Allow maps lower-cased emails to the role granted when a profile is first synthesized.
	Allow map[string]profile.Role
}

type Config struct {
	Store             StoreConfig
	Mail              MailConfig
	Minio             MinioConfig
	Auth              AuthConfig
	Access            AccessConfig
	StrictTransitions bool
	AppURL            string
	ServerPort        string
	GinMode           string
	LogFile           string
}

// Load reads .env (if present) and the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	var errs []string
	intEnv := func(key string, fallback int) int {
		v, err := strconv.Atoi(getEnv(key, strconv.Itoa(fallback)))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
			return fallback
		}
		return v
	}
	boolEnv := func(key string, fallback bool) bool {
		v, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(fallback)))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
			return fallback
		}
		return v
	}
	durationEnv := func(key string, fallback time.Duration) time.Duration {
		v, err := time.ParseDuration(getEnv(key, fallback.String()))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
			return fallback
		}
		return v
	}

	cfg := &Config{
		Store: StoreConfig{
			Driver: strings.ToLower(getEnv("DATA_STORE_DRIVER", "")),
			URL:    getEnv("DATA_STORE_URL", ""),
			Key:    getEnv("DATA_STORE_KEY", getEnv("DB_PASSWORD", "password")),
			Host:   getEnv("DB_HOST", "localhost"),
			Port:   getEnv("DB_PORT", "5432"),
			User:   getEnv("DB_USER", "postgres"),
			Name:   getEnv("DB_NAME", "robolab"),
		},
		Mail: MailConfig{
			Provider:          strings.ToLower(getEnv("EMAIL_PROVIDER", "log")),
			APIKey:            getEnv("EMAIL_API_KEY", ""),
			From:              getEnv("EMAIL_FROM", "noreply@robolab.local"),
			FromName:          getEnv("EMAIL_FROM_NAME", "Robotics Lab"),
			SMTPHost:          getEnv("SMTP_HOST", ""),
			SMTPPort:          intEnv("SMTP_PORT", 587),
			SMTPUser:          getEnv("SMTP_USER", ""),
			SMTPPass:          getEnv("SMTP_PASS", ""),
			SMTPSkipTLSVerify: boolEnv("SMTP_SKIP_TLS_VERIFY", false),
			MaxAttempts:       intEnv("MAIL_MAX_ATTEMPTS", 3),
			Schedule:          getEnv("MAIL_SCHEDULE", "@every 30s"),
			BatchSize:         intEnv("MAIL_BATCH_SIZE", 20),
			RetryBackoff:      durationEnv("MAIL_RETRY_BACKOFF", time.Minute),
			SendingLease:      durationEnv("MAIL_SENDING_LEASE", 10*time.Minute),
		},
		Minio: MinioConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "robolab-mail"),
			UseSSL:    boolEnv("MINIO_USE_SSL", false),
		},
		Auth: AuthConfig{
			JWTSecret:         getEnv("JWT_SECRET", defaultJWTSecret),
			Issuer:            getEnv("ISSUER", "robolab"),
			SessionTTL:        durationEnv("SESSION_TTL", 24*time.Hour),
			BootstrapEmail:    getEnv("BOOTSTRAP_ADMIN_EMAIL", ""),
			BootstrapPassword: getEnv("BOOTSTRAP_ADMIN_PASSWORD", ""),
		},
		Access: AccessConfig{
			RolesFile:          getEnv("ROLES_FILE", ""),
			DefaultRole:        profile.Role(getEnv("DEFAULT_ROLE", string(profile.RoleViewOnly))),
			ReviewAllowFaculty: boolEnv("REVIEW_ALLOW_FACULTY", false),
			Allow:              map[string]profile.Role{},
		},
		StrictTransitions: boolEnv("STRICT_TRANSITIONS", false),
		AppURL:            strings.TrimRight(getEnv("APP_URL", "http://localhost:3000"), "/"),
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		GinMode:           getEnv("GIN_MODE", "debug"),
		LogFile:           getEnv("LOG_FILE", ""),
	}

	if boolEnv("USE_MOCK_STORE", false) {
		cfg.Store.Driver = DriverMemory
	}
	if cfg.Store.Driver == "" {
		if cfg.Store.URL == "" {
			log.Println("DATA_STORE_URL not set, using in-memory store")
			cfg.Store.Driver = DriverMemory
		} else {
			cfg.Store.Driver = DriverPostgres
		}
	}

	if cfg.Access.RolesFile != "" {
		allow, err := LoadRoles(cfg.Access.RolesFile)
		if err != nil {
			errs = append(errs, err.Error())
		}
		cfg.Access.Allow = allow
	}
	if cfg.Auth.BootstrapEmail != "" {
		cfg.Access.Allow[strings.ToLower(cfg.Auth.BootstrapEmail)] = profile.RoleSuperAdmin
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == defaultJWTSecret {
		log.Println("JWT_SECRET not set, using the built-in development secret")
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted silently.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverPostgres, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("unsupported DATA_STORE_DRIVER %q", c.Store.Driver)
	}
	switch c.Mail.Provider {
	case "smtp", "sendgrid", "resend", "log":
	default:
		return fmt.Errorf("unsupported EMAIL_PROVIDER %q", c.Mail.Provider)
	}
	if !c.Access.DefaultRole.Valid() {
		return fmt.Errorf("unknown DEFAULT_ROLE %q", c.Access.DefaultRole)
	}
	if c.Access.DefaultRole != profile.RoleViewOnly && c.Access.DefaultRole != profile.RoleFaculty {
		return fmt.Errorf("DEFAULT_ROLE must not grant admin access, got %q", c.Access.DefaultRole)
	}
	if c.Mail.MaxAttempts < 1 {
		return fmt.Errorf("MAIL_MAX_ATTEMPTS must be at least 1")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
