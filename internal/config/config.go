package config // package config loads application configuration from environment variables

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Only SESSION_SECRET is mandatory; everything else
// falls back to a development default.
type Config struct {
	Env           string        // application environment (e.g. "dev", "prod")
	Port          string        // HTTP port to listen on
	DBUser        string        // database username
	DBPass        string        // database password (optional)
	DBHost        string        // database host address
	DBPort        string        // database port number
	DBName        string        // database name
	SessionSecret string        // secret used to sign session tokens
	SessionTTL    time.Duration // lifetime of a session token
	CookieSecure  bool          // mark the session cookie Secure
	BcryptCost    int           // bcrypt cost for password hashing
	LogLevel      string        // zap level name
	Upload        UploadConfig  // image storage settings
	AdminEmail    string        // email of the bootstrap administrator
	AdminPassword string        // password of the bootstrap administrator
}

// UploadConfig describes where complaint images are kept.  Backend is either
// "local" (files under Dir) or "s3".
type UploadConfig struct {
	Backend  string
	Dir      string
	MaxBytes int64
	S3       S3Config
}

// S3Config configures an S3-compatible bucket for image storage.
type S3Config struct {
	Endpoint     string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
}

// ErrMissingSecret is returned by Load when SESSION_SECRET is not set.
var ErrMissingSecret = errors.New("missing required env var: SESSION_SECRET")

// Load reads an optional .env file and then builds a Config from the
// process environment.
func Load() (Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := Config{
		Env:           envStr("APP_ENV", "dev"),
		Port:          envStr("APP_PORT", "8080"),
		DBUser:        envStr("DB_USER", "root"),
		DBPass:        os.Getenv("DB_PASS"),
		DBHost:        envStr("DB_HOST", "127.0.0.1"),
		DBPort:        envStr("DB_PORT", "3306"),
		DBName:        envStr("DB_NAME", "hostel_complaints"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionTTL:    time.Duration(envInt("SESSION_TTL_HOURS", 12)) * time.Hour,
		CookieSecure:  envBool("COOKIE_SECURE", false),
		BcryptCost:    envInt("BCRYPT_COST", 12),
		LogLevel:      envStr("LOG_LEVEL", "info"),
		Upload: UploadConfig{
			Backend:  strings.ToLower(envStr("UPLOAD_BACKEND", "local")),
			Dir:      envStr("UPLOAD_DIR", "static/uploads"),
			MaxBytes: int64(envInt("MAX_UPLOAD_BYTES", 16*1024*1024)),
			S3: S3Config{
				Endpoint:     os.Getenv("S3_ENDPOINT"),
				Region:       envStr("S3_REGION", "us-east-1"),
				Bucket:       os.Getenv("S3_BUCKET"),
				AccessKey:    os.Getenv("S3_ACCESS_KEY"),
				SecretKey:    os.Getenv("S3_SECRET_KEY"),
				UsePathStyle: envBool("S3_USE_PATH_STYLE", true),
			},
		},
		AdminEmail:    envStr("ADMIN_EMAIL", "admin@hostel.com"),
		AdminPassword: envStr("ADMIN_PASSWORD", "admin123"),
	}

	if cfg.SessionSecret == "" {
		return Config{}, ErrMissingSecret
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 12 * time.Hour
	}
	switch cfg.Upload.Backend {
	case "local":
	case "s3":
		if cfg.Upload.S3.Bucket == "" {
			return Config{}, errors.New("S3_BUCKET is required when UPLOAD_BACKEND=s3")
		}
	default:
		return Config{}, fmt.Errorf("unknown UPLOAD_BACKEND %q", cfg.Upload.Backend)
	}
	return cfg, nil
}

// IsProduction reports whether the app runs with APP_ENV=prod or production.
func (c Config) IsProduction() bool {
	return c.Env == "prod" || c.Env == "production"
}

// DSN returns the MySQL data source name for the configured database.
// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
func (c Config) DSN() string {
	auth := c.DBUser
	if c.DBPass != "" {
		auth = fmt.Sprintf("%s:%s", c.DBUser, c.DBPass)
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, c.DBHost, c.DBPort, c.DBName)
}
