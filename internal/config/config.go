package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bodavargasprado/wedding-api/internal/constants"
	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	GinMode    string
	DevMode    bool
	TLSDomains []string

	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	SQLiteFile  string

	RedisHost string
	RedisPort string

	SessionSecret   string
	JWTSecret       string
	AdminSecret     string
	AdminSecretHash string
	AdminTokenTTL   time.Duration

	AllowedOrigins        []string
	AllowedOriginSuffixes []string

	StorageDriver    string
	StorageBucket    string
	S3Region         string
	S3Endpoint       string
	S3AccessKey      string
	S3SecretKey      string
	StoragePublicURL string
	StorageDir       string
	MaxUploadBytes   int64

	GuestCapacity          int
	WeddingDate            time.Time
	GuestRemovalPolicy     string
	CodeGenerationAttempts int
}

// LoadEnvFiles loads .env.local, falling back to .env. Missing files are not an error.
func LoadEnvFiles() error {
	if err := godotenv.Load(".env.local"); err == nil {
		return nil
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func Load() *Config {
	origins := getEnvList("ALLOWED_ORIGINS", []string{
		"http://localhost:5173",
		"http://localhost:3000",
		"https://bodavargasprado.com",
		"https://www.bodavargasprado.com",
	})
	if frontend := getEnv("FRONTEND_URL", ""); frontend != "" {
		origins = append(origins, frontend)
	}

	sessionSecret := getEnv("SESSION_SECRET", "default-secret-key-change-me")

	return &Config{
		Port:       getEnv("PORT", "8080"),
		GinMode:    getEnv("GIN_MODE", "debug"),
		DevMode:    getEnvBool("DEV_MODE", false),
		TLSDomains: getEnvList("TLS_DOMAINS", nil),

		DBDriver:    getEnv("DB_DRIVER", "postgres"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "wedding"),
		DBPassword:  getEnv("DB_PASSWORD", "wedding"),
		DBName:      getEnv("DB_NAME", "wedding"),
		SQLiteFile:  getEnv("SQLITE_FILE", "wedding.db"),

		RedisHost: getEnv("REDIS_HOST", ""),
		RedisPort: getEnv("REDIS_PORT", "6379"),

		SessionSecret:   sessionSecret,
		JWTSecret:       getEnv("JWT_SECRET", sessionSecret),
		AdminSecret:     getEnv("ADMIN_SECRET", ""),
		AdminSecretHash: getEnv("ADMIN_SECRET_HASH", ""),
		AdminTokenTTL:   getEnvDuration("ADMIN_TOKEN_TTL", 12*time.Hour),

		AllowedOrigins:        origins,
		AllowedOriginSuffixes: getEnvList("ALLOWED_ORIGIN_SUFFIXES", []string{".vercel.app", "bodavargasprado.com"}),

		StorageDriver:    getEnv("STORAGE_DRIVER", "s3"),
		StorageBucket:    getEnv("STORAGE_BUCKET", "wedding-gallery"),
		S3Region:         getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:       getEnv("S3_ENDPOINT", ""),
		S3AccessKey:      getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:      getEnv("S3_SECRET_KEY", ""),
		StoragePublicURL: getEnv("STORAGE_PUBLIC_URL", ""),
		StorageDir:       getEnv("STORAGE_DIR", "./uploads"),
		MaxUploadBytes:   int64(getEnvInt("MAX_UPLOAD_BYTES", constants.DefaultMaxUploadBytes)),

		GuestCapacity:          getEnvInt("GUEST_CAPACITY", 120),
		WeddingDate:            getEnvTime("WEDDING_DATE", time.Date(2025, time.November, 22, 16, 0, 0, 0, time.FixedZone("COT", -5*3600))),
		GuestRemovalPolicy:     getEnv("GUEST_REMOVAL_POLICY", constants.GuestRemovalKeep),
		CodeGenerationAttempts: getEnvInt("CODE_GENERATION_ATTEMPTS", constants.DefaultCodeGenerationAttempts),
	}
}

// Validate reports every invalid setting at once so startup fails with a complete list.
func (c *Config) Validate() error {
	var errs []error

	switch c.DBDriver {
	case "postgres", "mysql", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be postgres, mysql or sqlite, got %q", c.DBDriver))
	}

	switch c.StorageDriver {
	case "s3":
		if c.StorageBucket == "" {
			errs = append(errs, errors.New("STORAGE_BUCKET is required for s3 storage"))
		}
	case "disk":
		if c.StorageDir == "" {
			errs = append(errs, errors.New("STORAGE_DIR is required for disk storage"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER must be s3 or disk, got %q", c.StorageDriver))
	}

	if c.AdminSecret == "" && c.AdminSecretHash == "" {
		errs = append(errs, errors.New("ADMIN_SECRET or ADMIN_SECRET_HASH is required"))
	}
	if c.AdminTokenTTL <= 0 {
		errs = append(errs, errors.New("ADMIN_TOKEN_TTL must be positive"))
	}
	if c.IsProduction() && c.SessionSecret == "default-secret-key-change-me" {
		errs = append(errs, errors.New("SESSION_SECRET must be set in release mode"))
	}

	switch c.GuestRemovalPolicy {
	case constants.GuestRemovalKeep, constants.GuestRemovalDecrement:
	default:
		errs = append(errs, fmt.Errorf("GUEST_REMOVAL_POLICY must be keep or decrement, got %q", c.GuestRemovalPolicy))
	}

	if c.CodeGenerationAttempts < 1 {
		errs = append(errs, errors.New("CODE_GENERATION_ATTEMPTS must be at least 1"))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_BYTES must be positive"))
	}
	if c.GuestCapacity < 0 {
		errs = append(errs, errors.New("GUEST_CAPACITY cannot be negative"))
	}

	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// ExposeErrorDetails reports whether 500 responses may carry internal details.
// Only DEV_MODE turns this on; gin's debug mode alone does not.
func (c *Config) ExposeErrorDetails() bool {
	return c.DevMode
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvTime(key string, defaultValue time.Time) time.Time {
	value, err := time.Parse(time.RFC3339, os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	var values []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
