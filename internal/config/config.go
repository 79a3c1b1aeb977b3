package config

import (
	"crypto/tls"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/5w1tchy/catalog-api/internal/storage/s3"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

type Config struct {
	Env  string
	Addr string

	DatabaseURL string

	RedisURL      string
	RedisAddr     string
	RedisUser     string
	RedisPassword string
	StatsCacheTTL time.Duration

	RateLimitRPS    float64
	RateLimitBurst  int
	RateLimitHourly int

	JWTSecret string
	ClockSkew time.Duration

	S3 s3.Options

	CORSOrigins []string
	MaxBodySize int64

	TLSCert string
	TLSKey  string
}

// LoadEnvFiles reads .env then .env.local; real environment always wins.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load reads the process environment. Call LoadEnvFiles first to pick up dotenv files.
func Load() (Config, error) {
	c := Config{
		Env:           strings.ToLower(getenv("APP_ENV", "production")),
		Addr:          getenv("APP_ADDR", ":3000"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisUser:     os.Getenv("REDIS_USER"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     os.Getenv("AUTH_JWT_SECRET"),
		S3: s3.Options{
			Endpoint:        os.Getenv("AWS_ENDPOINT"),
			Region:          getenv("AWS_REGION", "auto"),
			Bucket:          os.Getenv("AWS_BUCKET"),
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
		CORSOrigins: splitList(getenv("CORS_ORIGINS", "http://localhost:3000")),
		TLSCert:     os.Getenv("TLS_CERT"),
		TLSKey:      os.Getenv("TLS_KEY"),
	}

	var err error
	if c.StatsCacheTTL, err = envSeconds("STATS_CACHE_TTL", 30); err != nil {
		return c, err
	}
	if c.ClockSkew, err = envSeconds("AUTH_CLOCK_SKEW_SEC", 60); err != nil {
		return c, err
	}
	if c.RateLimitRPS, err = envFloat("RATE_LIMIT_RPS", 5); err != nil {
		return c, err
	}
	if c.RateLimitBurst, err = envInt("RATE_LIMIT_BURST", 20); err != nil {
		return c, err
	}
	if c.RateLimitHourly, err = envInt("RATE_LIMIT_HOURLY", 3000); err != nil {
		return c, err
	}
	size, err := envInt("MAX_BODY_SIZE", 12<<20)
	if err != nil {
		return c, err
	}
	c.MaxBodySize = int64(size)
	return c, nil
}

// Validate fails fast on bad config.
func (c Config) Validate() error {
	if c.Env != "development" && c.Env != "production" {
		return fmt.Errorf("APP_ENV must be development or production, got %q", c.Env)
	}
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL not set")
	}
	if c.JWTSecret != "" && len(c.JWTSecret) < 32 {
		return errors.New("AUTH_JWT_SECRET must be at least 32 characters")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 || c.RateLimitHourly <= 0 {
		return errors.New("RATE_LIMIT_RPS, RATE_LIMIT_BURST and RATE_LIMIT_HOURLY must be > 0")
	}
	if c.MaxBodySize <= 0 {
		return errors.New("MAX_BODY_SIZE must be > 0")
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return errors.New("TLS_CERT and TLS_KEY must be set together")
	}
	if c.RedisURL == "" && c.RedisAddr != "" && c.RedisUser == "" && c.RedisPassword != "" {
		return errors.New("REDIS_PASSWORD set without REDIS_USER")
	}
	return nil
}

// Warnings returns non-fatal hardening notes to log on startup.
func (c Config) Warnings() []string {
	var warns []string
	if c.JWTSecret == "" {
		warns = append(warns, "AUTH_JWT_SECRET not set; write routes are open")
	}
	if !c.RedisEnabled() {
		warns = append(warns, "no Redis configured; stats cache and rate limiting disabled")
	}
	if !c.S3.Configured() {
		warns = append(warns, "AWS_* not set; cover uploads disabled")
	}
	if c.IsProduction() {
		if strings.HasPrefix(c.RedisURL, "redis://") {
			warns = append(warns, "REDIS_URL uses redis:// (no TLS). Prefer rediss:// for TLS")
		}
		if c.RedisURL == "" && c.RedisAddr != "" && c.RedisPassword == "" {
			warns = append(warns, "REDIS_ADDR provided without REDIS_USER/REDIS_PASSWORD; require auth in production")
		}
		if c.TLSCert == "" {
			warns = append(warns, "TLS_CERT/TLS_KEY not set; serving plain HTTP")
		}
		for _, o := range c.CORSOrigins {
			if o == "*" {
				warns = append(warns, "CORS_ORIGINS contains *; any site may call the API")
			}
		}
	}
	if c.StatsCacheTTL > 10*time.Minute {
		warns = append(warns, fmt.Sprintf("STATS_CACHE_TTL=%s is long; stats may lag behind writes on a failed version bump", c.StatsCacheTTL))
	}
	return warns
}

func (c Config) IsProduction() bool  { return c.Env == "production" }
func (c Config) IsDevelopment() bool { return c.Env == "development" }
func (c Config) RedisEnabled() bool  { return c.RedisURL != "" || c.RedisAddr != "" }

// RedisOptions builds client options from REDIS_URL, or from the split fields.
func (c Config) RedisOptions() (*redis.Options, error) {
	if c.RedisURL != "" {
		opt, err := redis.ParseURL(c.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		opt.DialTimeout = 5 * time.Second
		opt.ReadTimeout = 1 * time.Second
		opt.WriteTimeout = 1 * time.Second
		return opt, nil
	}
	if c.RedisAddr == "" {
		return nil, errors.New("redis not configured")
	}
	opt := &redis.Options{
		Addr:         c.RedisAddr,
		Username:     c.RedisUser,
		Password:     c.RedisPassword,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	}
	if c.IsProduction() {
		opt.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return opt, nil
}

// --- helpers ---

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: not a number: %q", key, s)
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: not a number: %q", key, s)
	}
	return f, nil
}

func envSeconds(key string, def int) (time.Duration, error) {
	n, err := envInt(key, def)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%s: must be >= 0", key)
	}
	return time.Duration(n) * time.Second, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
