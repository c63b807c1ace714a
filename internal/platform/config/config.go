package config

import (
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"time"

	"loanrisk/pkg/platform/middleware/metadata"
)

// Config is the server's runtime configuration.
type Config struct {
	Server    Server
	Model     Model
	Redis     RedisConfig
	RateLimit RateLimit
}

// Server captures HTTP server level configuration. Forwarding headers are
// only trusted from TrustedProxies; empty means the peer address is the client.
type Server struct {
	Addr           string
	LogLevel       string
	TrustedProxies []netip.Prefix
}

// Model locates the classifier artifact. When ClassifierURL is set scoring
// is delegated to that endpoint and only the feature-name file is read.
type Model struct {
	Path              string
	FeatureNamesPath  string
	ClassifierURL     string
	ClassifierVersion string
	ClassifierTimeout time.Duration
}

// RedisConfig configures the shared rate limit store. An empty URL means
// Redis is not used.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RateLimit configures the per-IP request limit on the risk API.
type RateLimit struct {
	Requests int
	Window   time.Duration
	Disabled bool
}

// Defaults applied when the environment leaves a value unset.
const (
	DefaultAddr              = ":8080"
	DefaultModelPath         = "models/model.json"
	DefaultFeatureNamesPath  = "models/feature_names.json"
	DefaultClassifierVersion = "remote"
	DefaultClassifierTimeout = 2 * time.Second
	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = time.Minute
)

// FromEnv builds the config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	return fromLookup(os.Getenv)
}

func fromLookup(getenv func(string) string) (Config, error) {
	env := envReader{getenv: getenv}

	cfg := Config{
		Server: Server{
			Addr:     env.string("LOANRISK_ADDR", DefaultAddr),
			LogLevel: env.string("LOG_LEVEL", "info"),
		},
		Model: Model{
			Path:              env.string("MODEL_PATH", DefaultModelPath),
			FeatureNamesPath:  env.string("FEATURE_NAMES_PATH", DefaultFeatureNamesPath),
			ClassifierURL:     env.string("CLASSIFIER_URL", ""),
			ClassifierVersion: env.string("CLASSIFIER_MODEL_VERSION", DefaultClassifierVersion),
			ClassifierTimeout: env.duration("CLASSIFIER_TIMEOUT", DefaultClassifierTimeout),
		},
		Redis: RedisConfig{
			URL:          env.string("REDIS_URL", ""),
			PoolSize:     env.int("REDIS_POOL_SIZE", 10),
			MinIdleConns: env.int("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  env.duration("REDIS_DIAL_TIMEOUT", 2*time.Second),
			ReadTimeout:  env.duration("REDIS_READ_TIMEOUT", 500*time.Millisecond),
			WriteTimeout: env.duration("REDIS_WRITE_TIMEOUT", 500*time.Millisecond),
		},
		RateLimit: RateLimit{
			Requests: env.int("RATE_LIMIT_REQUESTS", DefaultRateLimitRequests),
			Window:   env.duration("RATE_LIMIT_WINDOW", DefaultRateLimitWindow),
			Disabled: env.bool("RATE_LIMIT_DISABLED", false),
		},
	}
	if env.err != nil {
		return Config{}, env.err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.RateLimit.Requests <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.RateLimit.Requests)
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.RateLimit.Window)
	}
	if c.Model.ClassifierTimeout <= 0 {
		return fmt.Errorf("CLASSIFIER_TIMEOUT must be positive, got %s", c.Model.ClassifierTimeout)
	}
	return nil
}

// envReader keeps the first parse error so FromEnv reads as a flat list.
type envReader struct {
	getenv func(string) string
	err    error
}

func (e *envReader) string(key, def string) string {
	if v := e.getenv(key); v != "" {
		return v
	}
	return def
}

func (e *envReader) int(key string, def int) int {
	v := e.getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return n
}

func (e *envReader) duration(key string, def time.Duration) time.Duration {
	v := e.getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return d
}

func (e *envReader) bool(key string, def bool) bool {
	v := e.getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return b
}

func (e *envReader) prefixes(key string) []netip.Prefix {
	v := e.getenv(key)
	if v == "" {
		return nil
	}
	p, err := metadata.ParsePrefixes(v)
	if err != nil {
		e.fail(key, v, err)
		return nil
	}
	return p
}

func (e *envReader) fail(key, value string, err error) {
	if e.err == nil {
		e.err = fmt.Errorf("invalid %s=%q: %w", key, value, err)
	}
}
