package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Resolver  ResolverConfig  `yaml:"resolver"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Monitor   MonitorConfig   `yaml:"monitor"`
	GLEIF     GLEIFConfig     `yaml:"gleif"`
	Extractor ExtractorConfig `yaml:"extractor"`
	Redis     RedisConfig     `yaml:"redis"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	CORS      CORSConfig      `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`

	// SubmitRateLimit throttles batch submissions per client IP per minute.
	SubmitRateLimit int `yaml:"submit_rate_limit" env:"SERVER_SUBMIT_RATE_LIMIT" env-default:"30"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// ResolverConfig holds batch execution settings.
type ResolverConfig struct {
	// Concurrency is the chunk size: tasks within a chunk run
	// concurrently, chunks run strictly one after another.
	Concurrency int `yaml:"concurrency" env:"RESOLVER_CONCURRENCY" env-default:"10"`

	// SuccessThreshold is the minimum confidence for a task to finish
	// as SUCCESS rather than LOW_CONFIDENCE.
	SuccessThreshold int `yaml:"success_threshold" env:"RESOLVER_SUCCESS_THRESHOLD" env-default:"30"`

	// CacheThreshold is the minimum confidence a prior result needs
	// before it may be copied to a new task instead of re-resolving.
	CacheThreshold int `yaml:"cache_threshold" env:"RESOLVER_CACHE_THRESHOLD" env-default:"85"`

	// TaskTimeout is how long a task may sit in PROCESSING before the
	// stuck-task sweep force-fails it.
	TaskTimeout time.Duration `yaml:"task_timeout" env:"RESOLVER_TASK_TIMEOUT" env-default:"90s"`
}

// ScoringConfig holds the candidate scoring weights. They must sum to 1.
type ScoringConfig struct {
	NameWeight         float64 `yaml:"name_weight"         env:"SCORING_NAME_WEIGHT"         env-default:"0.40"`
	JurisdictionWeight float64 `yaml:"jurisdiction_weight" env:"SCORING_JURISDICTION_WEIGHT" env-default:"0.20"`
	EntityTypeWeight   float64 `yaml:"entity_type_weight"  env:"SCORING_ENTITY_TYPE_WEIGHT"  env-default:"0.15"`
	StatusWeight       float64 `yaml:"status_weight"       env:"SCORING_STATUS_WEIGHT"       env-default:"0.25"`
}

// MonitorConfig holds the background sweep periods.
type MonitorConfig struct {
	StuckInterval  time.Duration `yaml:"stuck_interval"  env:"MONITOR_STUCK_INTERVAL"  env-default:"5s"`
	HealthInterval time.Duration `yaml:"health_interval" env:"MONITOR_HEALTH_INTERVAL" env-default:"30s"`

	// StallThreshold is how long a PROCESSING batch may go without any
	// task completing before the health sweep re-triggers it.
	StallThreshold time.Duration `yaml:"stall_threshold" env:"MONITOR_STALL_THRESHOLD" env-default:"2m"`
}

// GLEIFConfig holds GLEIF registry client settings.
type GLEIFConfig struct {
	BaseURL  string        `yaml:"base_url"  env:"GLEIF_BASE_URL"  env-default:"https://api.gleif.org/api/v1"`
	Timeout  time.Duration `yaml:"timeout"   env:"GLEIF_TIMEOUT"   env-default:"15s"`
	PageSize int           `yaml:"page_size" env:"GLEIF_PAGE_SIZE" env-default:"10"`
}

// ExtractorConfig holds extraction service client settings.
type ExtractorConfig struct {
	BaseURL string        `yaml:"base_url" env:"EXTRACTOR_BASE_URL" env-required:"true"`
	Timeout time.Duration `yaml:"timeout"  env:"EXTRACTOR_TIMEOUT"  env-default:"45s"`
}

// RedisConfig holds the optional resolved-domain cache settings.
// An empty Addr disables the cache; lookups fall through to PostgreSQL.
type RedisConfig struct {
	Addr     string        `yaml:"addr"     env:"REDIS_ADDR"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db"       env:"REDIS_DB"  env-default:"0"`
	TTL      time.Duration `yaml:"ttl"      env:"REDIS_TTL" env-default:"168h"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED" env-default:"true"`
	Addr    string `yaml:"addr"    env:"METRICS_ADDR"    env-default:":9091"`
}

// CORSConfig holds CORS settings for the dashboard origin.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}
