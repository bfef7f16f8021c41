package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
}

// Dictionary sources.
const (
	// SourceAuto serves the CC-CEDICT file at cedict_path when it exists and
	// the bundled sample otherwise.
	SourceAuto     = "auto"
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Converter backends.
const (
	ConverterTable  = "table"
	ConverterOpenCC = "opencc"
)

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
// The database is optional: the dictionary can be served from the
// embedded dataset or from files on disk.
type DatabaseConfig struct {
	Enabled         bool          `yaml:"enabled"            env:"DATABASE_ENABLED"            env-default:"false"`
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// DictionaryConfig holds lexical engine settings.
type DictionaryConfig struct {
	Source                string        `yaml:"source"                  env:"DICT_SOURCE"                  env-default:"auto"`
	CedictPath            string        `yaml:"cedict_path"             env:"DICT_CEDICT_PATH"             env-default:"data/cedict_ts.u8"`
	HSKPath               string        `yaml:"hsk_path"                env:"DICT_HSK_PATH"`
	Converter             string        `yaml:"converter"               env:"DICT_CONVERTER"               env-default:"table"`
	CacheSize             int           `yaml:"cache_size"              env:"DICT_CACHE_SIZE"              env-default:"4096"`
	MaxInputRunes         int           `yaml:"max_input_runes"         env:"DICT_MAX_INPUT_RUNES"         env-default:"2048"`
	MaxResults            int           `yaml:"max_results"             env:"DICT_MAX_RESULTS"             env-default:"100"`
	PinyinFallbackEnglish bool          `yaml:"pinyin_fallback_english" env:"DICT_PINYIN_FALLBACK_ENGLISH" env-default:"true"`
	InitTimeout           time.Duration `yaml:"init_timeout"            env:"DICT_INIT_TIMEOUT"            env-default:"30s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-IP request limits for the lookup API.
// A zero RequestsPerMinute disables limiting.
type RateLimitConfig struct {
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"RATE_LIMIT_RPM"     env-default:"600"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"    env:"RATE_LIMIT_CLEANUP" env-default:"5m"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
