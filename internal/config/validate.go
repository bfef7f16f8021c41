package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if c.Database.Enabled && c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required when database.enabled is true")
	}

	if err := c.Dictionary.validate(c.Database.Enabled); err != nil {
		return fmt.Errorf("dictionary: %w", err)
	}

	if c.RateLimit.RequestsPerMinute < 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be >= 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

func (d *DictionaryConfig) validate(dbEnabled bool) error {
	switch d.Source {
	case SourceAuto, SourceEmbedded:
	case SourceFile:
		if d.CedictPath == "" {
			return fmt.Errorf("cedict_path is required for source %q", SourceFile)
		}
	case SourcePostgres:
		if !dbEnabled {
			return fmt.Errorf("source %q requires database.enabled", SourcePostgres)
		}
	default:
		return fmt.Errorf("source must be one of auto, embedded, file, postgres (got %q)", d.Source)
	}

	switch d.Converter {
	case ConverterTable, ConverterOpenCC:
	default:
		return fmt.Errorf("converter must be table or opencc (got %q)", d.Converter)
	}

	if d.CacheSize < 0 {
		return fmt.Errorf("cache_size must be >= 0 (got %d)", d.CacheSize)
	}
	if d.MaxInputRunes <= 0 {
		return fmt.Errorf("max_input_runes must be > 0 (got %d)", d.MaxInputRunes)
	}
	if d.MaxResults < 0 {
		return fmt.Errorf("max_results must be >= 0 (got %d)", d.MaxResults)
	}
	if d.InitTimeout <= 0 {
		return fmt.Errorf("init_timeout must be > 0 (got %s)", d.InitTimeout)
	}

	return nil
}
