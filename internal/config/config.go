// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GameHub Contributors

// Package config loads and validates service configuration.
//
// Configuration comes from a YAML file with selected command-line flag
// overrides layered on top. Secret values (the session signing secret,
// the database password) use the Secret type so any diagnostic rendering
// of the configuration shows a fixed placeholder instead of the value.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// redactedPlaceholder is what a Secret renders as in any diagnostic
// output, independent of the secret's length or content.
const redactedPlaceholder = "[redacted]"

// Secret is a string whose value never appears in formatted output.
// Use Reveal to obtain the underlying value at the point of use.
type Secret string

// String implements fmt.Stringer with a fixed placeholder.
func (s Secret) String() string { return redactedPlaceholder }

// GoString hides the value from %#v formatting.
func (s Secret) GoString() string { return redactedPlaceholder }

// MarshalText hides the value from text and JSON serialization.
func (s Secret) MarshalText() ([]byte, error) { return []byte(redactedPlaceholder), nil }

// LogValue hides the value from slog output.
func (s Secret) LogValue() slog.Value { return slog.StringValue(redactedPlaceholder) }

// Reveal returns the underlying secret value.
func (s Secret) Reveal() string { return string(s) }

// Config is the root service configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Postgres PostgresConfig `koanf:"postgres"`
	Session  SessionConfig  `koanf:"session"`
	Google   GoogleConfig   `koanf:"google"`
	Log      LogConfig      `koanf:"log"`
}

// ServerConfig configures the public HTTP listener and the
// observability listener.
type ServerConfig struct {
	ListenAddr  string `koanf:"listen_addr"`
	MetricsAddr string `koanf:"metrics_addr"`
}

// PostgresConfig configures the backing store connection.
type PostgresConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Username string `koanf:"username"`
	Password Secret `koanf:"password"`
	Database string `koanf:"database"`
}

// URL returns the connection string for the configured database.
// The result embeds credentials; it is for dialing only and must never
// be logged.
func (c PostgresConfig) URL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.Username, c.Password.Reveal()),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   "/" + c.Database,
	}
	return u.String()
}

// SessionConfig configures session token issuance.
type SessionConfig struct {
	// Secret signs and verifies session tokens. Loaded once at startup;
	// rotating it invalidates every outstanding session.
	Secret Secret `koanf:"secret"`

	// TTL is how long issued session tokens remain valid.
	TTL time.Duration `koanf:"ttl"`
}

// GoogleConfig configures Google ID token verification.
type GoogleConfig struct {
	Issuer   string `koanf:"issuer"`
	ClientID string `koanf:"client_id"`
}

// LogConfig configures structured logging output.
type LogConfig struct {
	Format string `koanf:"format"`
}

// Defaults applied before file and flag layers.
var defaults = map[string]any{
	"server.listen_addr":  "127.0.0.1:8080",
	"server.metrics_addr": "127.0.0.1:9100",
	"postgres.port":       5432,
	"session.ttl":         "24h",
	"log.format":          "json",
}

// Load reads configuration from the given YAML file (optional) with flag
// overrides from flags (optional). Flags that were not explicitly set do
// not override file values.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return nil, oops.Code("CONFIG_DEFAULTS_FAILED").With("key", key).Wrap(err)
		}
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_FILE_FAILED").
				With("operation", "load config file").
				With("path", path).
				Wrap(err)
		}
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, oops.Code("CONFIG_FLAGS_FAILED").
				With("operation", "apply flag overrides").
				Wrap(err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Code("CONFIG_UNMARSHAL_FAILED").Wrap(err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration is complete.
func (c *Config) Validate() error {
	if c.Server.ListenAddr == "" {
		return oops.Code("CONFIG_INVALID").Errorf("server.listen_addr is required")
	}
	if c.Postgres.Host == "" {
		return oops.Code("CONFIG_INVALID").Errorf("postgres.host is required")
	}
	if c.Postgres.Username == "" {
		return oops.Code("CONFIG_INVALID").Errorf("postgres.username is required")
	}
	if c.Postgres.Database == "" {
		return oops.Code("CONFIG_INVALID").Errorf("postgres.database is required")
	}
	if c.Session.Secret.Reveal() == "" {
		return oops.Code("CONFIG_INVALID").Errorf("session.secret is required")
	}
	if c.Session.TTL <= 0 {
		return oops.Code("CONFIG_INVALID").Errorf("session.ttl must be positive")
	}
	if c.Google.ClientID == "" {
		return oops.Code("CONFIG_INVALID").Errorf("google.client_id is required")
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return oops.Code("CONFIG_INVALID").
			With("format", c.Log.Format).
			Errorf("log.format must be 'json' or 'text'")
	}
	return nil
}
