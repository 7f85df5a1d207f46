// Package config resolves the PowerDNS server inventory from a YAML
// file or from command line flags.
package config

import (
	"encoding/json"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvConfigJSON overrides fields of the loaded configuration with a
// JSON document, mainly for containerized deployments.
const EnvConfigJSON = "PDNS_TUI_CONFIG_JSON"

const (
	DefaultTimeout  = 5 * time.Second
	DefaultVHost    = "localhost"
	DefaultLogLevel = "info"
)

// Resolve builds the configuration from the first available source:
// a config file when path is set, otherwise the --url/--api-key pair.
func Resolve(path, rawURL, apiKey string) (Config, error) {
	switch {
	case path != "":
		return Load(path)
	case rawURL != "" && apiKey != "":
		return FromFlags(rawURL, apiKey)
	default:
		return Config{}, ErrNoServers
	}
}

// Load reads the configuration from a YAML file.
func Load(path string) (Config, error) {
	var c Config

	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read config file")
	}

	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode config file")
	}

	// override it from env
	JSONConfigEnv := os.Getenv(EnvConfigJSON)

	if JSONConfigEnv != "" {
		var err error

		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	applyDefaults(&c)

	return c, validate(c)
}

// FromFlags builds a single-server configuration. The server name
// defaults to the host portion of the URL.
func FromFlags(rawURL, apiKey string) (Config, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Config{}, errors.Wrapf(err, "invalid server URL %q", rawURL)
	}

	name := u.Hostname()
	if name == "" {
		name = rawURL
	}

	c := Config{
		Servers: []Server{{Name: name, URL: rawURL, APIKey: apiKey}},
	}

	applyDefaults(&c)

	return c, validate(c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to decode "+EnvConfigJSON)
	}

	return c, nil
}

func applyDefaults(c *Config) {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}

	for i := range c.Servers {
		c.Servers[i].URL = normalizeServerURL(c.Servers[i].URL)

		if c.Servers[i].VHost == "" {
			c.Servers[i].VHost = DefaultVHost
		}
	}
}

// normalizeServerURL strips a trailing slash and a trailing /api/v1
// suffix. The API client appends the path prefix itself.
func normalizeServerURL(raw string) string {
	u := strings.TrimRight(raw, "/")
	u = strings.TrimSuffix(u, "/api/v1")

	return strings.TrimRight(u, "/")
}

// validate checks field constraints and rejects duplicate server names.
func validate(c Config) error {
	invalidErrMessage := "invalid config"

	if len(c.Servers) == 0 {
		return ErrNoServers
	}

	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, invalidErrMessage)
	}

	seen := make(map[string]struct{}, len(c.Servers))

	for _, s := range c.Servers {
		if _, ok := seen[s.Name]; ok {
			return errors.Wrapf(ErrDuplicateServer, "server %q", s.Name)
		}

		seen[s.Name] = struct{}{}
	}

	return nil
}
