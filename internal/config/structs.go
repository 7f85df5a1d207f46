package config

import (
	"net/url"
	"time"

	"github.com/pdns-tui/pdns-tui/internal/logger"
)

// Server identifies one reachable PowerDNS API endpoint.
// The set of servers is immutable after loading.
type Server struct {
	Name   string `mapstructure:"name"    validate:"required"`
	URL    string `mapstructure:"url"     validate:"required,url"`
	APIKey string `mapstructure:"api_key" validate:"required"`

	// VHost is the server ID in API paths, almost always "localhost".
	VHost string `mapstructure:"vhost"`
}

// Host returns the host portion of the server URL for display.
func (s Server) Host() string {
	u, err := url.Parse(s.URL)
	if err != nil || u.Hostname() == "" {
		return s.URL
	}

	return u.Hostname()
}

// Config overall data structure.
type Config struct {
	Servers []Server `mapstructure:"servers" validate:"dive"`

	// Timeout bounds every API round-trip, including each server of the
	// zone listing fan-out.
	Timeout time.Duration `mapstructure:"timeout"`

	Log logger.Log `mapstructure:"log"`
}
