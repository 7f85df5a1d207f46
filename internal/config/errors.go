package config

import (
	"errors"
)

var (
	// ErrNoServers error if no configuration source yields at least one server.
	ErrNoServers = errors.New("no PowerDNS servers configured: provide --config or --url together with --api-key")

	// ErrDuplicateServer error if two servers share a name.
	ErrDuplicateServer = errors.New("duplicate server name in configuration")
)
