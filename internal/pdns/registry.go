package pdns

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/pdns-tui/pdns-tui/internal/config"
)

// ZoneListing is the outcome of one server's zone listing within the
// aggregate fan-out. Err is set when that server failed; its zones
// are then absent, not the whole aggregate.
type ZoneListing struct {
	Server string
	Zones  []Zone
	Err    error
}

// Registry owns one client per configured server. The client map is
// read-only after construction.
type Registry struct {
	names   []string
	clients map[string]*Client
}

// NewRegistry builds clients for all configured servers, preserving
// configuration order for aggregate listings.
func NewRegistry(cfg config.Config) *Registry {
	r := &Registry{
		names:   make([]string, 0, len(cfg.Servers)),
		clients: make(map[string]*Client, len(cfg.Servers)),
	}

	for _, server := range cfg.Servers {
		r.names = append(r.names, server.Name)
		r.clients[server.Name] = NewClient(server, cfg.Timeout)
	}

	return r
}

// Len returns the number of registered servers.
func (r *Registry) Len() int { return len(r.names) }

// Names returns the server names in configuration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)

	return names
}

// ClientFor returns the client registered under name.
func (r *Registry) ClientFor(name string) (*Client, error) {
	client, ok := r.clients[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownServer, "server %q", name)
	}

	return client, nil
}

// ListAllZones queries every server concurrently, each bounded by its
// own timeout. A failing server contributes an error marker instead
// of aborting the aggregate, so callers can render partial data.
// Listings come back in configuration order.
func (r *Registry) ListAllZones(ctx context.Context) []ZoneListing {
	listings := make([]ZoneListing, len(r.names))

	var wg sync.WaitGroup

	for i, name := range r.names {
		wg.Add(1)

		go func(i int, client *Client) {
			defer wg.Done()

			zones, err := client.ListZones(ctx)
			if err != nil {
				log.Error().
					Err(err).
					Str("server", client.Name()).
					Msg("zone listing failed")
			}

			listings[i] = ZoneListing{Server: client.Name(), Zones: zones, Err: err}
		}(i, r.clients[name])
	}

	wg.Wait()

	return listings
}
