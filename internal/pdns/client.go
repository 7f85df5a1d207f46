package pdns

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	pdnsapi "github.com/joeig/go-powerdns/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/pdns-tui/pdns-tui/internal/config"
)

const (
	// DefaultRecordTTL is used when a record form leaves the TTL blank.
	DefaultRecordTTL uint32 = 3600

	soaTTL uint32 = 86400

	// detailWorkers bounds the concurrent zone detail fetches that fill
	// in record counts after a listing.
	detailWorkers = 4
)

// Client translates catalog-level intents into REST calls against one
// PowerDNS server. All methods are synchronous round-trips without
// automatic retries; a failed call surfaces immediately.
type Client struct {
	server   config.Server
	timeout  time.Duration
	api      *pdnsapi.Client
	validate *validator.Validate
}

// NewClient builds a client for one configured server.
func NewClient(server config.Server, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}

	vhost := server.VHost
	if vhost == "" {
		vhost = config.DefaultVHost
	}

	return &Client{
		server:   server,
		timeout:  timeout,
		api:      pdnsapi.New(server.URL, vhost, pdnsapi.WithAPIKey(server.APIKey)),
		validate: validator.New(),
	}
}

// Name returns the configured name of the server.
func (c *Client) Name() string { return c.server.Name }

// Host returns the server host for display.
func (c *Client) Host() string { return c.server.Host() }

// opCtx bounds one API operation with the client timeout.
func (c *Client) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

// ListZones returns all zones of the server, tagged with its name.
func (c *Client) ListZones(ctx context.Context) ([]Zone, error) {
	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	apiZones, err := c.api.Zones.List(ctx)
	if err != nil {
		return nil, classify(err)
	}

	zones := make([]Zone, len(apiZones))
	for i := range apiZones {
		zones[i] = c.zoneFromAPI(&apiZones[i])
	}

	c.fillRecordCounts(ctx, zones)

	return zones, nil
}

// fillRecordCounts fetches zone details a few at a time to count each
// zone's RRsets; the listing endpoint leaves rrsets out. A zone whose
// detail fetch fails keeps its listing data.
func (c *Client) fillRecordCounts(ctx context.Context, zones []Zone) {
	var wg sync.WaitGroup

	sem := make(chan struct{}, detailWorkers)

	for i := range zones {
		wg.Add(1)
		sem <- struct{}{}

		go func(z *Zone) {
			defer wg.Done()
			defer func() { <-sem }()

			detail, err := c.api.Zones.Get(ctx, z.Name)
			if err != nil {
				log.Debug().
					Err(err).
					Str("server", c.server.Name).
					Str("zone_name", z.Name).
					Msg("zone detail fetch failed")

				return
			}

			z.RecordCount = len(detail.RRsets)

			if detail.Serial != nil {
				z.Serial = *detail.Serial
			}

			if detail.NotifiedSerial != nil {
				z.NotifiedSerial = *detail.NotifiedSerial
			}
		}(&zones[i])
	}

	wg.Wait()
}

// GetZone fetches one zone by name.
func (c *Client) GetZone(ctx context.Context, name string) (Zone, error) {
	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	apiZone, err := c.api.Zones.Get(ctx, Canonical(name))
	if err != nil {
		return Zone{}, classify(err)
	}

	zone := c.zoneFromAPI(apiZone)
	zone.RecordCount = len(apiZone.RRsets)

	return zone, nil
}

// ListRecords fetches the zone detail and flattens its RRsets into
// Record entries.
func (c *Client) ListRecords(ctx context.Context, zone string) ([]Record, error) {
	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	zone = Canonical(zone)

	apiZone, err := c.api.Zones.Get(ctx, zone)
	if err != nil {
		return nil, classify(err)
	}

	return recordsFromRRSets(zone, apiZone.RRsets), nil
}

// CreateZone creates a zone of the given kind. Native and Master
// zones missing an SOA after creation get one seeded so the fresh
// zone is usable; Slave zones receive their records from the master.
func (c *Client) CreateZone(ctx context.Context, spec ZoneSpec) (Zone, error) {
	if err := c.validate.Struct(spec); err != nil {
		return Zone{}, errors.Wrap(ErrValidation, err.Error())
	}

	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	name := Canonical(spec.Name)

	var (
		created *pdnsapi.Zone
		err     error
	)

	switch spec.Kind {
	case ZoneKindNative:
		created, err = c.api.Zones.AddNative(
			ctx,
			name,
			false, // dnssec
			"",    // nsec3Param
			false, // nsec3Narrow
			"",    // soaEdit
			"",    // soaEditAPI
			false, // apiRectify
			canonicalAll(spec.Nameservers),
		)
	case ZoneKindMaster:
		created, err = c.api.Zones.AddMaster(
			ctx,
			name,
			false, // dnssec
			"",    // nsec3Param
			false, // nsec3Narrow
			"",    // soaEdit
			"",    // soaEditAPI
			false, // apiRectify
			canonicalAll(spec.Nameservers),
		)
	case ZoneKindSlave:
		created, err = c.api.Zones.AddSlave(ctx, name, spec.Masters)
	}

	if err != nil {
		return Zone{}, classify(err)
	}

	zone := c.zoneFromAPI(created)
	zone.RecordCount = len(created.RRsets)

	if spec.Kind != ZoneKindSlave && !hasSOA(created.RRsets) {
		if err := c.seedSOA(ctx, name); err != nil {
			log.Warn().
				Err(err).
				Str("server", c.server.Name).
				Str("zone_name", name).
				Msg("failed to seed SOA record")
		} else {
			zone.RecordCount++
		}
	}

	return zone, nil
}

// DeleteZone removes a zone by name.
func (c *Client) DeleteZone(ctx context.Context, name string) error {
	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	if err := c.api.Zones.Delete(ctx, Canonical(name)); err != nil {
		return classify(err)
	}

	return nil
}

// UpsertRecord creates or replaces the RRset matching the spec's name
// and type and returns the resulting record as stored.
func (c *Client) UpsertRecord(ctx context.Context, zone string, spec RecordSpec) (Record, error) {
	if err := c.validate.Struct(spec); err != nil {
		return Record{}, errors.Wrap(ErrValidation, err.Error())
	}

	zone = Canonical(zone)
	name := qualify(spec.Name, zone)

	contents := make([]string, 0, len(spec.Contents))

	for _, content := range spec.Contents {
		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}

		contents = append(contents, ensureQuotedContent(spec.Type, content))
	}

	if len(contents) == 0 {
		return Record{}, errors.Wrap(ErrValidation, "record content must not be empty")
	}

	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	err := c.patchRRset(ctx, zone, name, spec.Type, spec.TTL, contents, spec.Disabled, pdnsapi.ChangeTypeReplace)
	if err != nil {
		return Record{}, err
	}

	return Record{
		Zone:     zone,
		Name:     name,
		Type:     spec.Type,
		TTL:      spec.TTL,
		Contents: contents,
		Disabled: spec.Disabled,
	}, nil
}

// DeleteRecord removes the RRset matching name and rtype. The PATCH
// endpoint reports success for a DELETE of an absent set, so the set
// is looked up first to give the caller a real ErrNotFound.
func (c *Client) DeleteRecord(ctx context.Context, zone, name, rtype string) error {
	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	zone = Canonical(zone)
	name = qualify(name, zone)

	apiZone, err := c.api.Zones.Get(ctx, zone)
	if err != nil {
		return classify(err)
	}

	if !hasRRset(apiZone.RRsets, name, rtype) {
		return errors.Wrapf(ErrNotFound, "rrset %s %s", name, rtype)
	}

	return c.patchRRset(ctx, zone, name, rtype, 0, nil, false, pdnsapi.ChangeTypeDelete)
}

// patchRRset submits a single RRset change.
func (c *Client) patchRRset(
	ctx context.Context,
	zone, name, rtype string,
	ttl uint32,
	contents []string,
	disabled bool,
	changeType pdnsapi.ChangeType,
) error {
	records := make([]pdnsapi.Record, 0, len(contents))

	for _, content := range contents {
		recContent := content
		recDisabled := disabled

		records = append(records, pdnsapi.Record{
			Content:  &recContent,
			Disabled: &recDisabled,
		})
	}

	rrType := pdnsapi.RRType(rtype)
	rrSet := pdnsapi.RRset{
		Name:       &name,
		Type:       &rrType,
		ChangeType: &changeType,
		Records:    records,
	}

	if changeType == pdnsapi.ChangeTypeReplace {
		rrSet.TTL = &ttl
	}

	err := c.api.Records.Patch(ctx, zone, &pdnsapi.RRsets{Sets: []pdnsapi.RRset{rrSet}})
	if err != nil {
		return classify(err)
	}

	return nil
}

func (c *Client) seedSOA(ctx context.Context, zone string) error {
	content := soaContent(zone, time.Now())

	return c.patchRRset(ctx, zone, zone, "SOA", soaTTL, []string{content}, false, pdnsapi.ChangeTypeReplace)
}

// zoneFromAPI converts an API zone, tolerating absent fields.
func (c *Client) zoneFromAPI(z *pdnsapi.Zone) Zone {
	zone := Zone{Server: c.server.Name, Host: c.server.Host()}

	if z.ID != nil {
		zone.ID = *z.ID
	}

	if z.Name != nil {
		zone.Name = *z.Name
	}

	// some responses omit the id; it equals the canonical name
	if zone.ID == "" && zone.Name != "" {
		zone.ID = Canonical(zone.Name)
	}

	if z.Kind != nil {
		zone.Kind = string(*z.Kind)
	}

	if z.Serial != nil {
		zone.Serial = *z.Serial
	}

	if z.NotifiedSerial != nil {
		zone.NotifiedSerial = *z.NotifiedSerial
	}

	if z.DNSsec != nil {
		zone.DNSSec = *z.DNSsec
	}

	return zone
}

// recordsFromRRSets flattens API RRsets into Record entries, one per
// set. Sets with a missing name or type are dropped at this boundary
// rather than passed on half-formed.
func recordsFromRRSets(zone string, rrSets []pdnsapi.RRset) []Record {
	records := make([]Record, 0, len(rrSets))

	for i := range rrSets {
		rrSet := &rrSets[i]
		if rrSet.Name == nil || rrSet.Type == nil {
			continue
		}

		rec := Record{
			Zone: zone,
			Name: *rrSet.Name,
			Type: string(*rrSet.Type),
		}

		if rrSet.TTL != nil {
			rec.TTL = *rrSet.TTL
		}

		disabled := len(rrSet.Records) > 0

		for _, r := range rrSet.Records {
			if r.Content != nil {
				rec.Contents = append(rec.Contents, *r.Content)
			}

			if r.Disabled == nil || !*r.Disabled {
				disabled = false
			}
		}

		rec.Disabled = disabled

		records = append(records, rec)
	}

	return records
}

func hasSOA(rrSets []pdnsapi.RRset) bool {
	for i := range rrSets {
		if rrSets[i].Type != nil && *rrSets[i].Type == pdnsapi.RRTypeSOA {
			return true
		}
	}

	return false
}

func hasRRset(rrSets []pdnsapi.RRset, name, rtype string) bool {
	for i := range rrSets {
		if rrSets[i].Name == nil || rrSets[i].Type == nil {
			continue
		}

		if *rrSets[i].Name == name && string(*rrSets[i].Type) == rtype {
			return true
		}
	}

	return false
}

func canonicalAll(names []string) []string {
	out := make([]string, 0, len(names))

	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}

		out = append(out, Canonical(n))
	}

	return out
}
