// Package catalog keeps the latest fetched zone and record snapshots
// for display and filtering. Catalogs are disposable views, never a
// source of truth: a mutation always goes to the remote API through a
// client first, and the snapshot is patched only after remote success.
package catalog

import (
	"strings"

	"github.com/pdns-tui/pdns-tui/internal/pdns"
)

// ServerError marks a server whose listing failed during the last
// refresh. Its zones are missing from the snapshot.
type ServerError struct {
	Server string
	Err    error
}

// Zones holds the aggregated zone snapshot across all servers.
type Zones struct {
	entries []pdns.Zone
	errs    []ServerError
}

// Rebuild replaces the snapshot with fan-out results, keeping server
// order and each server's own zone order.
func (z *Zones) Rebuild(listings []pdns.ZoneListing) {
	entries := make([]pdns.Zone, 0, len(z.entries))

	var errs []ServerError

	for _, listing := range listings {
		if listing.Err != nil {
			errs = append(errs, ServerError{Server: listing.Server, Err: listing.Err})
			continue
		}

		entries = append(entries, listing.Zones...)
	}

	z.entries = entries
	z.errs = errs
}

// Filter returns the zones whose name, kind, server name or server
// host contains the query, case-insensitively, in snapshot order.
// An empty query returns the full snapshot.
func (z *Zones) Filter(query string) []pdns.Zone {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]pdns.Zone, 0, len(z.entries))

	for _, zone := range z.entries {
		if query == "" || zoneMatches(zone, query) {
			out = append(out, zone)
		}
	}

	return out
}

// Errors lists the servers that failed during the last rebuild.
func (z *Zones) Errors() []ServerError {
	return z.errs
}

// Add appends a zone after a confirmed remote create.
func (z *Zones) Add(zone pdns.Zone) {
	z.entries = append(z.entries, zone)
}

// Remove drops a zone after a confirmed remote delete.
func (z *Zones) Remove(server, name string) {
	for i, zone := range z.entries {
		if zone.Server == server && zone.Name == name {
			z.entries = append(z.entries[:i], z.entries[i+1:]...)
			return
		}
	}
}

func zoneMatches(zone pdns.Zone, query string) bool {
	return strings.Contains(strings.ToLower(zone.Name), query) ||
		strings.Contains(strings.ToLower(zone.Kind), query) ||
		strings.Contains(strings.ToLower(zone.Server), query) ||
		strings.Contains(strings.ToLower(zone.Host), query)
}
