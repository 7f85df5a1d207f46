// Package pdns talks to the PowerDNS Authoritative REST API. A Client
// covers one server; the Registry owns one client per configured
// server and fans aggregate reads out across them.
package pdns

import (
	"strings"
)

// Zone kinds accepted by PowerDNS.
const (
	ZoneKindNative = "Native"
	ZoneKindMaster = "Master"
	ZoneKindSlave  = "Slave"
)

// Zone is one zone as reported by a single server. Identity is the
// pair (Server, ID); PowerDNS uses the canonical zone name as the ID.
type Zone struct {
	Server         string // configured name of the owning server
	Host           string // server host, shown next to the name
	ID             string // API identifier, the canonical name
	Name           string // canonical, with trailing dot
	Kind           string
	Serial         uint32
	NotifiedSerial uint32
	RecordCount    int
	DNSSec         bool
}

// DisplayName returns the zone name without the trailing dot.
func (z Zone) DisplayName() string {
	return strings.TrimSuffix(z.Name, ".")
}

// Record is one RRset of a zone. PowerDNS groups every value sharing
// a name and type into a single set; the whole set travels through
// each update, so sibling values survive an edit of one of them.
type Record struct {
	Zone     string // canonical zone name
	Name     string // canonical record name
	Type     string
	TTL      uint32
	Contents []string
	Disabled bool
}

// DisplayName returns the record name relative to its zone, with "@"
// for the apex.
func (r Record) DisplayName() string {
	return displayName(r.Name, r.Zone)
}

// ZoneSpec describes a zone to create.
type ZoneSpec struct {
	Name        string   `validate:"required"`
	Kind        string   `validate:"required,oneof=Native Master Slave"`
	Nameservers []string // optional NS seed for Native and Master zones
	Masters     []string // upstream servers, Slave zones only
}

// RecordSpec describes an RRset to create or replace. Name may be
// relative to the zone or fully qualified with a trailing dot.
type RecordSpec struct {
	Name     string
	Type     string   `validate:"required"`
	TTL      uint32   `validate:"gt=0"`
	Contents []string `validate:"min=1,dive,required"`
	Disabled bool
}
