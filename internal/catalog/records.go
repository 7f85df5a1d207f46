package catalog

import (
	"strings"

	"github.com/pdns-tui/pdns-tui/internal/pdns"
)

// Records holds the record snapshot of one zone.
type Records struct {
	zone    string
	entries []pdns.Record
}

// Zone returns the canonical name of the zone the snapshot belongs to.
func (r *Records) Zone() string {
	return r.zone
}

// Rebuild replaces the snapshot with a fresh fetch.
func (r *Records) Rebuild(zone string, records []pdns.Record) {
	r.zone = zone
	r.entries = records
}

// Filter returns the records whose name, type or content contains the
// query, case-insensitively, in snapshot order. An empty query
// returns the full snapshot.
func (r *Records) Filter(query string) []pdns.Record {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]pdns.Record, 0, len(r.entries))

	for _, rec := range r.entries {
		if query == "" || recordMatches(rec, query) {
			out = append(out, rec)
		}
	}

	return out
}

// Upsert patches the snapshot after a confirmed remote replace. A set
// matching the record's name and type is replaced in place to keep
// its position; otherwise the record is appended.
func (r *Records) Upsert(rec pdns.Record) {
	for i, existing := range r.entries {
		if existing.Name == rec.Name && existing.Type == rec.Type {
			r.entries[i] = rec
			return
		}
	}

	r.entries = append(r.entries, rec)
}

// Remove drops the set matching name and rtype after a confirmed
// remote delete.
func (r *Records) Remove(name, rtype string) {
	for i, rec := range r.entries {
		if rec.Name == name && rec.Type == rtype {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return
		}
	}
}

func recordMatches(rec pdns.Record, query string) bool {
	if strings.Contains(strings.ToLower(rec.Name), query) ||
		strings.Contains(strings.ToLower(rec.Type), query) {
		return true
	}

	for _, content := range rec.Contents {
		if strings.Contains(strings.ToLower(content), query) {
			return true
		}
	}

	return false
}
