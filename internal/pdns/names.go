package pdns

import (
	"fmt"
	"strings"
	"time"
)

// Canonical ensures the name has a trailing dot.
func Canonical(name string) string {
	if !strings.HasSuffix(name, ".") {
		return name + "."
	}

	return name
}

// displayName returns a user-friendly name for a record by stripping the zone suffix.
func displayName(fullName, zoneName string) string {
	// If it's the zone itself, return @
	if fullName == zoneName || fullName == strings.TrimSuffix(zoneName, ".") {
		return "@"
	}
	// Strip the zone name suffix for display
	zoneWithoutDot := strings.TrimSuffix(zoneName, ".")
	if strings.HasSuffix(fullName, "."+zoneWithoutDot+".") {
		return strings.TrimSuffix(fullName, "."+zoneWithoutDot+".")
	} else if strings.HasSuffix(fullName, "."+zoneWithoutDot) {
		return strings.TrimSuffix(fullName, "."+zoneWithoutDot)
	}

	return fullName
}

// IsReverse checks if the given zone name is a reverse DNS zone.
func IsReverse(zone string) bool {
	zone = Canonical(zone)

	switch {
	case strings.HasSuffix(zone, "ip6.arpa."):
		return true

	case strings.HasSuffix(zone, "in-addr.arpa."):
		return true
	}

	return false
}

// qualify resolves a record name entered relative to its zone into a
// canonical fully qualified name. Empty, "@" and the zone name itself
// address the apex; a trailing dot marks an already qualified name.
func qualify(name, zone string) string {
	zone = Canonical(zone)
	name = strings.TrimSpace(name)

	if name == "" || name == "@" || name == strings.TrimSuffix(zone, ".") {
		return zone
	}

	if strings.HasSuffix(name, ".") {
		return name
	}

	return name + "." + zone
}

// soaContent builds the initial SOA content for a fresh zone, using
// the YYYYMMDD00 serial convention.
func soaContent(zone string, now time.Time) string {
	zone = Canonical(zone)

	return fmt.Sprintf("ns1.%s hostmaster.%s %s00 28800 7200 604800 86400",
		zone, zone, now.Format("20060102"))
}
