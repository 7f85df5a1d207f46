package pdns

import (
	"testing"
	"time"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare", "example.com", "example.com."},
		{"already canonical", "example.com.", "example.com."},
		{"subdomain", "www.example.com", "www.example.com."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Canonical(tc.in); got != tc.want {
				t.Fatalf("Canonical(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		zoneName string
		want     string
	}{
		{"apex canonical", "example.com.", "example.com.", "@"},
		{"apex without dot", "example.com", "example.com.", "@"},
		{"subdomain", "www.example.com.", "example.com.", "www"},
		{"deep subdomain", "a.b.example.com.", "example.com.", "a.b"},
		{"foreign name kept", "other.org.", "example.com.", "other.org."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := displayName(tc.fullName, tc.zoneName); got != tc.want {
				t.Fatalf("displayName(%q, %q) = %q, want %q", tc.fullName, tc.zoneName, got, tc.want)
			}
		})
	}
}

func TestQualify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		zone string
		want string
	}{
		{"empty is apex", "", "example.com.", "example.com."},
		{"at is apex", "@", "example.com.", "example.com."},
		{"zone name is apex", "example.com", "example.com.", "example.com."},
		{"relative", "www", "example.com.", "www.example.com."},
		{"relative multi label", "a.b", "example.com.", "a.b.example.com."},
		{"already qualified", "www.example.com.", "example.com.", "www.example.com."},
		{"foreign qualified kept", "mail.other.org.", "example.com.", "mail.other.org."},
		{"surrounding whitespace", "  www  ", "example.com.", "www.example.com."},
		{"zone without dot", "www", "example.com", "www.example.com."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := qualify(tc.in, tc.zone); got != tc.want {
				t.Fatalf("qualify(%q, %q) = %q, want %q", tc.in, tc.zone, got, tc.want)
			}
		})
	}
}

func TestIsReverse(t *testing.T) {
	tests := []struct {
		name string
		zone string
		want bool
	}{
		{"forward", "example.com.", false},
		{"ipv4 reverse", "2.0.192.in-addr.arpa.", true},
		{"ipv6 reverse", "8.b.d.0.1.0.0.2.ip6.arpa.", true},
		{"reverse without dot", "2.0.192.in-addr.arpa", true},
		{"arpa lookalike", "in-addr-arpa.example.com.", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsReverse(tc.zone); got != tc.want {
				t.Fatalf("IsReverse(%q) = %v, want %v", tc.zone, got, tc.want)
			}
		})
	}
}

func TestSOAContent(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	got := soaContent("example.com.", now)
	want := "ns1.example.com. hostmaster.example.com. 2024031500 28800 7200 604800 86400"

	if got != want {
		t.Fatalf("soaContent() = %q, want %q", got, want)
	}
}

func TestZoneDisplayName(t *testing.T) {
	z := Zone{Name: "example.com."}
	if got := z.DisplayName(); got != "example.com" {
		t.Fatalf("DisplayName() = %q, want %q", got, "example.com")
	}
}

func TestRecordDisplayName(t *testing.T) {
	r := Record{Zone: "example.com.", Name: "www.example.com."}
	if got := r.DisplayName(); got != "www" {
		t.Fatalf("DisplayName() = %q, want %q", got, "www")
	}

	apex := Record{Zone: "example.com.", Name: "example.com."}
	if got := apex.DisplayName(); got != "@" {
		t.Fatalf("DisplayName() = %q, want %q", got, "@")
	}
}
