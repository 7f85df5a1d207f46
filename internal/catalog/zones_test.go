package catalog

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdns-tui/pdns-tui/internal/pdns"
)

func testListings() []pdns.ZoneListing {
	return []pdns.ZoneListing{
		{
			Server: "alpha",
			Zones: []pdns.Zone{
				{Server: "alpha", Host: "ns1.example.com", Name: "example.com.", Kind: "Native"},
				{Server: "alpha", Host: "ns1.example.com", Name: "example.org.", Kind: "Master"},
			},
		},
		{
			Server: "beta",
			Zones: []pdns.Zone{
				{Server: "beta", Host: "ns2.example.com", Name: "internal.lan.", Kind: "Native"},
			},
		},
	}
}

func TestZonesRebuild(t *testing.T) {
	var zones Zones

	zones.Rebuild(testListings())

	all := zones.Filter("")
	require.Len(t, all, 3)
	assert.Equal(t, "example.com.", all[0].Name)
	assert.Equal(t, "example.org.", all[1].Name)
	assert.Equal(t, "internal.lan.", all[2].Name)
	assert.Empty(t, zones.Errors())
}

func TestZonesRebuildPartialFailure(t *testing.T) {
	listings := testListings()
	listings[1] = pdns.ZoneListing{Server: "beta", Err: errors.New("connection refused")}

	var zones Zones

	zones.Rebuild(listings)

	all := zones.Filter("")
	require.Len(t, all, 2)
	assert.Equal(t, "alpha", all[0].Server)

	errs := zones.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, "beta", errs[0].Server)
	assert.Error(t, errs[0].Err)
}

func TestZonesRebuildClearsPreviousState(t *testing.T) {
	var zones Zones

	listings := testListings()
	listings[1] = pdns.ZoneListing{Server: "beta", Err: errors.New("boom")}
	zones.Rebuild(listings)
	require.Len(t, zones.Errors(), 1)

	zones.Rebuild(testListings())
	assert.Len(t, zones.Filter(""), 3)
	assert.Empty(t, zones.Errors(), "a clean rebuild drops stale errors")
}

func TestZonesFilter(t *testing.T) {
	var zones Zones

	zones.Rebuild(testListings())

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty returns all", "", []string{"example.com.", "example.org.", "internal.lan."}},
		{"by name", "example.org", []string{"example.org."}},
		{"case insensitive", "EXAMPLE", []string{"example.com.", "example.org."}},
		{"by kind", "master", []string{"example.org."}},
		{"by server name", "beta", []string{"internal.lan."}},
		{"by server host", "ns2", []string{"internal.lan."}},
		{"no match", "nope", []string{}},
		{"order preserved", "example", []string{"example.com.", "example.org."}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := zones.Filter(tc.query)

			names := make([]string, 0, len(got))
			for _, z := range got {
				names = append(names, z.Name)
			}

			assert.Equal(t, tc.want, names)
		})
	}
}

func TestZonesAddRemove(t *testing.T) {
	var zones Zones

	zones.Rebuild(testListings())

	zones.Add(pdns.Zone{Server: "beta", Name: "fresh.example.", Kind: "Native"})
	require.Len(t, zones.Filter(""), 4)
	assert.Equal(t, "fresh.example.", zones.Filter("")[3].Name, "created zone appends at the end")

	zones.Remove("alpha", "example.com.")
	all := zones.Filter("")
	require.Len(t, all, 3)
	assert.Equal(t, "example.org.", all[0].Name)

	// removing an absent zone is a no-op
	zones.Remove("alpha", "example.com.")
	assert.Len(t, zones.Filter(""), 3)

	// same name on another server stays
	zones.Remove("beta", "example.org.")
	assert.Len(t, zones.Filter(""), 3)
}
