package pricing

import "strings"

const (
	// DefaultZone models cross-country, the most expensive shipping tier.
	DefaultZone = 8

	zonePrefixLen = 3
)

// ZoneResolver maps a destination postal code to a shipping zone using a
// prefix table. The table is configuration, so callers inject it.
type ZoneResolver struct {
	table       map[string]int
	defaultZone int
}

// NewZoneResolver copies table so later changes by the caller are not observed.
func NewZoneResolver(table map[string]int) ZoneResolver {
	t := make(map[string]int, len(table))
	for prefix, zone := range table {
		t[strings.TrimSpace(prefix)] = zone
	}
	return ZoneResolver{table: t, defaultZone: DefaultZone}
}

// WithDefault returns a resolver that falls back to zone instead of DefaultZone.
func (z ZoneResolver) WithDefault(zone int) ZoneResolver {
	z.defaultZone = zone
	return z
}

// Prefix returns the lookup key for a destination: its first three characters.
func Prefix(destination string) string {
	d := []rune(strings.TrimSpace(destination))
	if len(d) <= zonePrefixLen {
		return string(d)
	}
	return string(d[:zonePrefixLen])
}

// Resolve returns the zone for destination, or the default zone when the
// prefix is not in the table.
func (z ZoneResolver) Resolve(destination string) int {
	zone, _ := z.Lookup(destination)
	return zone
}

// Lookup is Resolve that also reports whether the prefix was found.
func (z ZoneResolver) Lookup(destination string) (int, bool) {
	if zone, ok := z.table[Prefix(destination)]; ok {
		return zone, true
	}
	// Zones start at 1, so 0 means the resolver was never configured.
	if z.defaultZone == 0 {
		return DefaultZone, false
	}
	return z.defaultZone, false
}

// Table returns a copy of the prefix table.
func (z ZoneResolver) Table() map[string]int {
	out := make(map[string]int, len(z.table))
	for k, v := range z.table {
		out[k] = v
	}
	return out
}
