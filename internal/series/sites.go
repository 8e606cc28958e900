package series

import (
	"sort"

	"github.com/runnerr0/wqlab/internal/dataset"
)

// Unit labels used when a characteristic does not resolve to one unit.
const (
	MultipleUnits = "multiple units"
	UnknownUnit   = "(unit unknown)"
)

// IntersectSites returns the sites present in both a and b, sorted.
// Disjoint inputs yield an empty, non-nil slice.
func IntersectSites(a, b map[string]SiteSeries) []string {
	if len(b) < len(a) {
		a, b = b, a
	}
	shared := []string{}
	for site := range a {
		if _, ok := b[site]; ok {
			shared = append(shared, site)
		}
	}
	sort.Strings(shared)
	return shared
}

// Restrict returns the entries of m whose site is listed in sites.
func Restrict(m map[string]SiteSeries, sites []string) map[string]SiteSeries {
	out := make(map[string]SiteSeries, len(sites))
	for _, site := range sites {
		if s, ok := m[site]; ok {
			out[site] = s
		}
	}
	return out
}

// ResolveUnitLabel collects the distinct non-empty unit codes of rows
// matching name. Date and value validity are not considered.
func ResolveUnitLabel(ds *dataset.Dataset, name string) string {
	var units []string
	seen := make(map[string]struct{})
	for _, r := range ds.Matching(name) {
		if r.Unit == "" {
			continue
		}
		if _, ok := seen[r.Unit]; ok {
			continue
		}
		seen[r.Unit] = struct{}{}
		units = append(units, r.Unit)
	}

	switch len(units) {
	case 0:
		return UnknownUnit
	case 1:
		return units[0]
	default:
		return MultipleUnits
	}
}
