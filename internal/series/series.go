package series

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/runnerr0/wqlab/internal/dataset"
)

// Point is one cleaned observation.
type Point struct {
	Time  time.Time
	Value float64
}

// SiteSeries is the time-ordered observations of one characteristic at one site.
type SiteSeries struct {
	Site   string
	Points []Point
}

// Min and Max return the value bounds; ok is false for an empty series.
func (s SiteSeries) Min() (v float64, ok bool) {
	for i, p := range s.Points {
		if i == 0 || p.Value < v {
			v = p.Value
		}
	}
	return v, len(s.Points) > 0
}

func (s SiteSeries) Max() (v float64, ok bool) {
	for i, p := range s.Points {
		if i == 0 || p.Value > v {
			v = p.Value
		}
	}
	return v, len(s.Points) > 0
}

// CleanReport counts rows at each cleaning stage.
type CleanReport struct {
	Matching    int
	ValidDates  int
	ValidValues int
	Remaining   int
	Sites       int
}

// Filter cleans dataset rows using a fixed set of date layouts.
type Filter struct {
	layouts []string
}

// NewFilter returns a Filter that accepts the given date layouts, tried
// in order. An empty list selects DefaultLayouts.
func NewFilter(layouts []string) *Filter {
	if len(layouts) == 0 {
		layouts = DefaultLayouts()
	}
	return &Filter{layouts: layouts}
}

// DefaultLayouts lists the date layouts accepted when none are configured.
func DefaultLayouts() []string {
	return []string{
		"2006-01-02",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		time.RFC3339,
		"01/02/2006",
		"1/2/2006",
		"2006/01/02",
	}
}

// ListCharacteristics returns the distinct non-empty characteristic names
// in ds, compared case-sensitively, in ascending order.
func ListCharacteristics(ds *dataset.Dataset) []string {
	if ds == nil {
		return []string{}
	}
	seen := make(map[string]struct{})
	names := []string{}
	for _, r := range ds.Rows {
		if r.Characteristic == "" {
			continue
		}
		if _, ok := seen[r.Characteristic]; ok {
			continue
		}
		seen[r.Characteristic] = struct{}{}
		names = append(names, r.Characteristic)
	}
	sort.Strings(names)
	return names
}

// FilterAndClean selects rows matching name (case-insensitive), drops rows
// with an unparseable date, a non-numeric value or no site, and groups the
// rest by site in ascending time order. No matching rows yields an empty map.
func (f *Filter) FilterAndClean(ds *dataset.Dataset, name string) (map[string]SiteSeries, CleanReport) {
	rows := ds.Matching(name)
	report := CleanReport{Matching: len(rows)}
	out := make(map[string]SiteSeries)

	for _, r := range rows {
		ts, dateOK := f.parseTime(r.Date)
		v, valueOK := parseValue(r.Value)
		if dateOK {
			report.ValidDates++
		}
		if valueOK {
			report.ValidValues++
		}
		if !dateOK || !valueOK || r.Site == "" {
			continue
		}
		s := out[r.Site]
		s.Site = r.Site
		s.Points = append(s.Points, Point{Time: ts, Value: v})
		out[r.Site] = s
		report.Remaining++
	}

	for site, s := range out {
		sort.SliceStable(s.Points, func(i, j int) bool {
			return s.Points[i].Time.Before(s.Points[j].Time)
		})
		out[site] = s
	}
	report.Sites = len(out)

	return out, report
}

// FilterAndClean runs Filter.FilterAndClean with the default date layouts.
func FilterAndClean(ds *dataset.Dataset, name string) (map[string]SiteSeries, CleanReport) {
	return NewFilter(nil).FilterAndClean(ds, name)
}

func (f *Filter) parseTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range f.layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseValue accepts finite decimal numbers only.
func parseValue(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// SortedSites returns the keys of m in ascending order.
func SortedSites(m map[string]SiteSeries) []string {
	sites := make([]string, 0, len(m))
	for site := range m {
		sites = append(sites, site)
	}
	sort.Strings(sites)
	return sites
}

// PointCount returns the total number of points across all sites.
func PointCount(m map[string]SiteSeries) int {
	n := 0
	for _, s := range m {
		n += len(s.Points)
	}
	return n
}
