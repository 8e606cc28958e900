package dataset

import "strings"

// Measurement is one row of source data. Date and Value hold the raw cell
// text; parsing happens when the row is cleaned.
type Measurement struct {
	Site           string
	Characteristic string
	Date           string
	Value          string
	Unit           string
}

// Dataset is the ordered contents of one measurement CSV.
type Dataset struct {
	Source string
	Rows   []Measurement

	// byName maps a lower-cased characteristic name to row indices.
	byName map[string][]int
}

// New builds a Dataset over rows and indexes it by characteristic.
func New(source string, rows []Measurement) *Dataset {
	ds := &Dataset{Source: source, Rows: rows, byName: make(map[string][]int)}
	for i, r := range rows {
		key := normalize(r.Characteristic)
		if key == "" {
			continue
		}
		ds.byName[key] = append(ds.byName[key], i)
	}
	return ds
}

// Matching returns the rows whose characteristic equals name, ignoring case.
func (ds *Dataset) Matching(name string) []Measurement {
	if ds == nil {
		return nil
	}
	idx := ds.byName[normalize(name)]
	out := make([]Measurement, 0, len(idx))
	for _, i := range idx {
		out = append(out, ds.Rows[i])
	}
	return out
}

// Len returns the number of rows.
func (ds *Dataset) Len() int {
	if ds == nil {
		return 0
	}
	return len(ds.Rows)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Station is one monitoring location from a station CSV.
type Station struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// Columns names the CSV headers the loader looks for.
type Columns struct {
	Site           string `yaml:"site"`
	Characteristic string `yaml:"characteristic"`
	Date           string `yaml:"date"`
	Value          string `yaml:"value"`
	Unit           string `yaml:"unit"`
	StationName    string `yaml:"station_name"`
	Latitude       string `yaml:"latitude"`
	Longitude      string `yaml:"longitude"`
}

// DefaultColumns returns the Water Quality Portal header names.
func DefaultColumns() Columns {
	return Columns{
		Site:           "MonitoringLocationIdentifier",
		Characteristic: "CharacteristicName",
		Date:           "ActivityStartDate",
		Value:          "ResultMeasureValue",
		Unit:           "ResultMeasure/MeasureUnitCode",
		StationName:    "MonitoringLocationName",
		Latitude:       "LatitudeMeasure",
		Longitude:      "LongitudeMeasure",
	}
}
