package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Load reads a measurement CSV from path.
func Load(path string, cols Columns) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	ds, err := Read(f, cols)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	ds.Source = path
	return ds, nil
}

// Read parses a measurement CSV with a header row. The site, characteristic,
// date and value columns are required; the unit column is optional.
func Read(r io.Reader, cols Columns) (*Dataset, error) {
	header, records, err := readAll(r)
	if err != nil {
		return nil, err
	}

	idx, err := lookup(header, cols.Site, cols.Characteristic, cols.Date, cols.Value)
	if err != nil {
		return nil, err
	}
	unitIdx := columnIndex(header, cols.Unit)

	rows := make([]Measurement, 0, len(records))
	for _, rec := range records {
		rows = append(rows, Measurement{
			Site:           cell(rec, idx[0]),
			Characteristic: cell(rec, idx[1]),
			Date:           cell(rec, idx[2]),
			Value:          cell(rec, idx[3]),
			Unit:           cell(rec, unitIdx),
		})
	}

	return New("", rows), nil
}

// LoadStations reads a station CSV from path.
func LoadStations(path string, cols Columns) ([]Station, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stations: %w", err)
	}
	defer f.Close()

	stations, err := ReadStations(f, cols)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return stations, nil
}

// ReadStations parses a station CSV. Rows whose coordinates do not parse
// are skipped.
func ReadStations(r io.Reader, cols Columns) ([]Station, error) {
	header, records, err := readAll(r)
	if err != nil {
		return nil, err
	}

	idx, err := lookup(header, cols.StationName, cols.Latitude, cols.Longitude)
	if err != nil {
		return nil, err
	}

	var stations []Station
	for _, rec := range records {
		lat, ok := parseCoord(cell(rec, idx[1]), 90)
		if !ok {
			continue
		}
		lon, ok := parseCoord(cell(rec, idx[2]), 180)
		if !ok {
			continue
		}
		stations = append(stations, Station{
			Name:      cell(rec, idx[0]),
			Latitude:  lat,
			Longitude: lon,
		})
	}
	return stations, nil
}

// parseCoord accepts finite degrees within [-limit, limit].
func parseCoord(raw string, limit float64) (float64, bool) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > limit {
		return 0, false
	}
	return v, true
}

func readAll(r io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("empty CSV: missing header row")
		}
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read records: %w", err)
	}
	return header, records, nil
}

// lookup resolves each required column name to its header index.
func lookup(header []string, names ...string) ([]int, error) {
	idx := make([]int, len(names))
	for i, name := range names {
		idx[i] = columnIndex(header, name)
		if idx[i] < 0 {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}
	return idx, nil
}

func columnIndex(header []string, name string) int {
	if name == "" {
		return -1
	}
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
