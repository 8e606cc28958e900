// Package stationmap writes a standalone HTML map with one marker per
// monitoring station.
package stationmap

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"time"

	"github.com/runnerr0/wqlab/internal/dataset"
)

// DefaultZoom is the initial Leaflet zoom level.
const DefaultZoom = 7

// ErrNoStations is returned when there is nothing to place on the map.
var ErrNoStations = errors.New("no stations with valid coordinates")

// Map is a rendered-ready station map.
type Map struct {
	CenterLat   float64
	CenterLon   float64
	Zoom        int
	Stations    []dataset.Station
	GeneratedAt time.Time
}

// Build centres a map on the mean station coordinates.
func Build(stations []dataset.Station, zoom int, now time.Time) (Map, error) {
	if len(stations) == 0 {
		return Map{}, ErrNoStations
	}
	if zoom <= 0 {
		zoom = DefaultZoom
	}

	var lat, lon float64
	for _, s := range stations {
		lat += s.Latitude
		lon += s.Longitude
	}
	n := float64(len(stations))

	return Map{
		CenterLat:   lat / n,
		CenterLon:   lon / n,
		Zoom:        zoom,
		Stations:    stations,
		GeneratedAt: now,
	}, nil
}

// Write renders m as HTML.
func Write(w io.Writer, m Map) error {
	if err := page.Execute(w, m); err != nil {
		return fmt.Errorf("render map: %w", err)
	}
	return nil
}

// WriteFile renders m to path.
func WriteFile(path string, m Map) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create map file: %w", err)
	}
	if err := Write(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

var page = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Monitoring stations</title>
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<meta name="generator" content="wqlab {{.GeneratedAt.UTC.Format "2006-01-02T15:04:05Z07:00"}}">
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>html, body, #map { height: 100%; margin: 0; }</style>
</head>
<body>
<div id="map"></div>
<script>
var map = L.map("map").setView([{{.CenterLat}}, {{.CenterLon}}], {{.Zoom}});
L.tileLayer("https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png", {
  maxZoom: 19,
  attribution: "&copy; OpenStreetMap contributors"
}).addTo(map);
{{- range .Stations}}
L.marker([{{.Latitude}}, {{.Longitude}}]).addTo(map).bindPopup({{.Name}});
{{- end}}
</script>
</body>
</html>
`))
