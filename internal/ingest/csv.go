// Package ingest parses uploaded stop files into domain records.
// Files follow the dispatcher's CSV layout: required columns nombre and
// direccion, optional localidad, peso, volumen, and pre-resolved lat/lng.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// MaxStops bounds an upload; larger files are rejected outright.
const MaxStops = 1000

// StopRecord is one parsed CSV row before geocoding.
type StopRecord struct {
	Name     string
	Address  string
	Locality string
	WeightKg float64
	VolumeM3 float64
	Lat      float64
	Lng      float64
}

// ParseStops reads a stop CSV, detecting the delimiter (semicolon first,
// then comma, matching the files the dispatcher exports) and validating
// the required columns.
func ParseStops(data []byte) ([]StopRecord, error) {
	records, err := readAll(data, ';')
	if err != nil || len(records) == 0 || len(records[0]) < 2 {
		records, err = readAll(data, ',')
		if err != nil {
			return nil, fmt.Errorf("parse stops: read csv: %w", err)
		}
	}

	if len(records) == 0 {
		return nil, errors.New("parse stops: file is empty")
	}
	if len(records)-1 > MaxStops {
		return nil, fmt.Errorf("parse stops: file has %d rows, limit is %d", len(records)-1, MaxStops)
	}

	cols := map[string]int{}
	for i, h := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"nombre", "direccion"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("parse stops: missing required column %q", required)
		}
	}

	stops := make([]StopRecord, 0, len(records)-1)
	for rowNum, row := range records[1:] {
		name := field(row, cols, "nombre")
		address := field(row, cols, "direccion")
		if name == "" || address == "" {
			return nil, fmt.Errorf("parse stops: row %d has empty nombre or direccion", rowNum+2)
		}

		stop := StopRecord{
			Name:     name,
			Address:  address,
			Locality: field(row, cols, "localidad"),
		}

		var parseErr error
		stop.WeightKg, parseErr = numericField(row, cols, "peso")
		if parseErr != nil {
			return nil, fmt.Errorf("parse stops: row %d: %w", rowNum+2, parseErr)
		}
		stop.VolumeM3, parseErr = numericField(row, cols, "volumen")
		if parseErr != nil {
			return nil, fmt.Errorf("parse stops: row %d: %w", rowNum+2, parseErr)
		}
		stop.Lat, parseErr = numericField(row, cols, "lat")
		if parseErr != nil {
			return nil, fmt.Errorf("parse stops: row %d: %w", rowNum+2, parseErr)
		}
		stop.Lng, parseErr = numericField(row, cols, "lng")
		if parseErr != nil {
			return nil, fmt.Errorf("parse stops: row %d: %w", rowNum+2, parseErr)
		}

		if stop.WeightKg < 0 || stop.VolumeM3 < 0 {
			return nil, fmt.Errorf("parse stops: row %d has negative peso or volumen", rowNum+2)
		}

		stops = append(stops, stop)
	}

	return stops, nil
}

func readAll(data []byte, delimiter rune) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(string(data)))
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var records [][]string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, row)
	}
	return records, nil
}

func field(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func numericField(row []string, cols map[string]int, name string) (float64, error) {
	raw := field(row, cols, name)
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("column %q: invalid number %q", name, raw)
	}
	return v, nil
}
