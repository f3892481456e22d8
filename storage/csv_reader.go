package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jaydipmangukiya/Prop-valuer-sub000/models"
)

// Columns may appear in any order; missing optional columns read as empty strings.
var requiredColumns = []string{"property_type", "unit_size"}

// CSVReader reads raw form submissions from a CSV export.
type CSVReader struct {
	closer io.Closer
	reader *csv.Reader
}

// OpenCSVReader opens the CSV file at path.
func OpenCSVReader(path string) (*CSVReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	r := NewCSVReader(f)
	r.closer = f
	return r, nil
}

// NewCSVReader reads submissions from r.
func NewCSVReader(r io.Reader) *CSVReader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return &CSVReader{reader: cr}
}

// ReadAll reads the header row and every submission after it.
func (c *CSVReader) ReadAll() ([]*models.RawSubmission, error) {
	header, err := c.reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("csv: missing required column %q", col)
		}
	}

	var out []*models.RawSubmission
	for line := 2; ; line++ {
		row, err := c.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read line %d: %w", line, err)
		}

		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}

		s := &models.RawSubmission{
			ID:              strings.TrimSpace(field("id")),
			PropertyType:    field("property_type"),
			OwnerName:       field("owner_name"),
			City:            field("city"),
			Locality:        field("locality"),
			UnitSize:        field("unit_size"),
			MeasurementUnit: field("measurement_unit"),
			AreaType:        field("area_type"),
			AgeOfProperty:   field("age_of_property"),
		}
		if ts := strings.TrimSpace(field("submitted_at")); ts != "" {
			if t, err := time.Parse(time.RFC3339, ts); err == nil {
				s.SubmittedAt = t
			}
		}
		out = append(out, s)
	}
	return out, nil
}

// Close closes the underlying file, if the reader opened one.
func (c *CSVReader) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}
