package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/jaydipmangukiya/Prop-valuer-sub000/models"
)

var requestHeader = []string{
	"id", "property_type", "owner_name", "city", "locality",
	"unit_size", "measurement_unit", "area_type", "age_of_property",
	"carpet_area", "super_built_up_area", "loading", "created_at",
}

// CSVWriter writes normalized valuation requests to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)

	if err := w.Write(requestHeader); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Write appends the requests to the CSV file.
func (c *CSVWriter) Write(requests []*models.ValuationRequest) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range requests {
		row := []string{
			r.ID,
			string(r.PropertyType),
			r.OwnerName,
			r.City,
			r.Locality,
			formatNumber(r.UnitSize),
			string(r.MeasurementUnit),
			string(r.AreaType),
			formatNumber(r.AgeOfProperty),
			formatNumber(r.CarpetArea),
			formatNumber(r.SuperBuiltUpArea),
			formatNumber(r.Loading),
			r.CreatedAt.Format(time.RFC3339),
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
