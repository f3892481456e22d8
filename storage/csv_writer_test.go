package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jaydipmangukiya/Prop-valuer-sub000/models"
)

func TestCSVWriterWritesRequests(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "requests.csv")
	w, err := NewCSVWriter(path)
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}

	err = w.Write([]*models.ValuationRequest{{
		ID: "v1", PropertyType: models.Villa, UnitSize: 1200, MeasurementUnit: models.SqMt,
		AreaType: models.SuperBuiltUp, AgeOfProperty: 15, CarpetArea: 9041, SuperBuiltUpArea: 12917,
		Loading: 30, CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d rows", len(rows))
	}

	want := []string{"v1", "villa", "", "", "", "1200", "sqmt", "Super Built-Up", "15", "9041", "12917", "30", "2026-03-01T10:00:00Z"}
	for i, cell := range want {
		if rows[1][i] != cell {
			t.Errorf("column %s: got %q, want %q", rows[0][i], rows[1][i], cell)
		}
	}
}
