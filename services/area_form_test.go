package services

import (
	"errors"
	"testing"

	"github.com/jaydipmangukiya/Prop-valuer-sub000/models"
)

func TestAreaFormDefaults(t *testing.T) {
	f := NewAreaForm(models.Apartment)

	if f.LoadingPercent() != DefaultLoadingPercent {
		t.Errorf("initial loading: got %v, want %v", f.LoadingPercent(), DefaultLoadingPercent)
	}
	if f.Result().HasComplementary {
		t.Errorf("empty form should have no complementary area")
	}
	if f.Input().MeasurementUnit != models.SqFt {
		t.Errorf("default unit: got %q, want sqft", f.Input().MeasurementUnit)
	}
	if f.PropertyType() != models.Apartment {
		t.Errorf("property type: got %q", f.PropertyType())
	}
}

func TestAreaFormApartmentScenario(t *testing.T) {
	f := NewAreaForm(models.Apartment)
	f.SetAreaType("Carpet")
	f.SetAge("5")
	f.SetUnitSize("1000")

	got := f.Result()
	want := models.DerivedAreaResult{LoadingPercent: 40, PrimaryAreaSqFt: 1000, ComplementaryAreaSqFt: 1666, HasComplementary: true}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestAreaFormInvalidAgeKeepsLoading(t *testing.T) {
	f := NewAreaForm(models.Villa)
	f.SetAge("5")
	if f.LoadingPercent() != 40 {
		t.Fatalf("loading after age 5: got %v, want 40", f.LoadingPercent())
	}

	for _, raw := range []string{"abc", "", "-3"} {
		f.SetAge(raw)
		if f.LoadingPercent() != 40 {
			t.Errorf("SetAge(%q): loading got %v, want 40", raw, f.LoadingPercent())
		}
		if f.Input().AgeOfProperty != nil {
			t.Errorf("SetAge(%q): age should be cleared", raw)
		}
	}

	f.SetAge("20")
	if f.LoadingPercent() != 30 {
		t.Errorf("loading after age 20: got %v, want 30", f.LoadingPercent())
	}
}

func TestAreaFormBlankAgeUsesDefault(t *testing.T) {
	f := NewAreaForm(models.Apartment)
	f.SetAreaType("Carpet")
	f.SetAge("")
	f.SetUnitSize("1000")

	if got := f.Result(); got.LoadingPercent != 35 || got.ComplementaryAreaSqFt != 1538 {
		t.Errorf("got %+v, want loading 35 and complementary 1538", got)
	}
}

func TestAreaFormLoadingOverride(t *testing.T) {
	f := NewAreaForm(models.Commercial)
	f.SetAreaType("Carpet")
	f.SetAge("5")
	f.SetUnitSize("1000")

	if err := f.SetLoadingPercent(100); !errors.Is(err, ErrLoadingOutOfRange) {
		t.Fatalf("SetLoadingPercent(100): got %v, want ErrLoadingOutOfRange", err)
	}
	if f.LoadingPercent() != 40 || f.Result().ComplementaryAreaSqFt != 1666 {
		t.Errorf("rejected override changed state: loading %v, result %+v", f.LoadingPercent(), f.Result())
	}

	if err := f.SetLoadingPercent(25); err != nil {
		t.Fatalf("SetLoadingPercent(25): %v", err)
	}
	if got := f.Result().ComplementaryAreaSqFt; got != 1333 {
		t.Errorf("complementary after override: got %v, want 1333", got)
	}

	// editing another field keeps the manual loading
	f.SetUnitSize("1200")
	if got := f.Result(); got.LoadingPercent != 25 || got.ComplementaryAreaSqFt != 1600 {
		t.Errorf("after unit size edit: got %+v, want loading 25 and complementary 1600", got)
	}
}

func TestAreaFormRecomputesTogether(t *testing.T) {
	f := NewAreaForm(models.Apartment)
	f.SetAreaType("Carpet")
	f.SetAge("5")
	f.SetUnitSize("100")
	f.SetMeasurementUnit("sqmt")

	got := f.Result()
	if got.PrimaryAreaSqFt != 1076 || got.ComplementaryAreaSqFt != 1793 {
		t.Errorf("after unit change: got %+v, want primary 1076 and complementary 1793", got)
	}

	f.SetAreaType("Super Built-Up")
	got = f.Result()
	if got.PrimaryAreaSqFt != 1076 || got.ComplementaryAreaSqFt != 645 {
		t.Errorf("after area type change: got %+v, want primary 1076 and complementary 645", got)
	}

	f.SetUnitSize("not a number")
	got = f.Result()
	if got.PrimaryAreaSqFt != 0 || got.HasComplementary {
		t.Errorf("after invalid size: got %+v, want no area", got)
	}
}

func TestAreaFormReset(t *testing.T) {
	f := NewAreaForm(models.Villa)
	f.SetAreaType("Carpet")
	f.SetAge("1")
	f.SetUnitSize("900")
	f.Reset()

	if f.LoadingPercent() != DefaultLoadingPercent || f.Result().HasComplementary {
		t.Errorf("after reset: loading %v, result %+v", f.LoadingPercent(), f.Result())
	}
	if in := f.Input(); in.UnitSize != 0 || in.SelectedAreaType != "" || in.AgeOfProperty != nil {
		t.Errorf("after reset: input %+v", in)
	}
}
