package services

import (
	"github.com/jaydipmangukiya/Prop-valuer-sub000/models"
)

// AreaForm holds the area fields of one property form and keeps the derived
// figures in step with them. Every setter recomputes synchronously, so the
// primary and complementary areas always come from the same input tuple.
//
// An AreaForm belongs to a single form and is not safe for concurrent use.
type AreaForm struct {
	propertyType models.PropertyType
	input        models.PropertyAreaInput
	loading      float64
	result       models.DerivedAreaResult
	err          error
}

// NewAreaForm returns an empty form with the default loading percent.
func NewAreaForm(pt models.PropertyType) *AreaForm {
	f := &AreaForm{propertyType: pt}
	f.Reset()
	return f
}

// Reset clears every field back to its initial state.
func (f *AreaForm) Reset() {
	f.input = models.PropertyAreaInput{MeasurementUnit: models.SqFt}
	f.loading = DefaultLoadingPercent
	f.recompute(false)
}

func (f *AreaForm) PropertyType() models.PropertyType { return f.propertyType }

// SetUnitSize takes the unit size as typed. Non-numeric text counts as 0.
func (f *AreaForm) SetUnitSize(raw string) {
	f.input.UnitSize = CoerceUnitSize(raw)
	f.recompute(false)
}

func (f *AreaForm) SetMeasurementUnit(raw string) {
	f.input.MeasurementUnit, _ = ParseMeasurementUnit(raw)
	f.recompute(false)
}

func (f *AreaForm) SetAreaType(raw string) {
	f.input.SelectedAreaType, _ = ParseAreaType(raw)
	f.recompute(false)
}

// SetAge takes the age as typed. Text that is not a valid age clears the
// age but leaves the loading percent where it was.
func (f *AreaForm) SetAge(raw string) {
	if age, ok := ParseAge(raw); ok {
		f.input.AgeOfProperty = &age
	} else {
		f.input.AgeOfProperty = nil
	}
	f.recompute(true)
}

// SetLoadingPercent overrides the loading percent directly. Values outside
// [0, 100) are rejected and the form is left unchanged.
func (f *AreaForm) SetLoadingPercent(l float64) error {
	if !ValidLoadingPercent(l) {
		return ErrLoadingOutOfRange
	}
	f.loading = l
	f.recompute(false)
	return nil
}

// Input returns a copy of the current input tuple.
func (f *AreaForm) Input() models.PropertyAreaInput {
	in := f.input
	if f.input.AgeOfProperty != nil {
		age := *f.input.AgeOfProperty
		in.AgeOfProperty = &age
	}
	return in
}

func (f *AreaForm) LoadingPercent() float64 { return f.loading }

func (f *AreaForm) Result() models.DerivedAreaResult { return f.result }

// Err returns the error from the last recompute, if any.
func (f *AreaForm) Err() error { return f.err }

// recompute re-derives the result. Loading follows the age only when the age
// itself was edited, so a manual loading override survives other edits.
func (f *AreaForm) recompute(ageChanged bool) {
	in := f.input
	if !ageChanged {
		in.AgeOfProperty = nil
	}

	result, err := RecomputeAreaState(in, f.loading)
	f.result = result
	f.err = err
	f.loading = result.LoadingPercent
}
