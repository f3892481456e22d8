package services

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/jaydipmangukiya/Prop-valuer-sub000/models"
)

const (
	// SqMtToSqFt is the single sqmt multiplier used by every form.
	SqMtToSqFt = 10.7639
	// YardToSqFt converts square yards ("yard area") to square feet.
	YardToSqFt = 9.0

	// DefaultLoadingPercent applies until a valid age has been entered.
	DefaultLoadingPercent = 35.0

	// MaxAreaSqFt bounds an area figure that can be stored or sent on.
	MaxAreaSqFt = 1e9
)

var (
	// ErrNoUnitSize means the primary area is unset or not positive, so the
	// complementary figure has no value yet.
	ErrNoUnitSize = errors.New("area: unit size not set")
	// ErrUnknownAreaType means the area type is neither Carpet nor Super Built-Up.
	ErrUnknownAreaType = errors.New("area: unknown area type")
	// ErrLoadingOutOfRange rejects loading percentages outside [0, 100).
	ErrLoadingOutOfRange = errors.New("area: loading percent must be in [0, 100)")
	// ErrAreaOutOfRange rejects area figures that are not finite or exceed MaxAreaSqFt.
	ErrAreaOutOfRange = errors.New("area: area figure out of range")
)

// ParseNumber coerces a form field to a number the way the browser forms do:
// surrounding whitespace is ignored and an empty field is zero. The second
// return is false for text that is not a finite number.
func ParseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// CoerceUnitSize parses a unit size field, treating anything non-numeric as 0.
func CoerceUnitSize(raw string) float64 {
	v, _ := ParseNumber(raw)
	return v
}

// ParseAge parses an age field. Blank, non-numeric and negative input is
// reported as no value. The browser forms let a negative age through to the
// newest bucket (45); here it leaves the previous loading in place instead.
func ParseAge(raw string) (float64, bool) {
	if strings.TrimSpace(raw) == "" {
		return 0, false
	}
	v, ok := ParseNumber(raw)
	if !ok || v < 0 {
		return 0, false
	}
	return v, true
}

// ConvertToSqFt converts unitSize to square feet, rounding half up.
// Unrecognized units are treated as square feet.
func ConvertToSqFt(unitSize float64, unit models.MeasurementUnit) float64 {
	if math.IsNaN(unitSize) || math.IsInf(unitSize, 0) {
		return 0
	}

	multiplier := 1.0
	switch unit {
	case models.SqMt:
		multiplier = SqMtToSqFt
	case models.YardArea:
		multiplier = YardToSqFt
	}
	return roundHalfUp(unitSize * multiplier)
}

// DeriveLoadingPercent maps a property's age in years to its loading percent.
func DeriveLoadingPercent(age float64) float64 {
	switch {
	case age < 3:
		return 45
	case age < 8:
		return 40
	case age < 12:
		return 35
	default:
		return 30
	}
}

// LoadingFromAge parses a raw age field and derives the loading percent.
// It returns false when the field holds no valid age, in which case the
// caller keeps whatever loading it had before.
func LoadingFromAge(rawAge string) (float64, bool) {
	age, ok := ParseAge(rawAge)
	if !ok {
		return 0, false
	}
	return DeriveLoadingPercent(age), true
}

// DeriveComplementaryArea computes the other of carpet / super built-up area
// from primarySqFt. Both directions floor the result.
//
//	Carpet:         floor(p / ((100 - L) / 100))
//	Super Built-Up: floor(p - p*(L/100))
func DeriveComplementaryArea(primarySqFt, loadingPercent float64, areaType models.AreaType) (float64, error) {
	if !(primarySqFt > 0) {
		return 0, ErrNoUnitSize
	}
	if !ValidLoadingPercent(loadingPercent) {
		return 0, ErrLoadingOutOfRange
	}

	switch areaType {
	case models.Carpet:
		return math.Floor(primarySqFt / ((100 - loadingPercent) / 100)), nil
	case models.SuperBuiltUp:
		return math.Floor(primarySqFt - primarySqFt*(loadingPercent/100)), nil
	default:
		return 0, ErrUnknownAreaType
	}
}

// ValidAreaSqFt reports whether v is a finite area no larger than MaxAreaSqFt.
func ValidAreaSqFt(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= MaxAreaSqFt
}

// ValidLoadingPercent reports whether l can be used in an area conversion.
func ValidLoadingPercent(l float64) bool {
	return l >= 0 && l < 100
}

// RecomputeAreaState derives loading, primary and complementary areas from a
// single input tuple. previousLoading is kept when the input carries no age.
//
// A missing unit size or area type leaves HasComplementary false and is not
// an error; only an unusable loading percent is.
func RecomputeAreaState(in models.PropertyAreaInput, previousLoading float64) (models.DerivedAreaResult, error) {
	result := models.DerivedAreaResult{LoadingPercent: previousLoading}
	if in.AgeOfProperty != nil && *in.AgeOfProperty >= 0 && !math.IsNaN(*in.AgeOfProperty) {
		result.LoadingPercent = DeriveLoadingPercent(*in.AgeOfProperty)
	}

	result.PrimaryAreaSqFt = ConvertToSqFt(in.UnitSize, in.MeasurementUnit)

	complementary, err := DeriveComplementaryArea(result.PrimaryAreaSqFt, result.LoadingPercent, in.SelectedAreaType)
	switch {
	case err == nil:
		result.ComplementaryAreaSqFt = complementary
		result.HasComplementary = true
	case errors.Is(err, ErrNoUnitSize), errors.Is(err, ErrUnknownAreaType):
	default:
		return result, err
	}
	return result, nil
}

// ParseMeasurementUnit maps free-form unit text onto a known unit. Unknown
// text is returned trimmed, and ConvertToSqFt treats it as square feet.
func ParseMeasurementUnit(raw string) (models.MeasurementUnit, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch strings.NewReplacer(".", "", " ", "", "-", "", "_", "").Replace(s) {
	case "sqft", "squarefeet", "squarefoot", "ft2", "sft":
		return models.SqFt, true
	case "sqmt", "sqm", "squaremeter", "squaremeters", "squaremetre", "squaremetres", "m2", "sqmtr":
		return models.SqMt, true
	case "yardarea", "yard", "yards", "sqyd", "sqyard", "sqyards", "squareyard", "squareyards", "gaj":
		return models.YardArea, true
	}
	return models.MeasurementUnit(strings.TrimSpace(raw)), false
}

// ParseAreaType maps free-form area type text onto Carpet or Super Built-Up.
func ParseAreaType(raw string) (models.AreaType, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch strings.NewReplacer(".", "", " ", "", "-", "", "_", "").Replace(s) {
	case "carpet", "carpetarea":
		return models.Carpet, true
	case "superbuiltup", "superbuiltuparea", "sbu", "superarea", "saleable", "saleablearea":
		return models.SuperBuiltUp, true
	}
	return models.AreaType(strings.TrimSpace(raw)), false
}

// ParsePropertyType maps form text onto one of the supported property types.
func ParsePropertyType(raw string) (models.PropertyType, bool) {
	s := models.PropertyType(strings.ToLower(strings.TrimSpace(raw)))
	for _, pt := range models.PropertyTypes {
		if s == pt {
			return pt, true
		}
	}
	return "", false
}

// roundHalfUp rounds ties toward positive infinity.
func roundHalfUp(x float64) float64 {
	f := math.Floor(x)
	if x-f >= 0.5 {
		f++
	}
	return f
}
