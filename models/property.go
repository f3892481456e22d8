package models

import "time"

// PropertyType identifies which valuation form a submission came from.
type PropertyType string

const (
	Apartment  PropertyType = "apartment"
	Villa      PropertyType = "villa"
	Commercial PropertyType = "commercial"
)

// PropertyTypes lists every supported form, in display order.
var PropertyTypes = []PropertyType{Apartment, Villa, Commercial}

// MeasurementUnit is the unit a unit size was entered in.
type MeasurementUnit string

const (
	SqFt     MeasurementUnit = "sqft"
	SqMt     MeasurementUnit = "sqmt"
	YardArea MeasurementUnit = "yard area"
)

// AreaType says which of the two canonical area figures a unit size represents.
type AreaType string

const (
	Carpet       AreaType = "Carpet"
	SuperBuiltUp AreaType = "Super Built-Up"
)

// PropertyAreaInput is the area-related part of a form's state.
// AgeOfProperty is nil when the age field holds no valid number.
type PropertyAreaInput struct {
	UnitSize         float64
	MeasurementUnit  MeasurementUnit
	SelectedAreaType AreaType
	AgeOfProperty    *float64
}

// DerivedAreaResult is recomputed from a PropertyAreaInput on every change.
// ComplementaryAreaSqFt is meaningful only when HasComplementary is true.
type DerivedAreaResult struct {
	LoadingPercent        float64
	PrimaryAreaSqFt       float64
	ComplementaryAreaSqFt float64
	HasComplementary      bool
}

// CarpetAndSuperBuiltUp splits the result into carpet and super built-up
// figures according to which one the user entered.
func (r DerivedAreaResult) CarpetAndSuperBuiltUp(entered AreaType) (carpet, superBuiltUp float64) {
	if entered == Carpet {
		return r.PrimaryAreaSqFt, r.ComplementaryAreaSqFt
	}
	return r.ComplementaryAreaSqFt, r.PrimaryAreaSqFt
}

// RawSubmission holds form fields exactly as the user typed them.
// This is read from CSV before any coercion or normalization.
type RawSubmission struct {
	ID              string
	PropertyType    string
	OwnerName       string
	City            string
	Locality        string
	UnitSize        string
	MeasurementUnit string
	AreaType        string
	AgeOfProperty   string
	SubmittedAt     time.Time
}

// ValuationRequest is the normalized payload sent to the valuation backend.
type ValuationRequest struct {
	ID               string          `json:"id"`
	PropertyType     PropertyType    `json:"property_type"`
	OwnerName        string          `json:"owner_name"`
	City             string          `json:"city"`
	Locality         string          `json:"locality"`
	AgeOfProperty    float64         `json:"age_of_property"`
	UnitSize         float64         `json:"unit_size"`
	MeasurementUnit  MeasurementUnit `json:"measurement_unit"`
	AreaType         AreaType        `json:"area_type"`
	CarpetArea       float64         `json:"carpet_area"`
	SuperBuiltUpArea float64         `json:"super_built_up_area"`
	Loading          float64         `json:"loading"`
	CreatedAt        time.Time       `json:"created_at"`
}

// RawAuctionListing holds unprocessed auction card data from the browser.
type RawAuctionListing struct {
	Title        string
	ReservePrice string
	Location     string
	AreaText     string
	URL          string
	Description  string
	ScrapedAt    time.Time
}

// AuctionListing is a cleaned auction property with normalized areas.
type AuctionListing struct {
	ID               int64
	Title            string
	ReservePrice     float64
	Location         string
	MeasurementUnit  MeasurementUnit
	AreaType         AreaType
	CarpetArea       float64
	SuperBuiltUpArea float64
	Loading          float64
	URL              string
	Description      string
	CreatedAt        time.Time
}

// SubmissionReport holds the computed analytics over normalized requests.
type SubmissionReport struct {
	TotalRequests     int
	ByPropertyType    map[PropertyType]int
	ByLoading         map[float64]int
	AverageSuperBuilt float64
	MinSuperBuilt     float64
	MaxSuperBuilt     float64
	Largest           *ValuationRequest
	TotalCarpetArea   float64
}
