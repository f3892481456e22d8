package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jaydipmangukiya/Prop-valuer-sub000/models"
	"github.com/jaydipmangukiya/Prop-valuer-sub000/utils"
)

var (
	ErrUnknownPropertyType = errors.New("submission: unknown property type")
	ErrIncompleteArea      = errors.New("submission: area figures incomplete")
)

// SubmissionCleaner turns raw form submissions into valuation requests.
type SubmissionCleaner struct {
	logger *utils.Logger
	newID  func() string
	now    func() time.Time
}

// NewSubmissionCleaner creates a SubmissionCleaner with the given logger.
func NewSubmissionCleaner(logger *utils.Logger) *SubmissionCleaner {
	return &SubmissionCleaner{
		logger: logger,
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

// Clean normalizes every submission, dropping the ones a form would refuse
// and repeated submission IDs.
func (c *SubmissionCleaner) Clean(raw []*models.RawSubmission) []*models.ValuationRequest {
	seen := make(map[string]struct{})
	result := make([]*models.ValuationRequest, 0, len(raw))

	for _, r := range raw {
		req, err := c.Normalize(r)
		if err != nil {
			c.logger.Warn("[submission] Dropping %q (%s): %v", r.ID, r.PropertyType, err)
			continue
		}

		if _, dup := seen[req.ID]; dup {
			c.logger.Debug("[submission] Duplicate submission skipped: %s", req.ID)
			continue
		}
		seen[req.ID] = struct{}{}

		result = append(result, req)
	}

	c.logger.Info("[submission] Normalized %d → %d requests (dropped %d)",
		len(raw), len(result), len(raw)-len(result))
	return result
}

// Normalize fills an AreaForm in the order a user fills the page and builds
// the outbound payload from its final state.
func (c *SubmissionCleaner) Normalize(r *models.RawSubmission) (*models.ValuationRequest, error) {
	pt, ok := ParsePropertyType(r.PropertyType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPropertyType, r.PropertyType)
	}

	form := NewAreaForm(pt)
	form.SetMeasurementUnit(r.MeasurementUnit)
	if _, known := ParseMeasurementUnit(r.MeasurementUnit); !known && strings.TrimSpace(r.MeasurementUnit) != "" {
		c.logger.Debug("[submission] Unknown unit %q for %s, treating as sqft", r.MeasurementUnit, r.ID)
	}
	form.SetAreaType(r.AreaType)
	form.SetAge(r.AgeOfProperty)
	form.SetUnitSize(r.UnitSize)

	if err := form.Err(); err != nil {
		return nil, err
	}
	if !form.Result().HasComplementary {
		return nil, fmt.Errorf("%w: unit size %q, area type %q", ErrIncompleteArea, r.UnitSize, r.AreaType)
	}
	if res := form.Result(); !ValidAreaSqFt(res.PrimaryAreaSqFt) || !ValidAreaSqFt(res.ComplementaryAreaSqFt) {
		return nil, fmt.Errorf("%w: unit size %q %s", ErrAreaOutOfRange, r.UnitSize, r.MeasurementUnit)
	}

	id := strings.TrimSpace(r.ID)
	if id == "" {
		id = c.newID()
	}

	req := BuildValuationRequest(pt, form.Input(), form.Result())
	req.ID = id
	req.OwnerName = normaliseText(r.OwnerName)
	req.City = normaliseText(r.City)
	req.Locality = normaliseText(r.Locality)
	req.CreatedAt = r.SubmittedAt
	if req.CreatedAt.IsZero() {
		req.CreatedAt = c.now()
	}
	return req, nil
}

// BuildValuationRequest lays out the area part of the payload. Both area
// fields are always present: the user's entry on its own side and the
// derived figure on the other.
func BuildValuationRequest(pt models.PropertyType, in models.PropertyAreaInput, res models.DerivedAreaResult) *models.ValuationRequest {
	carpet, superBuiltUp := res.CarpetAndSuperBuiltUp(in.SelectedAreaType)

	req := &models.ValuationRequest{
		PropertyType:     pt,
		UnitSize:         in.UnitSize,
		MeasurementUnit:  in.MeasurementUnit,
		AreaType:         in.SelectedAreaType,
		CarpetArea:       carpet,
		SuperBuiltUpArea: superBuiltUp,
		Loading:          res.LoadingPercent,
	}
	if in.AgeOfProperty != nil {
		req.AgeOfProperty = *in.AgeOfProperty
	}
	return req
}
