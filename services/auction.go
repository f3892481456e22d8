package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/jaydipmangukiya/Prop-valuer-sub000/models"
	"github.com/jaydipmangukiya/Prop-valuer-sub000/utils"
)

var (
	// priceRegexp captures a numeric amount and an optional Indian denomination
	priceRegexp = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(crores?|cr\b|lakhs?|lacs?)?`)
	// areaRegexp captures "1,200 sq.ft", "110 sq. m", "150 sq yd" and similar
	areaRegexp = regexp.MustCompile(`(?i)(\d[\d,]*(?:\.\d+)?)\s*(sq\.?\s*(?:ft|feet|mtrs?|mt|m|yds?|yards?)\b\.?|square\s+(?:feet|foot|met(?:er|re)s?|yards?)|yard\s+area|sqft|sqmt|sqm|sqyd|sft|gaj)`)
)

var (
	carpetLabel       = regexp.MustCompile(`carpet`)
	superBuiltUpLabel = regexp.MustCompile(`super[\s-]*built[\s-]*up|built[\s-]*up|super\s+area|saleable`)
)

const (
	lakh  = 1e5
	crore = 1e7

	// labelWindow is how many bytes either side of a figure are searched for
	// an area label.
	labelWindow = 30
)

// AuctionCleaner transforms RawAuctionListings into normalized AuctionListings.
type AuctionCleaner struct {
	logger  *utils.Logger
	loading float64
}

// NewAuctionCleaner creates an AuctionCleaner. Auction cards carry no age,
// so areas are cross-calculated with the default loading percent.
func NewAuctionCleaner(logger *utils.Logger) *AuctionCleaner {
	return &AuctionCleaner{logger: logger, loading: DefaultLoadingPercent}
}

// Clean processes raw auction cards and returns cleaned records.
func (c *AuctionCleaner) Clean(raw []*models.RawAuctionListing) []*models.AuctionListing {
	seen := make(map[string]struct{})
	result := make([]*models.AuctionListing, 0, len(raw))

	for _, r := range raw {
		url := strings.TrimSpace(r.URL)
		if url == "" {
			c.logger.Warn("[auction] Dropping listing with empty URL: %s", r.Title)
			continue
		}

		if _, dup := seen[url]; dup {
			c.logger.Debug("[auction] Duplicate URL skipped: %s", url)
			continue
		}
		seen[url] = struct{}{}

		listing := &models.AuctionListing{
			Title:        normaliseText(r.Title),
			ReservePrice: c.parseReservePrice(r.ReservePrice),
			Location:     normaliseText(r.Location),
			URL:          url,
			Description:  normaliseText(r.Description),
			Loading:      c.loading,
			CreatedAt:    time.Now(),
		}

		in, ok := c.parseArea(r.AreaText)
		if !ok {
			// the description often repeats the area when the card omits it
			in, ok = c.parseArea(r.Description)
		}
		if ok {
			res, err := RecomputeAreaState(in, c.loading)
			inRange := ValidAreaSqFt(res.PrimaryAreaSqFt) && ValidAreaSqFt(res.ComplementaryAreaSqFt)
			if err == nil && res.HasComplementary && inRange {
				listing.MeasurementUnit = in.MeasurementUnit
				listing.AreaType = in.SelectedAreaType
				listing.CarpetArea, listing.SuperBuiltUpArea = res.CarpetAndSuperBuiltUp(in.SelectedAreaType)
			}
		} else {
			c.logger.Debug("[auction] No area found for %s", url)
		}

		result = append(result, listing)
	}

	c.logger.Info("[auction] Cleaned %d → %d listings (dropped %d)",
		len(raw), len(result), len(raw)-len(result))
	return result
}

// parseReservePrice extracts a rupee amount, expanding lakh and crore.
// Examples:
//
//	"₹45,00,000"      → 4500000
//	"Rs. 1.25 Crore"  → 12500000
//	"Reserve: 85 Lakh" → 8500000
func (c *AuctionCleaner) parseReservePrice(raw string) float64 {
	cleaned := strings.ReplaceAll(strings.ToLower(raw), ",", "")
	match := priceRegexp.FindStringSubmatch(cleaned)
	if len(match) < 2 {
		return 0
	}

	amount, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0
	}

	switch {
	case strings.HasPrefix(match[2], "cr"):
		amount *= crore
	case strings.HasPrefix(match[2], "la"):
		amount *= lakh
	}
	return amount
}

// parseArea finds the first area figure in text and the unit and area type
// it is quoted in. The area label nearest the figure wins; a figure with no
// label is taken as super built-up.
func (c *AuctionCleaner) parseArea(text string) (models.PropertyAreaInput, bool) {
	match := areaRegexp.FindStringSubmatchIndex(text)
	if match == nil {
		return models.PropertyAreaInput{}, false
	}

	size, err := strconv.ParseFloat(strings.ReplaceAll(text[match[2]:match[3]], ",", ""), 64)
	if err != nil || size <= 0 {
		return models.PropertyAreaInput{}, false
	}

	in := models.PropertyAreaInput{
		UnitSize:         size,
		MeasurementUnit:  unitFromText(text[match[4]:match[5]]),
		SelectedAreaType: models.SuperBuiltUp,
	}

	head := strings.ToLower(text[:match[2]])
	if len(head) > labelWindow {
		head = head[len(head)-labelWindow:]
	}
	// the tail stops at the next figure, whose label is not ours
	tail := strings.ToLower(text[match[5]:])
	if i := strings.IndexFunc(tail, unicode.IsDigit); i >= 0 {
		tail = tail[:i]
	}
	if len(tail) > labelWindow {
		tail = tail[:labelWindow]
	}

	if labelDistance(carpetLabel, head, tail) < labelDistance(superBuiltUpLabel, head, tail) {
		in.SelectedAreaType = models.Carpet
	}
	return in, true
}

// labelDistance scores how close re's nearest match sits to a figure lying
// between head and tail. A label before the figure beats one after it at the
// same distance. No match scores math.MaxInt.
func labelDistance(re *regexp.Regexp, head, tail string) int {
	best := math.MaxInt
	if locs := re.FindAllStringIndex(head, -1); len(locs) > 0 {
		best = 2 * (len(head) - locs[len(locs)-1][1])
	}
	if loc := re.FindStringIndex(tail); loc != nil {
		if d := 2*loc[0] + 1; d < best {
			best = d
		}
	}
	return best
}

func unitFromText(s string) models.MeasurementUnit {
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, "ft"), strings.Contains(s, "feet"), strings.Contains(s, "foot"):
		return models.SqFt
	case strings.Contains(s, "yd"), strings.Contains(s, "yard"), strings.Contains(s, "gaj"):
		return models.YardArea
	default:
		return models.SqMt
	}
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	s = strings.TrimSpace(s)
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}
