package services

import (
	"testing"
	"time"

	"github.com/jaydipmangukiya/Prop-valuer-sub000/models"
)

func TestAuctionParseReservePrice(t *testing.T) {
	c := NewAuctionCleaner(newTestLogger())

	tests := []struct {
		raw  string
		want float64
	}{
		{"₹45,00,000", 4500000},
		{"Rs. 1.25 Crore", 12500000},
		{"Reserve: 85 Lakh", 8500000},
		{"INR 60 lacs", 6000000},
		{"2 Cr", 20000000},
		{"", 0},
		{"On request", 0},
	}

	for _, tt := range tests {
		got := c.parseReservePrice(tt.raw)
		if got != tt.want {
			t.Errorf("parseReservePrice(%q) = %.2f; want %.2f", tt.raw, got, tt.want)
		}
	}
}

func TestAuctionParseArea(t *testing.T) {
	c := NewAuctionCleaner(newTestLogger())

	tests := []struct {
		text string
		size float64
		unit models.MeasurementUnit
		area models.AreaType
	}{
		{"1,200 sq.ft carpet", 1200, models.SqFt, models.Carpet},
		{"Super built-up: 110 sq. m", 110, models.SqMt, models.SuperBuiltUp},
		{"150 Sq Yd plot", 150, models.YardArea, models.SuperBuiltUp},
		{"Carpet Area 850 sqft", 850, models.SqFt, models.Carpet},
		{"3 BHK, 1,450.5 sqmt", 1450.5, models.SqMt, models.SuperBuiltUp},
		{"200 yard area", 200, models.YardArea, models.SuperBuiltUp},
		{"Super built-up 1200 sq ft (carpet 900 sq ft)", 1200, models.SqFt, models.SuperBuiltUp},
		{"1200 sq ft super built-up, carpet 900 sq ft", 1200, models.SqFt, models.SuperBuiltUp},
		{"Carpet 900 sq ft, super built-up 1200 sq ft", 900, models.SqFt, models.Carpet},
		{"1,050 sqft carpet area, saleable 1400 sqft", 1050, models.SqFt, models.Carpet},
	}

	for _, tt := range tests {
		in, ok := c.parseArea(tt.text)
		if !ok {
			t.Errorf("parseArea(%q): no match", tt.text)
			continue
		}
		if in.UnitSize != tt.size || in.MeasurementUnit != tt.unit || in.SelectedAreaType != tt.area {
			t.Errorf("parseArea(%q) = %v %q %q; want %v %q %q",
				tt.text, in.UnitSize, in.MeasurementUnit, in.SelectedAreaType, tt.size, tt.unit, tt.area)
		}
	}

	if _, ok := c.parseArea("3 BHK flat near station"); ok {
		t.Errorf("parseArea should not match text without an area")
	}
}

func TestAuctionCleanNormalizesAreas(t *testing.T) {
	c := NewAuctionCleaner(newTestLogger())
	raw := []*models.RawAuctionListing{
		{Title: " Flat  in Pune ", AreaText: "1,200 sq.ft carpet", ReservePrice: "₹ 85 Lakh", URL: "https://bank.example/a/1", ScrapedAt: time.Now()},
		{Title: "Shop", AreaText: "", Description: "Ground floor shop, 1234 sqft, road facing", URL: "https://bank.example/a/2", ScrapedAt: time.Now()},
		{Title: "No area", URL: "https://bank.example/a/3", ScrapedAt: time.Now()},
	}

	cleaned := c.Clean(raw)
	if len(cleaned) != 3 {
		t.Fatalf("expected 3 listings, got %d", len(cleaned))
	}

	flat := cleaned[0]
	if flat.Title != "Flat in Pune" || flat.ReservePrice != 8500000 {
		t.Errorf("flat: got title %q price %v", flat.Title, flat.ReservePrice)
	}
	if flat.CarpetArea != 1200 || flat.SuperBuiltUpArea != 1846 || flat.Loading != 35 {
		t.Errorf("flat areas: got carpet %v sbu %v loading %v", flat.CarpetArea, flat.SuperBuiltUpArea, flat.Loading)
	}

	shop := cleaned[1]
	if shop.SuperBuiltUpArea != 1234 || shop.CarpetArea != 802 {
		t.Errorf("shop areas: got carpet %v sbu %v", shop.CarpetArea, shop.SuperBuiltUpArea)
	}

	if cleaned[2].CarpetArea != 0 || cleaned[2].SuperBuiltUpArea != 0 {
		t.Errorf("listing without area should keep zero areas")
	}
}

func TestAuctionCleanUsesNearestAreaLabel(t *testing.T) {
	c := NewAuctionCleaner(newTestLogger())
	raw := []*models.RawAuctionListing{
		{Title: "Flat", AreaText: "Super built-up 1200 sq ft (carpet 900 sq ft)", URL: "https://bank.example/a/1"},
	}

	cleaned := c.Clean(raw)
	if len(cleaned) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(cleaned))
	}
	if l := cleaned[0]; l.AreaType != models.SuperBuiltUp || l.SuperBuiltUpArea != 1200 || l.CarpetArea != 780 {
		t.Errorf("got %q carpet %v sbu %v; want Super Built-Up carpet 780 sbu 1200", l.AreaType, l.CarpetArea, l.SuperBuiltUpArea)
	}
}

func TestAuctionCleanSkipsOutOfRangeArea(t *testing.T) {
	c := NewAuctionCleaner(newTestLogger())
	raw := []*models.RawAuctionListing{
		{Title: "Typo", AreaText: "12000000000 sq.m", URL: "https://bank.example/a/1"},
	}

	cleaned := c.Clean(raw)
	if len(cleaned) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(cleaned))
	}
	if cleaned[0].CarpetArea != 0 || cleaned[0].SuperBuiltUpArea != 0 {
		t.Errorf("out-of-range area should leave zero areas, got carpet %v sbu %v", cleaned[0].CarpetArea, cleaned[0].SuperBuiltUpArea)
	}
}

func TestAuctionCleanDropsEmptyAndDuplicateURL(t *testing.T) {
	c := NewAuctionCleaner(newTestLogger())
	raw := []*models.RawAuctionListing{
		{Title: "No URL", URL: ""},
		{Title: "A", URL: "https://bank.example/a/1"},
		{Title: "B", URL: " https://bank.example/a/1 "},
	}

	cleaned := c.Clean(raw)
	if len(cleaned) != 1 {
		t.Errorf("expected 1 listing after dropping empty and duplicate URLs, got %d", len(cleaned))
	}
}
