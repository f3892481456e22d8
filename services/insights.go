package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"

	"github.com/jaydipmangukiya/Prop-valuer-sub000/models"
	"github.com/jaydipmangukiya/Prop-valuer-sub000/utils"
)

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

func (s *InsightService) Generate(requests []*models.ValuationRequest) *models.SubmissionReport {
	report := &models.SubmissionReport{
		ByPropertyType: make(map[models.PropertyType]int),
		ByLoading:      make(map[float64]int),
	}

	if len(requests) == 0 {
		return report
	}

	report.TotalRequests = len(requests)

	for pt, group := range lo.GroupBy(requests, func(r *models.ValuationRequest) models.PropertyType {
		return r.PropertyType
	}) {
		report.ByPropertyType[pt] = len(group)
	}
	for _, r := range requests {
		report.ByLoading[r.Loading]++
	}

	report.TotalCarpetArea = lo.SumBy(requests, func(r *models.ValuationRequest) float64 {
		return r.CarpetArea
	})

	// Super built-up stats (only requests with an area > 0)
	sized := lo.Filter(requests, func(r *models.ValuationRequest, _ int) bool {
		return r.SuperBuiltUpArea > 0
	})
	if len(sized) > 0 {
		report.Largest = lo.MaxBy(sized, func(a, b *models.ValuationRequest) bool {
			return a.SuperBuiltUpArea > b.SuperBuiltUpArea
		})
		report.MinSuperBuilt = sized[0].SuperBuiltUpArea
		report.MaxSuperBuilt = report.Largest.SuperBuiltUpArea
		var total float64
		for _, r := range sized {
			total += r.SuperBuiltUpArea
			if r.SuperBuiltUpArea < report.MinSuperBuilt {
				report.MinSuperBuilt = r.SuperBuiltUpArea
			}
		}
		report.AverageSuperBuilt = round2(total / float64(len(sized)))
	}

	s.logger.Debug("[insights] %d requests across %d property types",
		report.TotalRequests, len(report.ByPropertyType))
	return report
}

func (s *InsightService) Print(r *models.SubmissionReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  🏠 VALUATION REQUEST INSIGHTS\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Total requests         : \033[1m%d\033[0m\n", r.TotalRequests)
	for _, pt := range models.PropertyTypes {
		fmt.Printf("  %-22s : \033[1m%d\033[0m\n", capitalise(string(pt)), r.ByPropertyType[pt])
	}
	fmt.Printf("  Total carpet area      : \033[1m%s sq ft\033[0m\n", humanize.Commaf(r.TotalCarpetArea))
	fmt.Println()

	// Area Stats
	fmt.Printf("\033[1;33m  Super Built-Up Area (sq ft)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.AverageSuperBuilt > 0 {
		fmt.Printf("  Average : \033[1;32m%s\033[0m\n", humanize.Commaf(r.AverageSuperBuilt))
		fmt.Printf("  Minimum : \033[1;32m%s\033[0m\n", humanize.Commaf(r.MinSuperBuilt))
		fmt.Printf("  Maximum : \033[1;32m%s\033[0m\n", humanize.Commaf(r.MaxSuperBuilt))
	} else {
		fmt.Printf("  No area data available\n")
	}
	fmt.Println()

	if r.Largest != nil {
		fmt.Printf("\033[1;33m  Largest Property\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  %s (%s)\n", truncate(r.Largest.OwnerName, 40), r.Largest.PropertyType)
		fmt.Printf("  Location : %s\n", joinLocation(r.Largest.Locality, r.Largest.City))
		fmt.Printf("  Carpet   : %s sq ft | Super built-up: \033[1;31m%s sq ft\033[0m\n",
			humanize.Commaf(r.Largest.CarpetArea), humanize.Commaf(r.Largest.SuperBuiltUpArea))
		fmt.Println()
	}

	// Loading distribution
	fmt.Printf("\033[1;33m  Requests by Loading %%\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.ByLoading) == 0 {
		fmt.Printf("  No loading data\n")
	} else {
		loadings := lo.Keys(r.ByLoading)
		sort.Float64s(loadings)
		for _, l := range loadings {
			cnt := r.ByLoading[l]
			bar := strings.Repeat("█", cnt)
			fmt.Printf("  %5s%%  %s (%d)\n", humanize.Ftoa(l), bar, cnt)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

// truncate shortens s to max characters, counting runes rather than bytes.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func capitalise(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func joinLocation(parts ...string) string {
	return strings.Join(lo.Filter(parts, func(p string, _ int) bool { return p != "" }), ", ")
}
