package services

import (
	"fmt"
	"sort"

	"publication-metrics-api/models"

	"gorm.io/gorm"
)

// Year bounds substituted when the caller leaves a side of the range open.
// Report treats them as "no bound on this side" rather than literal limits:
// the store never validates publication years, so years outside [0, 9999]
// are legal data and must still land in an open-ended report.
const (
	UnboundedStartYear = 0
	UnboundedEndYear   = 9999
)

// KPIService computes the yearly publication KPIs consumed by the dashboard.
type KPIService struct {
	db *gorm.DB
}

func NewKPIService(db *gorm.DB) *KPIService {
	return &KPIService{db: db}
}

// YearKPI is one row of the per-year breakdown. A year with publications of
// only one indexing type still appears, with the other count at zero; a year
// with no publications at all is absent from the breakdown.
type YearKPI struct {
	Year        int   `json:"year"`
	WOSCount    int64 `json:"wos_count"`
	ScopusCount int64 `json:"scopus_count"`
}

// RangeTotals aggregates the same filtered set the breakdown covers.
// TotalImpactFactor sums impact_factor across WOS journals only and
// TotalCiteScore across SCOPUS journals only, each treating null as zero.
type RangeTotals struct {
	TotalPapers       int64   `json:"totalPapers"`
	TotalImpactFactor float64 `json:"totalImpactFactor"`
	TotalCiteScore    float64 `json:"totalCiteScore"`
}

type KPIReport struct {
	YearlyBreakdown []YearKPI   `json:"yearlyBreakdown"`
	RangeTotals     RangeTotals `json:"rangeTotals"`
}

// yearRange narrows a publications query to [startYear, endYear], leaving a
// side unconstrained when it carries its Unbounded sentinel.
func yearRange(q *gorm.DB, startYear, endYear int) *gorm.DB {
	if startYear != UnboundedStartYear {
		q = q.Where("p.year >= ?", startYear)
	}
	if endYear != UnboundedEndYear {
		q = q.Where("p.year <= ?", endYear)
	}
	return q
}

// Report produces the KPI report for the inclusive range [startYear,
// endYear]. A bound equal to its Unbounded sentinel leaves that side of the
// range open. The breakdown and the totals come from two independent reads of
// current store state; under concurrent writes they may observe different
// snapshots, which is an accepted limitation.
func (s *KPIService) Report(startYear, endYear int) (*KPIReport, error) {
	if startYear != UnboundedStartYear && endYear != UnboundedEndYear && startYear > endYear {
		return nil, ErrInvalidRange
	}

	var grouped []struct {
		Year        int
		JournalType *string
		Count       int64
	}
	err := yearRange(s.db.Table("publications p").
		Select("p.year AS year, j.type AS journal_type, COUNT(*) AS count").
		Joins("LEFT JOIN journals j ON j.id = p.journal_id"), startYear, endYear).
		Group("p.year, j.type").
		Scan(&grouped).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate yearly breakdown: %w", err)
	}

	// Pivot the (year, type) groups into one fixed-shape row per year. A
	// dangling journal reference groups under a null type: the year still
	// shows up, but contributes to neither count.
	byYear := make(map[int]*YearKPI, len(grouped))
	for _, row := range grouped {
		entry, ok := byYear[row.Year]
		if !ok {
			entry = &YearKPI{Year: row.Year}
			byYear[row.Year] = entry
		}
		if row.JournalType == nil {
			continue
		}
		switch *row.JournalType {
		case models.JournalTypeWOS:
			entry.WOSCount = row.Count
		case models.JournalTypeScopus:
			entry.ScopusCount = row.Count
		}
	}

	breakdown := make([]YearKPI, 0, len(byYear))
	for _, entry := range byYear {
		breakdown = append(breakdown, *entry)
	}
	sort.Slice(breakdown, func(i, j int) bool {
		return breakdown[i].Year > breakdown[j].Year
	})

	var totals struct {
		WOSPapers         int64
		ScopusPapers      int64
		TotalImpactFactor float64
		TotalCiteScore    float64
	}
	err = yearRange(s.db.Table("publications p").
		Select(`COUNT(CASE WHEN j.type = 'WOS' THEN 1 END) AS wos_papers,
			COUNT(CASE WHEN j.type = 'SCOPUS' THEN 1 END) AS scopus_papers,
			COALESCE(SUM(CASE WHEN j.type = 'WOS' THEN COALESCE(j.impact_factor, 0) END), 0) AS total_impact_factor,
			COALESCE(SUM(CASE WHEN j.type = 'SCOPUS' THEN COALESCE(j.impact_factor, 0) END), 0) AS total_cite_score`).
		Joins("LEFT JOIN journals j ON j.id = p.journal_id"), startYear, endYear).
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate range totals: %w", err)
	}

	return &KPIReport{
		YearlyBreakdown: breakdown,
		RangeTotals: RangeTotals{
			TotalPapers:       totals.WOSPapers + totals.ScopusPapers,
			TotalImpactFactor: totals.TotalImpactFactor,
			TotalCiteScore:    totals.TotalCiteScore,
		},
	}, nil
}
