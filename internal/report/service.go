// Package report projects scoring output into the immutable snapshot the
// presentation layer and the exporter consume.
package report

import (
	"strings"

	"madurez42001/internal/catalog"
	"madurez42001/internal/model"
	"madurez42001/internal/recommend"
	"madurez42001/internal/scoring"
)

// barLabelMax truncates long section titles on the bar axis.
const barLabelMax = 15

// distributionColors are the donut slice fills, best to worst band.
var distributionColors = []string{
	"rgba(34, 197, 94, 0.8)",
	"rgba(59, 130, 246, 0.8)",
	"rgba(251, 191, 36, 0.8)",
	"rgba(251, 146, 60, 0.8)",
	"rgba(239, 68, 68, 0.8)",
}

// Service builds result snapshots.
type Service struct {
	catalog *catalog.Catalog
	engine  *scoring.Engine
}

// NewService creates a report service over the catalog and scoring engine.
func NewService(cat *catalog.Catalog, engine *scoring.Engine) *Service {
	return &Service{
		catalog: cat,
		engine:  engine,
	}
}

// Build scores the responses and assembles the full snapshot: scores, level,
// recommendations and the three chart datasets. Sections without responses
// chart as zero but stay absent from SectionScores.
func (s *Service) Build(responses map[string]int) *model.Snapshot {
	result := s.engine.Score(responses)
	sections := s.catalog.Sections()

	snap := &model.Snapshot{
		SectionScores:     result.SectionScores,
		Overall:           result.Overall,
		Level:             result.Level,
		Recommendations:   recommend.ForScores(s.catalog, result.SectionScores),
		EvaluatedSections: len(result.SectionScores),
		TotalSections:     len(sections),
		NoData:            !result.Evaluated,
	}

	radar := model.ChartDataset{}
	bars := model.ChartDataset{}
	for _, section := range sections {
		score := result.SectionScores[section.ID] // zero when absent
		radar.Labels = append(radar.Labels, section.ChartTitle)
		radar.Values = append(radar.Values, score)
		radar.Colors = append(radar.Colors, section.Color)
		bars.Labels = append(bars.Labels, truncate(section.ChartTitle, barLabelMax))
		bars.Values = append(bars.Values, score)
		bars.Colors = append(bars.Colors, section.Color)
	}
	snap.Radar = radar
	snap.Bars = bars
	snap.Distribution = s.distribution(result.SectionScores)

	return snap
}

// distribution counts evaluated sections per maturity band, best band first.
// The bucket boundaries mirror the maturity bands.
func (s *Service) distribution(sectionScores map[string]float64) model.ChartDataset {
	buckets := make([]float64, 5)
	for _, score := range sectionScores {
		switch {
		case score >= 4.6:
			buckets[0]++
		case score >= 3.6:
			buckets[1]++
		case score >= 2.6:
			buckets[2]++
		case score >= 1.6:
			buckets[3]++
		default:
			buckets[4]++
		}
	}
	return model.ChartDataset{
		Labels: []string{
			"Óptimo (4.6-5)",
			"Avanzado (3.6-4.5)",
			"Intermedio (2.6-3.5)",
			"Básico (1.6-2.5)",
			"Inicial (0-1.5)",
		},
		Values: buckets,
		Colors: distributionColors,
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max])) + "..."
}
