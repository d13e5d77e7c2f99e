// Package scoring reduces a response map into per-section averages, an
// overall score and a maturity classification. Everything here is pure.
package scoring

import (
	"madurez42001/internal/catalog"
	"madurez42001/internal/model"
)

// Levels are the five maturity bands, in ascending order. The bounds leave
// small gaps at the band edges (1.5/1.6 etc.); LevelFor resolves scores that
// land in a gap to the first band.
var Levels = []model.MaturityLevel{
	{Min: 0, Max: 1.5, Level: "Inicial", Description: "Requisitos no implementados o muy básicos", Color: "text-red-600"},
	{Min: 1.6, Max: 2.5, Level: "Básico", Description: "Implementación inicial y no sistemática", Color: "text-orange-600"},
	{Min: 2.6, Max: 3.5, Level: "Intermedio", Description: "Implementación parcial en algunas áreas", Color: "text-yellow-600"},
	{Min: 3.6, Max: 4.5, Level: "Avanzado", Description: "Implementación en la mayoría de las áreas", Color: "text-blue-600"},
	{Min: 4.6, Max: 5, Level: "Óptimo", Description: "Implementación completa y documentada", Color: "text-green-600"},
}

// Engine scores response maps against one catalog.
type Engine struct {
	catalog *catalog.Catalog
}

// NewEngine creates a scoring engine over the given catalog.
func NewEngine(cat *catalog.Catalog) *Engine {
	return &Engine{catalog: cat}
}

// Score computes per-section averages and the overall classification for a
// (possibly partial) response map. Responses for unknown question ids are
// ignored. Sections without any recorded response are absent from the result
// rather than reported as zero; the overall score is the unweighted mean of
// the section averages that do exist.
func (e *Engine) Score(responses map[string]int) model.Result {
	type acc struct {
		total int
		count int
	}
	perSection := make(map[string]*acc)

	for questionID, value := range responses {
		sectionID, ok := e.catalog.SectionOf(questionID)
		if !ok {
			continue
		}
		a := perSection[sectionID]
		if a == nil {
			a = &acc{}
			perSection[sectionID] = a
		}
		a.total += value
		a.count++
	}

	result := model.Result{
		SectionScores: make(map[string]float64, len(perSection)),
	}
	if len(perSection) == 0 {
		// Degenerate input: report an explicit no-data result instead of
		// letting a zero division reach the presentation layer.
		result.Level = Levels[0]
		return result
	}

	sum := 0.0
	for sectionID, a := range perSection {
		avg := float64(a.total) / float64(a.count)
		result.SectionScores[sectionID] = avg
		sum += avg
	}
	result.Overall = sum / float64(len(perSection))
	result.Level = LevelFor(result.Overall)
	result.Evaluated = true
	return result
}

// LevelFor classifies a score in [0,5] into its maturity band. Scores inside
// one of the inter-band gaps fall back to the first band (Inicial).
func LevelFor(score float64) model.MaturityLevel {
	for _, lvl := range Levels {
		if score >= lvl.Min && score <= lvl.Max {
			return lvl
		}
	}
	return Levels[0]
}
