package scoring

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"madurez42001/internal/catalog"
)

func mustCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	return cat
}

func fullResponses(cat *catalog.Catalog, value int) map[string]int {
	responses := make(map[string]int)
	for _, section := range cat.Sections() {
		for _, q := range section.Questions {
			responses[q.ID] = value
		}
	}
	return responses
}

func TestScoreAllThrees(t *testing.T) {
	cat := mustCatalog(t)
	engine := NewEngine(cat)

	result := engine.Score(fullResponses(cat, 3))

	require.True(t, result.Evaluated)
	assert.Len(t, result.SectionScores, 7)
	for sectionID, avg := range result.SectionScores {
		assert.InDelta(t, 3.0, avg, 1e-9, "section %s", sectionID)
	}
	assert.InDelta(t, 3.0, result.Overall, 1e-9)
	assert.Equal(t, "Intermedio", result.Level.Level)
}

func TestScoreAllFives(t *testing.T) {
	cat := mustCatalog(t)
	engine := NewEngine(cat)

	result := engine.Score(fullResponses(cat, 5))

	assert.InDelta(t, 5.0, result.Overall, 1e-9)
	assert.Equal(t, "Óptimo", result.Level.Level)
}

func TestScoreSingleSection(t *testing.T) {
	cat := mustCatalog(t)
	engine := NewEngine(cat)

	result := engine.Score(map[string]int{
		"contexto_1": 1,
		"contexto_2": 1,
		"contexto_3": 1,
		"contexto_4": 1,
	})

	require.True(t, result.Evaluated)
	require.Len(t, result.SectionScores, 1)
	assert.InDelta(t, 1.0, result.SectionScores["contexto"], 1e-9)
	// Overall is the mean of the single present section, not diluted by
	// the six unanswered ones.
	assert.InDelta(t, 1.0, result.Overall, 1e-9)
	assert.Equal(t, "Inicial", result.Level.Level)
}

func TestScoreOmitsUnansweredSections(t *testing.T) {
	cat := mustCatalog(t)
	engine := NewEngine(cat)

	result := engine.Score(map[string]int{"mejora_1": 4})

	_, present := result.SectionScores["contexto"]
	assert.False(t, present, "unanswered section must be absent, not zero")
	assert.Len(t, result.SectionScores, 1)
}

func TestScoreIgnoresUnknownQuestions(t *testing.T) {
	cat := mustCatalog(t)
	engine := NewEngine(cat)

	result := engine.Score(map[string]int{
		"foo":        3,
		"contexto_9": 3,
		"mejora_1":   2,
		"mejora_2":   4,
	})

	require.Len(t, result.SectionScores, 1)
	assert.InDelta(t, 3.0, result.SectionScores["mejora"], 1e-9)
}

func TestScoreEmptyInput(t *testing.T) {
	cat := mustCatalog(t)
	engine := NewEngine(cat)

	result := engine.Score(map[string]int{})

	assert.False(t, result.Evaluated)
	assert.Empty(t, result.SectionScores)
	assert.Zero(t, result.Overall)
	assert.False(t, math.IsNaN(result.Overall))
	assert.Equal(t, "Inicial", result.Level.Level)
}

// Randomized check of the two scoring invariants: each section average is
// the mean of its own recorded responses, and the overall score is the
// unweighted mean of the section averages.
func TestScoreMeanOfMeansProperty(t *testing.T) {
	cat := mustCatalog(t)
	engine := NewEngine(cat)
	rng := rand.New(rand.NewSource(42))

	var questionIDs []string
	for _, section := range cat.Sections() {
		for _, q := range section.Questions {
			questionIDs = append(questionIDs, q.ID)
		}
	}

	for trial := 0; trial < 200; trial++ {
		responses := make(map[string]int)
		for _, id := range questionIDs {
			if rng.Intn(2) == 0 {
				responses[id] = 1 + rng.Intn(5)
			}
		}

		result := engine.Score(responses)

		// Recompute per-section means directly.
		expected := make(map[string]float64)
		for _, section := range cat.Sections() {
			total, count := 0, 0
			for _, q := range section.Questions {
				if v, ok := responses[q.ID]; ok {
					total += v
					count++
				}
			}
			if count > 0 {
				expected[section.ID] = float64(total) / float64(count)
			}
		}

		require.Equal(t, len(expected), len(result.SectionScores))
		sum := 0.0
		for sectionID, want := range expected {
			assert.InDelta(t, want, result.SectionScores[sectionID], 1e-9)
			sum += want
		}
		if len(expected) == 0 {
			assert.False(t, result.Evaluated)
			continue
		}
		assert.InDelta(t, sum/float64(len(expected)), result.Overall, 1e-9)
	}
}

func TestLevelForIsTotalOverScoreSpace(t *testing.T) {
	for i := 0; i <= 500; i++ {
		score := float64(i) / 100
		lvl := LevelFor(score)
		assert.NotEmpty(t, lvl.Level, "score %.2f", score)
	}
}

func TestLevelForGapFallsBackToFirstBand(t *testing.T) {
	// The band bounds leave (1.5,1.6), (2.5,2.6), (3.5,3.6) and (4.5,4.6)
	// unclaimed; those scores classify as Inicial.
	for _, score := range []float64{1.55, 2.55, 3.55, 4.55} {
		assert.Equal(t, "Inicial", LevelFor(score).Level, "score %.2f", score)
	}
}

func TestLevelForBandBounds(t *testing.T) {
	cases := map[float64]string{
		0:   "Inicial",
		1.5: "Inicial",
		1.6: "Básico",
		2.5: "Básico",
		2.6: "Intermedio",
		3.5: "Intermedio",
		3.6: "Avanzado",
		4.5: "Avanzado",
		4.6: "Óptimo",
		5:   "Óptimo",
	}
	for score, want := range cases {
		assert.Equal(t, want, LevelFor(score).Level, "score %v", score)
	}
}
