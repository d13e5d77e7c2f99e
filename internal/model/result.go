package model

// MaturityLevel is one of the five ordinal bands an overall score is
// classified into. Min and Max are inclusive bounds over [0,5].
type MaturityLevel struct {
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Level       string  `json:"level"`
	Description string  `json:"description"`
	Color       string  `json:"color"`
}

// Result is the output of the scoring engine. Overall is the unweighted mean
// of the per-section averages, not the mean of all individual responses.
type Result struct {
	SectionScores map[string]float64 `json:"sectionScores"`
	Overall       float64            `json:"overall"`
	Level         MaturityLevel      `json:"level"`
	// Evaluated is false when no response could be attributed to any
	// section; Overall is zero in that case rather than NaN.
	Evaluated bool `json:"evaluated"`
}

// ChartDataset is one labelled series projected from a Result, ready to feed
// a radar, bar or donut renderer.
type ChartDataset struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Colors []string  `json:"colors"`
}

// Snapshot is the immutable view handed to the presentation layer and the
// exporter. Nothing downstream mutates it.
type Snapshot struct {
	SectionScores     map[string]float64 `json:"sectionScores"`
	Overall           float64            `json:"overall"`
	Level             MaturityLevel      `json:"level"`
	Recommendations   []string           `json:"recommendations"`
	EvaluatedSections int                `json:"evaluatedSections"`
	TotalSections     int                `json:"totalSections"`
	NoData            bool               `json:"sinDatos"`
	Radar             ChartDataset       `json:"radar"`
	Bars              ChartDataset       `json:"bars"`
	Distribution      ChartDataset       `json:"distribution"`
}
