package model

// Question is one item of the assessment. The catalog is fixed at build
// time; questions are never created or mutated at runtime.
type Question struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	HelpText string `json:"helpText"`
}

// Section groups the questions for one component of the ISO 42001 norm.
// Order is significant: it drives paging and the numbering on charts.
type Section struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	ChartTitle  string     `json:"chartTitle"` // short label used on chart axes
	Description string     `json:"description"`
	Color       string     `json:"color"` // rgba() fill used by the charts
	Questions   []Question `json:"questions"`
}

// ScaleOption is one of the five answer levels every question shares.
type ScaleOption struct {
	Value       int    `json:"value"` // 1..5
	Label       string `json:"label"`
	Description string `json:"description"`
}

const (
	// ScaleMin and ScaleMax bound every recorded response.
	ScaleMin = 1
	ScaleMax = 5
)
