package model

import "time"

// Session is one in-progress assessment. It lives in Redis for the duration
// of the questionnaire and is discarded once the responses are handed off to
// the results stage as query parameters.
type Session struct {
	ID             string         `json:"id"`
	CurrentSection int            `json:"currentSection"` // 0-based index into the catalog
	Responses      map[string]int `json:"responses"`      // questionID -> 1..5
	Completed      bool           `json:"completed"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}
