// Package transfer serializes completed response maps as flat query
// parameters, the hand-off format between the questionnaire and the results
// stage.
package transfer

import (
	"net/url"
	"strconv"

	"madurez42001/internal/model"
)

// Encode renders a response map as query parameters, one questionId=score
// pair per answered question.
func Encode(responses map[string]int) url.Values {
	values := url.Values{}
	for questionID, score := range responses {
		values.Set(questionID, strconv.Itoa(score))
	}
	return values
}

// EncodeQuery is Encode followed by URL encoding.
func EncodeQuery(responses map[string]int) string {
	return Encode(responses).Encode()
}

// Decode rebuilds a response map from query parameters. Entries with
// non-numeric or out-of-range values are skipped rather than failing the
// whole decode; unknown keys are kept here and filtered during scoring,
// where catalog membership is known.
func Decode(values url.Values) map[string]int {
	responses := make(map[string]int, len(values))
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		score, err := strconv.Atoi(vals[0])
		if err != nil {
			continue
		}
		if score < model.ScaleMin || score > model.ScaleMax {
			continue
		}
		responses[key] = score
	}
	return responses
}

// DecodeQuery parses a raw query string and decodes it. A malformed query
// string yields an empty map.
func DecodeQuery(rawQuery string) map[string]int {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return map[string]int{}
	}
	return Decode(values)
}
