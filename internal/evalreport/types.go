// internal/evalreport/types.go
// Package evalreport loads batch evaluation reports and derives pass-rate
// aggregates and categorized failure views from them.
package evalreport

import (
	"bytes"
	"encoding/json"
	"math"
)

// UnknownCategory is the group label used for cases recorded without a category.
const UnknownCategory = "Unknown"

// FullMark is the upper bound of a category score.
const FullMark = 100

// Report is a single evaluation run as written by the upstream test runner.
type Report struct {
	Metadata Metadata   `json:"metadata" yaml:"metadata"`
	Results  []TestCase `json:"results" yaml:"results"`
}

// Metadata holds the run-level fields evalboard understands. Anything else in the
// metadata object is ignored.
type Metadata struct {
	OverallPassRate *float64 `json:"overall_pass_rate,omitempty" yaml:"overall_pass_rate,omitempty"`
	Timestamp       Text     `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	TotalTests      *int     `json:"total_tests,omitempty" yaml:"total_tests,omitempty"`
	ModelUsed       Text     `json:"model_used,omitempty" yaml:"model_used,omitempty"`
}

// UnmarshalJSON decodes the metadata object. Only overall_pass_rate has a
// fixed type; the informational fields take any value, and a total_tests that
// is not a whole non-negative number is dropped.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var raw struct {
		OverallPassRate *float64        `json:"overall_pass_rate"`
		Timestamp       Text            `json:"timestamp"`
		TotalTests      json.RawMessage `json:"total_tests"`
		ModelUsed       Text            `json:"model_used"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = Metadata{
		OverallPassRate: raw.OverallPassRate,
		Timestamp:       raw.Timestamp,
		TotalTests:      wholeCount(raw.TotalTests),
		ModelUsed:       raw.ModelUsed,
	}
	return nil
}

// wholeCount reads raw as a count, or returns nil when it is not one.
func wholeCount(raw json.RawMessage) *int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == 'n' {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil
	}
	if f < 0 || f > math.MaxInt32 || f != math.Trunc(f) {
		return nil
	}
	n := int(f)
	return &n
}

// TestCase is one recorded prompt/response/outcome triple.
type TestCase struct {
	TestID         string `json:"test_id" yaml:"test_id"`
	Category       string `json:"category" yaml:"category"`
	Prompt         Text   `json:"prompt" yaml:"prompt"`
	Passed         bool   `json:"passed" yaml:"passed"`
	ActualAnswer   Text   `json:"actual_answer" yaml:"actual_answer"`
	ExpectedAnswer Text   `json:"expected_answer" yaml:"expected_answer"`
}

// CategoryAggregate is the pass rate of one category.
type CategoryAggregate struct {
	Subject  string `json:"subject" yaml:"subject"`
	Score    int    `json:"score" yaml:"score"`
	FullMark int    `json:"fullMark" yaml:"fullMark"`
	Total    int    `json:"total" yaml:"total"`
	Passed   int    `json:"passed" yaml:"passed"`
}

// Text is a free-form report field. Upstream runners occasionally write numbers,
// booleans or nested values where a string is expected, so any JSON value is
// accepted and kept in its textual form.
type Text string

// String returns the field as plain text.
func (t Text) String() string { return string(t) }

// UnmarshalJSON accepts any JSON value.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return err
		}
		*t = Text(buf.String())
	default:
		*t = Text(data)
	}
	return nil
}
