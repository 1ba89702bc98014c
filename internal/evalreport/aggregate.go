// internal/evalreport/aggregate.go
package evalreport

import (
	"math"
	"strconv"
	"strings"

	"github.com/mwiater/evalboard/internal/util"
)

const (
	// DefaultPreviewLimit is how many failures the compact preview shows.
	DefaultPreviewLimit = 5
	// DefaultPreviewWidth bounds each answer field in the compact preview.
	DefaultPreviewWidth = 100
	// DefaultTokensPerCase is the display heuristic for estimated token volume.
	DefaultTokensPerCase = 142
	// Ellipsis marks truncated preview text.
	Ellipsis = "..."
)

// FilterFailed returns the cases that did not pass, in input order.
func FilterFailed(cases []TestCase) []TestCase {
	return filter(cases, func(c TestCase) bool { return !c.Passed })
}

// FilterPassed returns the cases that passed, in input order.
func FilterPassed(cases []TestCase) []TestCase {
	return filter(cases, func(c TestCase) bool { return c.Passed })
}

// AggregateScores groups cases by exact category and returns one pass-rate
// aggregate per category in first-seen order.
func AggregateScores(cases []TestCase) []CategoryAggregate {
	out := make([]CategoryAggregate, 0)
	index := make(map[string]int)
	for _, c := range cases {
		category := c.Category
		if category == "" {
			category = UnknownCategory
		}
		i, ok := index[category]
		if !ok {
			i = len(out)
			index[category] = i
			out = append(out, CategoryAggregate{Subject: category, FullMark: FullMark})
		}
		out[i].Total++
		if c.Passed {
			out[i].Passed++
		}
	}
	for i := range out {
		out[i].Score = percent(out[i].Passed, out[i].Total)
	}
	return out
}

// PreviewFailures returns at most n failures with their answers cut to width
// runes. The input cases are not modified.
func PreviewFailures(cases []TestCase, n, width int) []TestCase {
	if n <= 0 {
		return []TestCase{}
	}
	failed := FilterFailed(cases)
	if len(failed) > n {
		failed = failed[:n]
	}
	out := make([]TestCase, len(failed))
	for i, c := range failed {
		c.ActualAnswer = Text(Truncate(c.ActualAnswer.String(), width))
		c.ExpectedAnswer = Text(Truncate(c.ExpectedAnswer.String(), width))
		out[i] = c
	}
	return out
}

// Truncate cuts s to width runes and appends Ellipsis when anything was
// removed. A non-positive width leaves s untouched.
func Truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return util.TruncateRunes(s, width, Ellipsis)
}

// TokensProcessed is a rough token estimate for count cases.
func TokensProcessed(count, tokensPerCase int) int {
	if count <= 0 || tokensPerCase <= 0 {
		return 0
	}
	return count * tokensPerCase
}

// DisplayCode is the short group code of a test id: the part before the first
// dash, or the whole id when it has none.
func DisplayCode(testID string) string {
	code, _, _ := strings.Cut(testID, "-")
	return code
}

// PassRateLabel formats the overall pass rate for display, falling back to
// "0%" when the metadata carries none.
func PassRateLabel(m Metadata) string {
	if m.OverallPassRate == nil || *m.OverallPassRate == 0 || math.IsNaN(*m.OverallPassRate) {
		return "0%"
	}
	return strconv.FormatFloat(*m.OverallPassRate, 'f', -1, 64) + "%"
}

// PassRate computes the percentage of passing cases, rounded to an integer.
func PassRate(cases []TestCase) int {
	passed := 0
	for _, c := range cases {
		if c.Passed {
			passed++
		}
	}
	return percent(passed, len(cases))
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(total)))
}
