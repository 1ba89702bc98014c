package evalreport

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mixedCases() []TestCase {
	return []TestCase{
		{TestID: "A-1", Category: "Bias - Refusal", Passed: false},
		{TestID: "B-1", Category: "Hallucination - Factuality", Passed: true},
		{TestID: "C-1", Category: "Algorithmic Counting", Passed: false},
	}
}

func ids(cases []TestCase) []string {
	out := make([]string, 0, len(cases))
	for _, c := range cases {
		out = append(out, c.TestID)
	}
	return out
}

// generatedCases builds a deterministic mix of categories and outcomes.
func generatedCases(n int) []TestCase {
	categories := []string{"Bias - Refusal", "bias", "Timezone & Relativity", "State-Tracking eval", "Fabrication", "Misc"}
	out := make([]TestCase, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, TestCase{
			TestID:   fmt.Sprintf("G%d-%d", i%4, i),
			Category: categories[(i*7)%len(categories)],
			Passed:   (i*13)%5 < 2,
		})
	}
	return out
}

func TestScenarioMixedCategories(t *testing.T) {
	cases := mixedCases()

	if diff := cmp.Diff([]string{"A-1"}, ids(FilterByKeywords(cases, []string{"bias"}))); diff != "" {
		t.Fatalf("FilterByKeywords mismatch (-want +got):\n%s", diff)
	}

	want := []CategoryAggregate{
		{Subject: "Bias - Refusal", Score: 0, FullMark: 100, Total: 1, Passed: 0},
		{Subject: "Hallucination - Factuality", Score: 100, FullMark: 100, Total: 1, Passed: 1},
		{Subject: "Algorithmic Counting", Score: 0, FullMark: 100, Total: 1, Passed: 0},
	}
	if diff := cmp.Diff(want, AggregateScores(cases)); diff != "" {
		t.Fatalf("AggregateScores mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregateScoresEmpty(t *testing.T) {
	got := AggregateScores(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil aggregates, got %#v", got)
	}
}

func TestAggregateScoresCorrectness(t *testing.T) {
	for _, n := range []int{1, 2, 7, 31, 100} {
		cases := generatedCases(n)
		aggs := AggregateScores(cases)

		total := 0
		for _, agg := range aggs {
			var groupTotal, groupPassed int
			for _, c := range cases {
				if c.Category == agg.Subject {
					groupTotal++
					if c.Passed {
						groupPassed++
					}
				}
			}
			if agg.Total != groupTotal || agg.Passed != groupPassed {
				t.Fatalf("n=%d %q: counts %d/%d, want %d/%d", n, agg.Subject, agg.Passed, agg.Total, groupPassed, groupTotal)
			}
			want := int(math.Round(100 * float64(groupPassed) / float64(groupTotal)))
			if agg.Score != want {
				t.Fatalf("n=%d %q: score %d, want %d", n, agg.Subject, agg.Score, want)
			}
			if agg.FullMark != 100 {
				t.Fatalf("expected fullMark 100, got %d", agg.FullMark)
			}
			total += agg.Total
		}
		if total != len(cases) {
			t.Fatalf("n=%d: group totals sum to %d, want %d", n, total, len(cases))
		}
	}
}

func TestAggregateScoresExactGrouping(t *testing.T) {
	cases := []TestCase{
		{TestID: "a", Category: "Bias", Passed: true},
		{TestID: "b", Category: "bias", Passed: false},
		{TestID: "c", Category: "Bias ", Passed: true},
		{TestID: "d", Category: "", Passed: true},
		{TestID: "e", Category: "Bias", Passed: false},
	}
	got := AggregateScores(cases)
	subjects := make([]string, 0, len(got))
	for _, agg := range got {
		subjects = append(subjects, agg.Subject)
	}
	if diff := cmp.Diff([]string{"Bias", "bias", "Bias ", UnknownCategory}, subjects); diff != "" {
		t.Fatalf("unexpected grouping (-want +got):\n%s", diff)
	}
	if got[0].Score != 50 {
		t.Fatalf("expected Bias score 50, got %d", got[0].Score)
	}
}

func TestAggregateScoresRounding(t *testing.T) {
	cases := []TestCase{
		{Category: "x", Passed: true},
		{Category: "x", Passed: true},
		{Category: "x", Passed: false},
	}
	if got := AggregateScores(cases)[0].Score; got != 67 {
		t.Fatalf("expected 2/3 to round to 67, got %d", got)
	}
	eighth := append(make([]TestCase, 0, 8), TestCase{Category: "y", Passed: true})
	for i := 0; i < 7; i++ {
		eighth = append(eighth, TestCase{Category: "y"})
	}
	if got := AggregateScores(eighth)[0].Score; got != 13 {
		t.Fatalf("expected 1/8 to round half up to 13, got %d", got)
	}
}

func TestFilterFailedSubset(t *testing.T) {
	for _, n := range []int{0, 1, 9, 50} {
		cases := generatedCases(n)
		failed := FilterFailed(cases)
		passed := FilterPassed(cases)
		if len(failed)+len(passed) != len(cases) {
			t.Fatalf("n=%d: %d failed + %d passed != %d", n, len(failed), len(passed), len(cases))
		}
		j := 0
		for _, f := range failed {
			if f.Passed {
				t.Fatalf("n=%d: passing case %s in failures", n, f.TestID)
			}
			for j < len(cases) && cases[j].TestID != f.TestID {
				j++
			}
			if j == len(cases) {
				t.Fatalf("n=%d: failure %s not an ordered subsequence of input", n, f.TestID)
			}
			j++
		}
	}
}

func TestPreviewFailuresBound(t *testing.T) {
	cases := generatedCases(40)
	failedCount := len(FilterFailed(cases))
	for _, n := range []int{0, 1, 5, failedCount, failedCount + 3} {
		got := PreviewFailures(cases, n, 100)
		want := n
		if failedCount < want {
			want = failedCount
		}
		if len(got) != want {
			t.Fatalf("n=%d: preview has %d cases, want %d", n, len(got), want)
		}
	}
	if got := PreviewFailures(cases, -1, 100); len(got) != 0 {
		t.Fatalf("expected negative limit to yield no preview, got %d", len(got))
	}
}

func TestPreviewFailuresTruncatesCopies(t *testing.T) {
	long := strings.Repeat("x", 150)
	cases := []TestCase{
		{TestID: "P-1", Passed: true, ActualAnswer: Text(long)},
		{TestID: "F-1", Passed: false, ActualAnswer: Text(long), ExpectedAnswer: "short rule"},
	}
	got := PreviewFailures(cases, 5, 100)
	if len(got) != 1 || got[0].TestID != "F-1" {
		t.Fatalf("unexpected preview: %+v", got)
	}
	if want := strings.Repeat("x", 100) + Ellipsis; got[0].ActualAnswer.String() != want {
		t.Fatalf("expected truncated answer, got %q", got[0].ActualAnswer)
	}
	if got[0].ExpectedAnswer != "short rule" {
		t.Fatalf("expected short text untouched, got %q", got[0].ExpectedAnswer)
	}
	if cases[1].ActualAnswer.String() != long {
		t.Fatal("preview must not modify the full-length failure")
	}
	if full := FilterFailed(cases); full[0].ActualAnswer.String() != long {
		t.Fatal("failure log must keep untruncated text")
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := Truncate("héllo wörld", 5); got != "héllo"+Ellipsis {
		t.Fatalf("unexpected rune truncation: %q", got)
	}
	if got := Truncate("abc", 0); got != "abc" {
		t.Fatalf("expected zero width to keep text, got %q", got)
	}
}

func TestTokensProcessed(t *testing.T) {
	if got := TokensProcessed(3, DefaultTokensPerCase); got != 426 {
		t.Fatalf("expected 426, got %d", got)
	}
	if got := TokensProcessed(0, DefaultTokensPerCase); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if got := TokensProcessed(3, 10); got != 30 {
		t.Fatalf("expected configurable factor, got %d", got)
	}
}

func TestDisplayCode(t *testing.T) {
	tests := map[string]string{
		"HALL-001": "HALL",
		"A-1-b":    "A",
		"NODASH":   "NODASH",
		"-leading": "",
		"":         "",
	}
	for in, want := range tests {
		if got := DisplayCode(in); got != want {
			t.Fatalf("DisplayCode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPassRateLabel(t *testing.T) {
	rate := func(v float64) *float64 { return &v }
	tests := []struct {
		meta Metadata
		want string
	}{
		{Metadata{}, "0%"},
		{Metadata{OverallPassRate: rate(0)}, "0%"},
		{Metadata{OverallPassRate: rate(87.5)}, "87.5%"},
		{Metadata{OverallPassRate: rate(90)}, "90%"},
		{Metadata{OverallPassRate: rate(33.33)}, "33.33%"},
	}
	for _, tt := range tests {
		if got := PassRateLabel(tt.meta); got != tt.want {
			t.Fatalf("PassRateLabel(%v) = %q, want %q", tt.meta.OverallPassRate, got, tt.want)
		}
	}
}
