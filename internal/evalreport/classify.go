// internal/evalreport/classify.go
package evalreport

import (
	"fmt"
	"strings"
)

// MatchMode selects how a Rule compares its terms against a category.
type MatchMode string

const (
	// MatchKeyword is case-insensitive substring containment. It tolerates drift
	// in free-text labels ("Hallucination - Factuality", "factuality check").
	MatchKeyword MatchMode = "keyword"
	// MatchLabel is case-sensitive substring containment against known labels.
	MatchLabel MatchMode = "label"
)

// Rule is a named analysis view over the report.
type Rule struct {
	Name  string    `json:"name" mapstructure:"name"`
	Title string    `json:"title" mapstructure:"title"`
	Mode  MatchMode `json:"mode" mapstructure:"mode"`
	Terms []string  `json:"terms" mapstructure:"terms"`
}

var (
	// BiasView groups over-cautious refusals and bias probes.
	BiasView = Rule{
		Name:  "bias",
		Title: "Bias & Refusal Metrics",
		Mode:  MatchKeyword,
		Terms: []string{"bias", "refusal", "safety"},
	}
	// HallucinationView groups fabrication and factuality probes.
	HallucinationView = Rule{
		Name:  "hallucination",
		Title: "Hallucination Analysis",
		Mode:  MatchKeyword,
		Terms: []string{"hallucination", "fabrication", "factuality"},
	}
	// ReasoningView matches the known reasoning labels exactly (as substrings,
	// case preserved) rather than by keyword stems.
	ReasoningView = Rule{
		Name:  "reasoning",
		Title: "Reasoning Diagnostics",
		Mode:  MatchLabel,
		Terms: []string{
			"Algorithmic Counting",
			"Negation & Constraint",
			"Timezone & Relativity",
			"Causal Chain Breakdown",
			"State-Tracking",
		},
	}
)

// DefaultViews returns the built-in views in display order.
func DefaultViews() []Rule {
	return []Rule{ReasoningView, HallucinationView, BiasView}
}

// Validate checks that a rule can be applied.
func (r Rule) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("view name is required")
	}
	switch r.Mode {
	case MatchKeyword, MatchLabel:
	default:
		return fmt.Errorf("view %q: unknown match mode %q", r.Name, r.Mode)
	}
	if len(r.Terms) == 0 {
		return fmt.Errorf("view %q: at least one term is required", r.Name)
	}
	return nil
}

// DisplayTitle returns the title, or the name when no title is set.
func (r Rule) DisplayTitle() string {
	if t := strings.TrimSpace(r.Title); t != "" {
		return t
	}
	return r.Name
}

// Matches reports whether category belongs to the view.
func (r Rule) Matches(category string) bool {
	if r.Mode == MatchLabel {
		return containsAny(category, r.Terms)
	}
	return containsAnyFold(category, r.Terms)
}

// Filter returns the cases whose category matches the view, in input order.
func (r Rule) Filter(cases []TestCase) []TestCase {
	return filter(cases, func(c TestCase) bool { return r.Matches(c.Category) })
}

// FilterByKeywords returns the cases whose category contains any keyword,
// ignoring case. Input order is preserved.
func FilterByKeywords(cases []TestCase, keywords []string) []TestCase {
	return Rule{Mode: MatchKeyword, Terms: keywords}.Filter(cases)
}

// FilterByLabels returns the cases whose category contains any label exactly.
// Input order is preserved.
func FilterByLabels(cases []TestCase, labels []string) []TestCase {
	return Rule{Mode: MatchLabel, Terms: labels}.Filter(cases)
}

// LookupView finds a view by name among views.
func LookupView(views []Rule, name string) (Rule, bool) {
	for _, v := range views {
		if strings.EqualFold(v.Name, name) {
			return v, true
		}
	}
	return Rule{}, false
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if t != "" && strings.Contains(s, t) {
			return true
		}
	}
	return false
}

func containsAnyFold(s string, terms []string) bool {
	lower := strings.ToLower(s)
	for _, t := range terms {
		if t != "" && strings.Contains(lower, strings.ToLower(t)) {
			return true
		}
	}
	return false
}

func filter(cases []TestCase, keep func(TestCase) bool) []TestCase {
	out := make([]TestCase, 0, len(cases))
	for _, c := range cases {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}
