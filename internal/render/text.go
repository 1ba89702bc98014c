package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mwiater/evalboard/internal/evalreport"
)

const (
	// NoDataMessage is shown whenever the report could not be loaded.
	NoDataMessage = "No report data available."
	// AllClearMessage is shown when the preview has nothing to show.
	AllClearMessage = "No critical failures detected in this reporting batch."
	// NoFailuresMessage is shown for an empty failure log.
	NoFailuresMessage = "No failures detected in this category."
	// NoCategoriesMessage is shown when there is nothing to aggregate.
	NoCategoriesMessage = "Insufficient data for radar visualization."
)

// Styles colors terminal output.
type Styles struct {
	heading *color.Color
	pass    *color.Color
	fail    *color.Color
	muted   *color.Color
	accent  *color.Color
}

// NewStyles returns terminal styles, forcing color on or off.
func NewStyles(enabled bool) Styles {
	s := Styles{
		heading: color.New(color.Bold),
		pass:    color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		muted:   color.New(color.FgHiBlack),
		accent:  color.New(color.FgMagenta, color.Bold),
	}
	for _, c := range []*color.Color{s.heading, s.pass, s.fail, s.muted, s.accent} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// WriteSummary writes the overview dashboard: metric cards, category pass
// rates and the compact failure preview.
func WriteSummary(w io.Writer, ov evalreport.Overview, s Styles) error {
	fmt.Fprintln(w, s.accent.Sprint("Overview Dashboard"))
	writeSourceLine(w, ov, s)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %-24s %-10s %s\n", "Overall Pass Rate", ov.OverallPassRate, s.pass.Sprint("Live"))
	fmt.Fprintf(w, "  %-24s %-10s %s\n", "Total Tokens Processed", formatCount(ov.TokensProcessed), s.accent.Sprint("Estimated"))
	fmt.Fprintf(w, "  %-24s %-10d %s\n", "Critical Failure Count", ov.FailureCount, s.fail.Sprint("Needs Review"))
	fmt.Fprintln(w)

	if err := WriteCategories(w, ov.Categories, s); err != nil {
		return err
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, s.heading.Sprint("Latest Edge Case Failures"))
	if len(ov.Preview) == 0 {
		fmt.Fprintln(w, s.muted.Sprint(AllClearMessage))
		return nil
	}
	for _, c := range ov.Preview {
		writeCase(w, c, "Actual (Failed)", "Expected Rule", s)
	}
	return nil
}

// WriteCategories writes the per-category pass-rate table.
func WriteCategories(w io.Writer, aggs []evalreport.CategoryAggregate, s Styles) error {
	fmt.Fprintln(w, s.heading.Sprint("Vulnerability Radar"))
	if len(aggs) == 0 {
		fmt.Fprintln(w, s.muted.Sprint(NoCategoriesMessage))
		return nil
	}
	return writeCategoryTable(w, aggs)
}

// WriteViews writes one line per analysis view.
func WriteViews(w io.Writer, views []evalreport.ViewSummary, s Styles) error {
	fmt.Fprintln(w, s.heading.Sprint("Analysis Views"))
	return writeViewTable(w, views)
}

// WriteFailureLog writes every failure with untruncated text.
func WriteFailureLog(w io.Writer, title string, failures []evalreport.TestCase, s Styles) {
	if strings.TrimSpace(title) == "" {
		title = "Failure Logs"
	}
	fmt.Fprintf(w, "%s %s\n", s.heading.Sprint(title), s.accent.Sprintf("(%d Issues)", len(failures)))
	if len(failures) == 0 {
		fmt.Fprintln(w, s.muted.Sprint(NoFailuresMessage))
		return
	}
	for _, c := range failures {
		writeCase(w, c, "Actual Output", "Expected Constraint", s)
	}
}

func writeSourceLine(w io.Writer, ov evalreport.Overview, s Styles) {
	if !ov.Available {
		line := NoDataMessage
		if ov.Reason != "" {
			line += " " + ov.Reason
		}
		fmt.Fprintln(w, s.fail.Sprint(line))
		return
	}
	parts := []string{"source=" + ov.Source}
	if m := ov.Metadata.ModelUsed; m != "" {
		parts = append(parts, "model="+m.String())
	}
	if ts := ov.Metadata.Timestamp; ts != "" {
		parts = append(parts, "run="+ts.String())
	}
	fmt.Fprintln(w, s.muted.Sprint(strings.Join(parts, " ")))
}

func writeCase(w io.Writer, c evalreport.TestCase, actualLabel, expectedLabel string, s Styles) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\n", s.fail.Sprintf("[%s]", c.Category), s.muted.Sprint(evalreport.DisplayCode(c.TestID)))
	if p := c.Prompt.String(); p != "" {
		fmt.Fprintf(w, "  %s\n", p)
	}
	fmt.Fprintf(w, "  %s %s\n", s.fail.Sprint(actualLabel+":"), c.ActualAnswer)
	fmt.Fprintf(w, "  %s %s\n", s.pass.Sprint(expectedLabel+":"), c.ExpectedAnswer)
}
