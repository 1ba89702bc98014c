// internal/render/table.go
// Package render turns report overviews into text, markdown, HTML and data exports.
package render

import (
	"fmt"
	"io"

	"github.com/mwiater/evalboard/internal/evalreport"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numberPrinter = message.NewPrinter(language.English)

// formatCount renders n with thousands separators.
func formatCount(n int) string {
	return numberPrinter.Sprintf("%d", n)
}

// newTable creates a markdown-styled table so the same output reads well in a
// terminal and pasted into a document.
func newTable(headers []string, w io.Writer) *tablewriter.Table {
	cfg := tablewriter.Config{
		Header: tw.CellConfig{
			Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
		MaxWidth: 120,
		Behavior: tw.Behavior{TrimSpace: tw.Off},
	}
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(cfg),
		tablewriter.WithHeader(headers),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{
				Left:   tw.On,
				Top:    tw.Off,
				Right:  tw.On,
				Bottom: tw.Off,
			},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)
}

// writeCategoryTable renders one row per category aggregate.
func writeCategoryTable(w io.Writer, aggs []evalreport.CategoryAggregate) error {
	table := newTable([]string{"Category", "Total Tests", "Passed", "Pass Rate"}, w)
	for _, agg := range aggs {
		row := []string{
			agg.Subject,
			fmt.Sprintf("%d", agg.Total),
			fmt.Sprintf("%d", agg.Passed),
			fmt.Sprintf("%d%%", agg.Score),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

// writeViewTable renders one row per analysis view.
func writeViewTable(w io.Writer, views []evalreport.ViewSummary) error {
	table := newTable([]string{"View", "Cases", "Failures", "Pass Rate"}, w)
	for _, v := range views {
		row := []string{
			v.Title,
			fmt.Sprintf("%d", v.Total),
			fmt.Sprintf("%d", len(v.Failures)),
			fmt.Sprintf("%d%%", v.PassRate),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}
