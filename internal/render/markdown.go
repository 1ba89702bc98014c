package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mwiater/evalboard/internal/evalreport"
)

// Markdown renders the overview as a shareable markdown report with a category
// performance table, per-view summaries and the full failure logs.
func Markdown(ov evalreport.Overview) (string, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "# Evaluation Stress Test Report")
	fmt.Fprintln(&buf)
	if ts := ov.Metadata.Timestamp; ts != "" {
		fmt.Fprintf(&buf, "**Date:** %s\n", ts)
	}
	if m := ov.Metadata.ModelUsed; m != "" {
		fmt.Fprintf(&buf, "**Model Tested:** %s\n", m)
	}
	fmt.Fprintf(&buf, "**Source:** `%s`\n", ov.Source)
	if ov.Available {
		fmt.Fprintln(&buf, "**Status:** COMPLETE")
	} else {
		fmt.Fprintln(&buf, "**Status:** NO DATA")
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "> [!WARNING]\n> %s %s\n", NoDataMessage, ov.Reason)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "## Executive Summary")
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "- **Overall Pass Rate:** %s\n", ov.OverallPassRate)
	fmt.Fprintf(&buf, "- **Total Test Cases:** %d\n", ov.TotalCases)
	fmt.Fprintf(&buf, "- **Critical Failure Count:** %d\n", ov.FailureCount)
	fmt.Fprintf(&buf, "- **Total Tokens Processed (estimated):** %s\n", formatCount(ov.TokensProcessed))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "## Category Performance")
	fmt.Fprintln(&buf)
	if len(ov.Categories) == 0 {
		fmt.Fprintln(&buf, NoCategoriesMessage)
	} else if err := writeCategoryTable(&buf, ov.Categories); err != nil {
		return "", err
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "## Analysis Views")
	fmt.Fprintln(&buf)
	if err := writeViewTable(&buf, ov.Views); err != nil {
		return "", err
	}
	fmt.Fprintln(&buf)
	for _, v := range ov.Views {
		fmt.Fprintf(&buf, "### %s\n\n", v.Title)
		if len(v.Failures) == 0 {
			fmt.Fprintf(&buf, "%s\n\n", NoFailuresMessage)
			continue
		}
		ids := make([]string, 0, len(v.Failures))
		for _, c := range v.Failures {
			ids = append(ids, "`"+c.TestID+"`")
		}
		fmt.Fprintf(&buf, "Failing cases: %s\n\n", strings.Join(ids, ", "))
	}

	fmt.Fprintln(&buf, "## Detailed Failure Logs")
	fmt.Fprintln(&buf)
	if len(ov.Failures) == 0 {
		fmt.Fprintln(&buf, AllClearMessage)
		return buf.String(), nil
	}
	for _, group := range groupByCategory(ov.Failures) {
		fmt.Fprintf(&buf, "### %s Failures\n\n", group.category)
		for _, c := range group.cases {
			writeMarkdownCase(&buf, c)
		}
	}
	return buf.String(), nil
}

type categoryGroup struct {
	category string
	cases    []evalreport.TestCase
}

// groupByCategory buckets cases by exact category in first-seen order. Cases
// without a category share the label used by the category table.
func groupByCategory(cases []evalreport.TestCase) []categoryGroup {
	var groups []categoryGroup
	index := make(map[string]int)
	for _, c := range cases {
		category := c.Category
		if category == "" {
			category = evalreport.UnknownCategory
		}
		i, ok := index[category]
		if !ok {
			i = len(groups)
			index[category] = i
			groups = append(groups, categoryGroup{category: category})
		}
		groups[i].cases = append(groups[i].cases, c)
	}
	return groups
}

func writeMarkdownCase(buf *bytes.Buffer, c evalreport.TestCase) {
	fmt.Fprintf(buf, "- **ID:** `%s` (%s)\n", c.TestID, c.Category)
	if p := c.Prompt.String(); p != "" {
		fmt.Fprintf(buf, "  - **Prompt:** %q\n", p)
	}
	fmt.Fprintf(buf, "  - **Actual Output:** %s\n", inlineText(c.ActualAnswer.String()))
	fmt.Fprintf(buf, "  - **Expected Constraint:** %s\n\n", inlineText(c.ExpectedAnswer.String()))
}

// inlineText keeps multi-line answers inside their list item.
func inlineText(s string) string {
	if !strings.Contains(s, "\n") {
		return s
	}
	return "\n\n    ```\n    " + strings.ReplaceAll(s, "\n", "\n    ") + "\n    ```"
}
