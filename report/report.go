// CLAUDE:SUMMARY Human-readable console summary of an extraction result.
// Package report prints the human-readable run summary: counts, the full
// variable listing, and the first color rules.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/hazyhaar/colorscan/palette"
)

// RulePreviewLimit is how many color rules the summary prints before
// truncating with an "... and N more" line.
const RulePreviewLimit = 10

// PrintSummary writes the run summary. Variables are listed sorted by name
// so the output is stable; the JSON artifact itself keeps no ordering
// guarantee for the variable map.
func PrintSummary(w io.Writer, res *palette.Result) {
	fmt.Fprintf(w, "\nExtraction complete!\n")
	fmt.Fprintf(w, "Found %d CSS variables\n", len(res.CSSVariables))
	fmt.Fprintf(w, "Found %d color-related CSS rules\n", len(res.ColorRules))
	fmt.Fprintf(w, "Found %d element color samples\n", len(res.ElementColors))

	if len(res.CSSVariables) > 0 {
		fmt.Fprintf(w, "\nCSS Variables:\n")
		names := make([]string, 0, len(res.CSSVariables))
		for name := range res.CSSVariables {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "  %s: %s\n", name, res.CSSVariables[name])
		}
	}

	fmt.Fprintf(w, "\nKey Color Rules:\n")
	for i, rule := range res.ColorRules {
		if i >= RulePreviewLimit {
			break
		}
		fmt.Fprintf(w, "  %s\n", rule.Rule)
	}
	if n := len(res.ColorRules) - RulePreviewLimit; n > 0 {
		fmt.Fprintf(w, "  ... and %d more rules\n", n)
	}
}
