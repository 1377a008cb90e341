// CLAUDE:SUMMARY Core palette extraction types: Result, ColorRule, ElementSample, StyleSheet.
// Package palette extracts color-related CSS from a rendered page: custom
// properties, stylesheet rule text, and computed styles of a fixed set of
// UI selectors. It depends only on the Querier contract, not on how the
// page is driven.
package palette

import "context"

// Result is the aggregate of one extraction run. It is built once, never
// mutated afterward, and serialized as a single JSON object.
type Result struct {
	// CSSVariables maps custom property names to their trimmed resolved
	// values. Order follows whatever the style enumeration yields; the map
	// carries no ordering guarantee.
	CSSVariables map[string]string `json:"css_variables"`

	// ColorRules lists the kept stylesheet rules in encounter order:
	// outer loop sheet order, inner loop rule order within each sheet.
	ColorRules []ColorRule `json:"color_rules"`

	// ElementColors lists computed color samples for the fixed selector
	// list, in selector order.
	ElementColors []ElementSample `json:"element_colors"`
}

// ColorRule is one kept stylesheet rule tagged with its owning sheet.
type ColorRule struct {
	// Source is the stylesheet href, or "inline" for sheets without one.
	Source string `json:"source"`
	Rule   string `json:"rule"`
}

// ElementSample records the resolved colors of one matched element.
type ElementSample struct {
	Selector        string `json:"selector"`
	TagName         string `json:"tagName"`
	ClassName       string `json:"className"`
	Color           string `json:"color"`
	BackgroundColor string `json:"backgroundColor"`
	BorderColor     string `json:"borderColor"`
	Text            string `json:"text"`
}

// StyleSheet is the raw rule dump of one document stylesheet, before
// keyword filtering. A sheet whose rules could not be read (cross-origin)
// has Err set and contributes no rules.
type StyleSheet struct {
	Href  string   `json:"href"`
	Rules []string `json:"rules,omitempty"`
	Err   string   `json:"error,omitempty"`
}

// Querier is the capability-scoped page query contract. A browser-backed
// implementation runs in-page script; a static implementation parses
// fetched HTML. Each operation fails independently: the scanner treats a
// failed read as an empty contribution where the contract allows it.
type Querier interface {
	// CustomProperties returns the resolved custom properties of the root
	// element, unfiltered, name -> trimmed value.
	CustomProperties(ctx context.Context) (map[string]string, error)

	// StyleSheets returns every accessible stylesheet with its rule text,
	// in document order. Unreadable sheets appear with Err set.
	StyleSheets(ctx context.Context) ([]StyleSheet, error)

	// ElementStyles returns at most limit samples per selector, in selector
	// order, with text snippets capped at snippetLen runes. A selector that
	// fails to parse contributes zero samples.
	ElementStyles(ctx context.Context, selectors []string, limit, snippetLen int) ([]ElementSample, error)
}
