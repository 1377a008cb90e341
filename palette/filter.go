// CLAUDE:SUMMARY Pure keyword filters for custom properties and stylesheet rules.
package palette

import "strings"

// VariableKeywords select which custom property names are kept. The match
// is a case-sensitive substring test on the property name.
var VariableKeywords = []string{"color", "theme", "hue"}

// RuleKeywords select which stylesheet rules are kept. The match is a
// substring test on the lowercased rule text.
var RuleKeywords = []string{"color", "background", "border", "rgb", "hsl", "hsv", "#", "var(--"}

// FilterVariables keeps the custom properties whose name contains one of
// the given keywords. Values are trimmed. Only names starting with "--"
// are considered.
func FilterVariables(props map[string]string, keywords []string) map[string]string {
	kept := make(map[string]string)
	for name, value := range props {
		if !strings.HasPrefix(name, "--") {
			continue
		}
		if containsAny(name, keywords) {
			kept[name] = strings.TrimSpace(value)
		}
	}
	return kept
}

// FilterRules keeps the rules whose lowercased text contains one of the
// given keywords, preserving encounter order across sheets. Each kept rule
// is tagged with its sheet href, or "inline" when the sheet has none.
// Sheets with a read error contribute nothing.
func FilterRules(sheets []StyleSheet, keywords []string) []ColorRule {
	var kept []ColorRule
	for _, sheet := range sheets {
		if sheet.Err != "" {
			continue
		}
		source := sheet.Href
		if source == "" {
			source = "inline"
		}
		for _, rule := range sheet.Rules {
			if containsAny(strings.ToLower(rule), keywords) {
				kept = append(kept, ColorRule{Source: source, Rule: rule})
			}
		}
	}
	return kept
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
