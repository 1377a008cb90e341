// CLAUDE:SUMMARY Static Querier over fetched HTML: inline <style> rules, :root variables, declared element colors.
package palette

import (
	"context"
	"strings"

	"golang.org/x/net/html"
)

// StaticQuerier implements Querier over a parsed HTML document, without a
// browser. It sees only what the markup declares: inline <style> sheets,
// custom properties on :root/html rules, and per-element style attributes.
// External stylesheets are reported unreadable, mirroring how a browser
// querier reports cross-origin sheets. Computed styles are out of reach
// here, so element samples carry declared values only.
type StaticQuerier struct {
	doc *html.Node
}

// NewStaticQuerier parses the HTML body.
func NewStaticQuerier(body string) (*StaticQuerier, error) {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	return &StaticQuerier{doc: doc}, nil
}

// CustomProperties collects --name declarations from :root and html rules
// in inline <style> sheets, last declaration wins.
func (q *StaticQuerier) CustomProperties(_ context.Context) (map[string]string, error) {
	props := make(map[string]string)
	for _, sheet := range q.inlineSheets() {
		for _, rule := range sheet.Rules {
			sel, body, ok := splitRule(rule)
			if !ok {
				continue
			}
			sel = strings.TrimSpace(sel)
			if sel != ":root" && sel != "html" {
				continue
			}
			for name, value := range parseDeclarations(body) {
				if strings.HasPrefix(name, "--") {
					props[name] = value
				}
			}
		}
	}
	return props, nil
}

// StyleSheets returns inline <style> sheets with their rule text, and
// <link rel="stylesheet"> references as unreadable entries, in document
// order.
func (q *StaticQuerier) StyleSheets(_ context.Context) ([]StyleSheet, error) {
	var sheets []StyleSheet
	walk(q.doc, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		switch n.Data {
		case "style":
			sheets = append(sheets, StyleSheet{Rules: splitRules(collectText(n))})
		case "link":
			if strings.EqualFold(getAttr(n, "rel"), "stylesheet") {
				sheets = append(sheets, StyleSheet{
					Href: getAttr(n, "href"),
					Err:  "external stylesheet not fetched",
				})
			}
		}
	})
	return sheets, nil
}

// inlineSheets returns only the readable <style> sheets.
func (q *StaticQuerier) inlineSheets() []StyleSheet {
	var sheets []StyleSheet
	walk(q.doc, func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "style" {
			sheets = append(sheets, StyleSheet{Rules: splitRules(collectText(n))})
		}
	})
	return sheets
}

// ElementStyles samples matching elements per selector, reading declared
// colors from style attributes. Unsupported or malformed selectors
// contribute zero samples.
func (q *StaticQuerier) ElementStyles(_ context.Context, selectors []string, limit, snippetLen int) ([]ElementSample, error) {
	var samples []ElementSample
	for _, sel := range selectors {
		m, ok := parseSelector(sel)
		if !ok {
			continue
		}
		matched := 0
		walk(q.doc, func(n *html.Node) {
			if matched >= limit || !m.matches(n) {
				return
			}
			matched++
			decls := parseDeclarations(getAttr(n, "style"))
			samples = append(samples, ElementSample{
				Selector:        sel,
				TagName:         strings.ToUpper(n.Data),
				ClassName:       getAttr(n, "class"),
				Color:           decls["color"],
				BackgroundColor: decls["background-color"],
				BorderColor:     decls["border-color"],
				Text:            snippet(collectText(n), snippetLen),
			})
		})
	}
	return samples, nil
}

// --- selector matching (tag, .class, [attr*="val"] subset) ---

type selectorMatcher struct {
	tag     string
	class   string
	attrKey string
	attrSub string // substring operand for [attr*="val"]
}

// parseSelector handles the subset the fixed selector list needs: a bare
// tag, a .class, and [attr*="val"]. Anything else is unsupported and the
// selector is skipped.
func parseSelector(sel string) (selectorMatcher, bool) {
	var m selectorMatcher
	sel = strings.TrimSpace(sel)
	if sel == "" {
		return m, false
	}

	if strings.HasPrefix(sel, "[") && strings.HasSuffix(sel, "]") {
		inner := sel[1 : len(sel)-1]
		op := strings.Index(inner, "*=")
		if op < 0 {
			return m, false
		}
		m.attrKey = strings.TrimSpace(inner[:op])
		m.attrSub = strings.Trim(strings.TrimSpace(inner[op+2:]), `"'`)
		if m.attrKey == "" || m.attrSub == "" {
			return m, false
		}
		return m, true
	}

	if strings.HasPrefix(sel, ".") {
		m.class = sel[1:]
		return m, m.class != "" && !strings.ContainsAny(m.class, " .#[")
	}

	if strings.ContainsAny(sel, " .#[]()>+~:") {
		return m, false
	}
	m.tag = sel
	return m, true
}

func (m selectorMatcher) matches(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if m.tag != "" {
		return n.Data == m.tag
	}
	if m.class != "" {
		for _, c := range strings.Fields(getAttr(n, "class")) {
			if c == m.class {
				return true
			}
		}
		return false
	}
	if m.attrKey != "" {
		return strings.Contains(getAttr(n, m.attrKey), m.attrSub)
	}
	return false
}

// --- rudimentary rule text handling ---
//
// This is deliberately not a CSS parser. Rules are split on top-level
// closing braces and declarations on semicolons; that is enough to
// reproduce the rule text and read flat declaration blocks, and nothing
// more is promised.

func splitRules(css string) []string {
	var rules []string
	depth := 0
	start := 0
	for i := 0; i < len(css); i++ {
		switch css[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				rule := strings.TrimSpace(css[start : i+1])
				if rule != "" {
					rules = append(rules, rule)
				}
				start = i + 1
			}
		}
	}
	return rules
}

// splitRule separates "selector { body }" into its parts.
func splitRule(rule string) (sel, body string, ok bool) {
	open := strings.IndexByte(rule, '{')
	end := strings.LastIndexByte(rule, '}')
	if open < 0 || end < open {
		return "", "", false
	}
	return rule[:open], rule[open+1 : end], true
}

// parseDeclarations reads "prop: value; ..." into a map, trimming both
// sides. Nested blocks are not handled.
func parseDeclarations(body string) map[string]string {
	decls := make(map[string]string)
	for _, part := range strings.Split(body, ";") {
		colon := strings.IndexByte(part, ':')
		if colon < 0 {
			continue
		}
		name := strings.TrimSpace(part[:colon])
		value := strings.TrimSpace(part[colon+1:])
		if name != "" && value != "" {
			decls[name] = value
		}
	}
	return decls
}

// --- DOM helpers ---

func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func collectText(n *html.Node) string {
	var sb strings.Builder
	var rec func(*html.Node)
	rec = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			rec(c)
		}
	}
	rec(n)
	return sb.String()
}

func snippet(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
