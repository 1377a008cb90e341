// CLAUDE:SUMMARY Scanner orchestrates the three page queries and aggregates one Result.
package palette

import (
	"context"
	"fmt"
	"log/slog"
)

// DefaultSelectors is the fixed ordered list of UI selectors sampled for
// computed colors.
var DefaultSelectors = []string{
	"button",
	"a",
	".btn",
	`[class*="color"]`,
	`[class*="theme"]`,
	"body",
	"html",
}

const (
	// DefaultSampleLimit caps samples per selector.
	DefaultSampleLimit = 5
	// DefaultSnippetLen caps the recorded text snippet per element.
	DefaultSnippetLen = 50
)

// Config configures a Scanner.
type Config struct {
	// Selectors sampled for computed colors. Default: DefaultSelectors.
	Selectors []string

	// SampleLimit is the maximum number of samples per selector. Default: 5.
	SampleLimit int

	// SnippetLen is the maximum text snippet length in runes. Default: 50.
	SnippetLen int

	// VariableKeywords and RuleKeywords override the keyword sets.
	VariableKeywords []string
	RuleKeywords     []string

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if len(c.Selectors) == 0 {
		c.Selectors = DefaultSelectors
	}
	if c.SampleLimit <= 0 {
		c.SampleLimit = DefaultSampleLimit
	}
	if c.SnippetLen <= 0 {
		c.SnippetLen = DefaultSnippetLen
	}
	if len(c.VariableKeywords) == 0 {
		c.VariableKeywords = VariableKeywords
	}
	if len(c.RuleKeywords) == 0 {
		c.RuleKeywords = RuleKeywords
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Scanner runs the extraction pass. Strictly sequential: variables, then
// stylesheet rules, then element samples.
type Scanner struct {
	cfg Config
}

// NewScanner creates a Scanner.
func NewScanner(cfg Config) *Scanner {
	cfg.defaults()
	return &Scanner{cfg: cfg}
}

// Scan runs the three queries against q and aggregates the Result. A
// failure of any query aborts the scan: the caller gets no partial result.
// Per-item failures inside a query (unreadable sheet, invalid selector)
// are the Querier's to absorb and already surface as empty contributions.
func (s *Scanner) Scan(ctx context.Context, q Querier) (*Result, error) {
	log := s.cfg.Logger

	props, err := q.CustomProperties(ctx)
	if err != nil {
		return nil, fmt.Errorf("palette: custom properties: %w", err)
	}
	vars := FilterVariables(props, s.cfg.VariableKeywords)
	log.Info("palette: variables scanned", "total", len(props), "kept", len(vars))

	sheets, err := q.StyleSheets(ctx)
	if err != nil {
		return nil, fmt.Errorf("palette: stylesheets: %w", err)
	}
	for _, sheet := range sheets {
		if sheet.Err != "" {
			log.Debug("palette: unreadable stylesheet", "href", sheet.Href, "error", sheet.Err)
		}
	}
	rules := FilterRules(sheets, s.cfg.RuleKeywords)
	log.Info("palette: rules scanned", "sheets", len(sheets), "kept", len(rules))

	samples, err := q.ElementStyles(ctx, s.cfg.Selectors, s.cfg.SampleLimit, s.cfg.SnippetLen)
	if err != nil {
		return nil, fmt.Errorf("palette: element styles: %w", err)
	}
	samples = capSamples(samples, s.cfg.Selectors, s.cfg.SampleLimit)
	log.Info("palette: elements sampled", "samples", len(samples))

	return &Result{
		CSSVariables:  vars,
		ColorRules:    rules,
		ElementColors: samples,
	}, nil
}

// capSamples enforces the per-selector limit even when a Querier returns
// more, preserving selector order then encounter order.
func capSamples(samples []ElementSample, selectors []string, limit int) []ElementSample {
	counts := make(map[string]int, len(selectors))
	kept := make([]ElementSample, 0, len(samples))
	for _, s := range samples {
		if counts[s.Selector] >= limit {
			continue
		}
		counts[s.Selector]++
		kept = append(kept, s)
	}
	return kept
}
