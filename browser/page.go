// CLAUDE:SUMMARY Stealth page wrapper: navigation, in-page style queries, full-page screenshots.
package browser

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/stealth"

	"github.com/hazyhaar/colorscan/palette"
)

//go:embed properties.js
var propertiesJS string

//go:embed stylesheets.js
var stylesheetsJS string

//go:embed elements.js
var elementsJS string

// Page wraps a Rod page and implements palette.Querier through in-page
// script evaluation. Each query's JS returns JSON.stringify output which
// is unmarshaled Go-side.
//
// Creation and navigation are separate steps so the diagnostic screenshot
// path still has a page handle after a failed navigation.
type Page struct {
	page       *rod.Page
	URL        string
	navTimeout time.Duration
	logger     *slog.Logger
}

// OpenPage creates a blank stealth page on the manager's browser.
func OpenPage(mgr *Manager, pageURL string) (*Page, error) {
	b := mgr.Browser()
	if b == nil {
		return nil, fmt.Errorf("browser: no active browser")
	}

	page, err := stealth.Page(b)
	if err != nil {
		return nil, fmt.Errorf("browser: create page: %w", err)
	}

	return &Page{
		page:       page,
		URL:        pageURL,
		navTimeout: mgr.cfg.NavTimeout,
		logger:     mgr.cfg.Logger,
	}, nil
}

// Navigate loads the page URL and waits for the load event, both bounded
// by the manager's NavTimeout. A load-wait timeout is tolerated with a
// warning: slow pages still get scanned with whatever has rendered.
func (p *Page) Navigate(ctx context.Context) error {
	navCtx, cancel := context.WithTimeout(ctx, p.navTimeout)
	defer cancel()

	if err := p.page.Context(navCtx).Navigate(p.URL); err != nil {
		return fmt.Errorf("browser: navigate %s: %w", p.URL, err)
	}

	if err := p.page.Context(navCtx).WaitLoad(); err != nil {
		p.logger.Warn("browser: wait load timeout", "url", p.URL, "error", err)
	}
	return nil
}

// CustomProperties enumerates the resolved custom properties of the root
// element, unfiltered.
func (p *Page) CustomProperties(ctx context.Context) (map[string]string, error) {
	res, err := p.page.Context(ctx).Eval(propertiesJS)
	if err != nil {
		return nil, fmt.Errorf("browser: custom properties: %w", err)
	}
	var props map[string]string
	if err := json.Unmarshal([]byte(res.Value.Str()), &props); err != nil {
		return nil, fmt.Errorf("browser: parse custom properties: %w", err)
	}
	return props, nil
}

// StyleSheets dumps every document stylesheet's rule text in document
// order. Sheets whose rules cannot be read (cross-origin) come back with
// their error string set and no rules.
func (p *Page) StyleSheets(ctx context.Context) ([]palette.StyleSheet, error) {
	res, err := p.page.Context(ctx).Eval(stylesheetsJS)
	if err != nil {
		return nil, fmt.Errorf("browser: stylesheets: %w", err)
	}
	var sheets []palette.StyleSheet
	if err := json.Unmarshal([]byte(res.Value.Str()), &sheets); err != nil {
		return nil, fmt.Errorf("browser: parse stylesheets: %w", err)
	}
	return sheets, nil
}

// ElementStyles samples computed colors for each selector. Selectors that
// throw in querySelectorAll are skipped in-page and contribute nothing.
func (p *Page) ElementStyles(ctx context.Context, selectors []string, limit, snippetLen int) ([]palette.ElementSample, error) {
	res, err := p.page.Context(ctx).Eval(elementsJS, selectors, limit, snippetLen)
	if err != nil {
		return nil, fmt.Errorf("browser: element styles: %w", err)
	}
	var samples []palette.ElementSample
	if err := json.Unmarshal([]byte(res.Value.Str()), &samples); err != nil {
		return nil, fmt.Errorf("browser: parse element styles: %w", err)
	}
	return samples, nil
}

// Screenshot captures the page to a PNG file. fullPage scrolls the whole
// document into the capture.
func (p *Page) Screenshot(ctx context.Context, path string, fullPage bool) error {
	data, err := p.page.Context(ctx).Screenshot(fullPage, nil)
	if err != nil {
		return fmt.Errorf("browser: screenshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("browser: write screenshot %s: %w", path, err)
	}
	return nil
}

// Close closes the tab.
func (p *Page) Close() error {
	if p.page != nil {
		return p.page.Close()
	}
	return nil
}
