// CLAUDE:SUMMARY CLI entry point for colorscan — one-shot page color extraction plus a history serve mode.
// Command colorscan extracts color-related CSS from a page with headless
// Chrome and writes a JSON palette, a full-page screenshot, and a scan
// history row.
//
// Usage:
//
//	colorscan                               # scan the default target
//	colorscan -url https://example.com      # scan a specific page
//	colorscan -config colorscan.yaml        # scan per YAML config
//	colorscan -http-only                    # no browser: static HTML scan
//	colorscan -serve -addr :8086            # serve recorded scans over HTTP
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hazyhaar/colorscan/browser"
	"github.com/hazyhaar/colorscan/config"
	"github.com/hazyhaar/colorscan/history"
	"github.com/hazyhaar/colorscan/palette"
	"github.com/hazyhaar/colorscan/report"
)

func main() {
	configPath := flag.String("config", "", "path to colorscan.yaml config file")
	targetURL := flag.String("url", "", "target page URL (overrides config)")
	outPath := flag.String("out", "", "JSON output path (overrides config)")
	shotPath := flag.String("screenshot", "", "screenshot output path (overrides config)")
	errShotPath := flag.String("error-screenshot", "", "error screenshot path (overrides config)")
	historyDB := flag.String("history-db", "", "scan history SQLite path (overrides config)")
	httpOnly := flag.Bool("http-only", false, "skip the browser: fetch HTML and scan statically")
	serve := flag.Bool("serve", false, "serve recorded scans over HTTP instead of scanning")
	addr := flag.String("addr", ":8086", "listen address for -serve")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("colorscan: config", "error", err)
		os.Exit(1)
	}
	overrideString(&cfg.TargetURL, *targetURL)
	overrideString(&cfg.Output.JSON, *outPath)
	overrideString(&cfg.Output.Screenshot, *shotPath)
	overrideString(&cfg.Output.ErrorScreenshot, *errShotPath)
	overrideString(&cfg.HistoryDB, *historyDB)

	if *serve {
		if err := runServe(ctx, logger, cfg, *addr); err != nil {
			logger.Error("colorscan: serve", "error", err)
			os.Exit(1)
		}
		return
	}

	// Scan failures are logged and recorded, never propagated as a crash:
	// the process exits normally after cleanup on both paths.
	runScan(ctx, logger, cfg, *httpOnly)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadFile(path)
}

func overrideString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// runScan performs one extraction pass and records it in the history.
func runScan(ctx context.Context, logger *slog.Logger, cfg *config.Config, httpOnly bool) {
	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		logger.Warn("colorscan: history unavailable", "path", cfg.HistoryDB, "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	started := time.Now()
	res, scanErr := doScan(ctx, logger, cfg, httpOnly)
	finished := time.Now()

	row := &history.Scan{
		URL:        cfg.TargetURL,
		StartedAt:  started,
		FinishedAt: finished,
	}
	if scanErr != nil {
		row.Status = history.StatusError
		row.Error = scanErr.Error()
		logger.Error("colorscan: scan failed", "url", cfg.TargetURL, "error", scanErr)
	} else {
		row.Status = history.StatusOK
		row.VarCount = len(res.CSSVariables)
		row.RuleCount = len(res.ColorRules)
		row.SampleCount = len(res.ElementColors)
		if data, err := json.Marshal(res); err == nil {
			row.ResultJSON = string(data)
		}
		report.PrintSummary(os.Stdout, res)
	}

	if store != nil {
		if err := store.Record(ctx, row); err != nil {
			logger.Warn("colorscan: record history", "error", err)
		}
	}
}

// doScan navigates, extracts, persists the JSON artifact, and captures the
// screenshot. On failure nothing is written except a best-effort error
// screenshot (browser path only).
func doScan(ctx context.Context, logger *slog.Logger, cfg *config.Config, httpOnly bool) (*palette.Result, error) {
	scanner := palette.NewScanner(palette.Config{
		Selectors:   cfg.Selectors,
		SampleLimit: cfg.SampleLimit,
		SnippetLen:  cfg.SnippetLen,
		Logger:      logger,
	})

	if httpOnly {
		return scanStatic(ctx, logger, cfg, scanner)
	}

	mgr := browser.NewManager(browser.Config{
		RemoteURL:  cfg.Browser.Remote,
		Headless:   cfg.Browser.Headless,
		NavTimeout: cfg.Browser.NavTimeout.Std(),
		Logger:     logger,
	})
	if _, err := mgr.Start(ctx); err != nil {
		return nil, err
	}
	defer mgr.Close()

	page, err := browser.OpenPage(mgr, cfg.TargetURL)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	logger.Info("colorscan: navigating", "url", cfg.TargetURL)
	if err := page.Navigate(ctx); err != nil {
		captureErrorShot(ctx, logger, page, cfg.Output.ErrorScreenshot)
		return nil, err
	}

	logger.Info("colorscan: extracting")
	res, err := scanner.Scan(ctx, page)
	if err != nil {
		captureErrorShot(ctx, logger, page, cfg.Output.ErrorScreenshot)
		return nil, err
	}

	if err := palette.WriteJSON(cfg.Output.JSON, res); err != nil {
		captureErrorShot(ctx, logger, page, cfg.Output.ErrorScreenshot)
		return nil, err
	}
	logger.Info("colorscan: palette written", "path", cfg.Output.JSON)

	if err := page.Screenshot(ctx, cfg.Output.Screenshot, true); err != nil {
		logger.Warn("colorscan: screenshot", "error", err)
	} else {
		logger.Info("colorscan: screenshot saved", "path", cfg.Output.Screenshot)
	}

	return res, nil
}

// scanStatic fetches the page over plain HTTP and scans the markup without
// a browser. No screenshot is possible on this path.
func scanStatic(ctx context.Context, logger *slog.Logger, cfg *config.Config, scanner *palette.Scanner) (*palette.Result, error) {
	logger.Info("colorscan: fetching (http-only)", "url", cfg.TargetURL)
	body, err := fetchHTML(ctx, cfg.TargetURL, cfg.Browser.NavTimeout.Std())
	if err != nil {
		return nil, err
	}

	q, err := palette.NewStaticQuerier(body)
	if err != nil {
		return nil, fmt.Errorf("colorscan: parse html: %w", err)
	}

	res, err := scanner.Scan(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := palette.WriteJSON(cfg.Output.JSON, res); err != nil {
		return nil, err
	}
	logger.Info("colorscan: palette written", "path", cfg.Output.JSON)
	return res, nil
}

func fetchHTML(ctx context.Context, pageURL string, timeout time.Duration) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("colorscan: build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("colorscan: fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("colorscan: fetch %s: status %d", pageURL, resp.StatusCode)
	}

	const maxBody = 16 << 20
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", fmt.Errorf("colorscan: read body: %w", err)
	}
	return string(body), nil
}

// captureErrorShot attempts a diagnostic screenshot after a failure. Any
// secondary failure is swallowed.
func captureErrorShot(ctx context.Context, logger *slog.Logger, page *browser.Page, path string) {
	if err := page.Screenshot(ctx, path, false); err != nil {
		logger.Debug("colorscan: error screenshot failed", "error", err)
		return
	}
	logger.Info("colorscan: error screenshot saved", "path", path)
}
