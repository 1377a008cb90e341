// CLAUDE:SUMMARY Manages the headless Chrome lifecycle for one scan: launch, connect, guaranteed teardown.
// Package browser manages the Chrome headless lifecycle for a single scan:
// launch (or connect to a remote instance) via Rod, open one stealth page,
// tear everything down on every exit path.
package browser

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// Config configures the browser manager.
type Config struct {
	// RemoteURL is the WebSocket URL of an external Chrome instance.
	// Empty = launch a local Chrome via launcher.
	RemoteURL string

	// Headless controls whether a locally launched Chrome runs headless.
	// Default: true.
	Headless *bool

	// NavTimeout bounds navigation plus load wait. Default: 30s.
	NavTimeout time.Duration

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.Headless == nil {
		headless := true
		c.Headless = &headless
	}
	if c.NavTimeout <= 0 {
		c.NavTimeout = 30 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Manager owns one Chrome instance for the duration of a scan.
type Manager struct {
	cfg     Config
	browser *rod.Browser
	lnch    *launcher.Launcher
}

// NewManager creates a browser Manager. Call Start to launch Chrome.
func NewManager(cfg Config) *Manager {
	cfg.defaults()
	return &Manager{cfg: cfg}
}

// Start launches Chrome (or connects to a remote instance) and returns
// the Rod browser handle.
func (m *Manager) Start(ctx context.Context) (*rod.Browser, error) {
	log := m.cfg.Logger

	var wsURL string
	if m.cfg.RemoteURL != "" {
		wsURL = m.cfg.RemoteURL
		log.Info("browser: connecting to remote", "url", wsURL)
	} else {
		l := launcher.New().Headless(*m.cfg.Headless)

		// Anti-detection flags.
		l = l.Set("disable-blink-features", "AutomationControlled")

		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("browser: launch: %w", err)
		}
		wsURL = u
		m.lnch = l
		log.Info("browser: launched local chrome", "url", wsURL)
	}

	b := rod.New().Context(ctx).ControlURL(wsURL)
	if err := b.Connect(); err != nil {
		m.cleanupLauncher()
		return nil, fmt.Errorf("browser: connect: %w", err)
	}

	m.browser = b
	return b, nil
}

// Browser returns the current Rod browser handle, nil before Start.
func (m *Manager) Browser() *rod.Browser {
	return m.browser
}

// Close shuts down Chrome. Safe to call more than once and on a Manager
// that never started.
func (m *Manager) Close() error {
	if m.browser != nil {
		if err := m.browser.Close(); err != nil {
			m.cfg.Logger.Warn("browser: close", "error", err)
		}
		m.browser = nil
	}
	m.cleanupLauncher()
	return nil
}

func (m *Manager) cleanupLauncher() {
	if m.lnch != nil {
		m.lnch.Cleanup()
		m.lnch = nil
	}
}
