// CLAUDE:SUMMARY Defines colorscan config structs and parses YAML configuration files with defaults.
// Package config handles colorscan configuration from a YAML file, with
// defaults covering the no-arguments run.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/colorscan/palette"
)

// Config is the top-level colorscan configuration.
type Config struct {
	// TargetURL is the page to scan.
	TargetURL string `yaml:"target_url"`

	Output  OutputConfig  `yaml:"output"`
	Browser BrowserConfig `yaml:"browser"`

	// Selectors sampled for computed colors, in order.
	Selectors []string `yaml:"selectors"`

	// SampleLimit caps samples per selector.
	SampleLimit int `yaml:"sample_limit"`

	// SnippetLen caps the recorded text snippet per element.
	SnippetLen int `yaml:"snippet_len"`

	// HistoryDB is the SQLite scan history path.
	HistoryDB string `yaml:"history_db"`
}

// OutputConfig names the artifact paths.
type OutputConfig struct {
	JSON            string `yaml:"json"`
	Screenshot      string `yaml:"screenshot"`
	ErrorScreenshot string `yaml:"error_screenshot"`
}

// BrowserConfig controls Chrome lifecycle.
type BrowserConfig struct {
	// Remote is the WebSocket URL of an external Chrome. Empty = launch.
	Remote string `yaml:"remote"`

	// Headless controls a locally launched Chrome. Default: true.
	Headless *bool `yaml:"headless"`

	// NavTimeout bounds navigation plus load wait.
	NavTimeout Duration `yaml:"nav_timeout"`
}

// Duration wraps time.Duration so YAML can carry "30s"-style strings.
type Duration time.Duration

// UnmarshalYAML accepts a Go duration string.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("config: bad duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default returns the configuration of a no-arguments run.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadFile reads a YAML configuration file and applies defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.TargetURL == "" {
		c.TargetURL = "https://animate-ui.com/"
	}
	if c.Output.JSON == "" {
		c.Output.JSON = "animate_ui_colors.json"
	}
	if c.Output.Screenshot == "" {
		c.Output.Screenshot = "animate_ui_screenshot.png"
	}
	if c.Output.ErrorScreenshot == "" {
		c.Output.ErrorScreenshot = "animate_ui_error.png"
	}
	if len(c.Selectors) == 0 {
		c.Selectors = palette.DefaultSelectors
	}
	if c.SampleLimit <= 0 {
		c.SampleLimit = palette.DefaultSampleLimit
	}
	if c.SnippetLen <= 0 {
		c.SnippetLen = palette.DefaultSnippetLen
	}
	if c.Browser.Headless == nil {
		headless := true
		c.Browser.Headless = &headless
	}
	if c.Browser.NavTimeout <= 0 {
		c.Browser.NavTimeout = Duration(30 * time.Second)
	}
	if c.HistoryDB == "" {
		c.HistoryDB = "colorscan_history.db"
	}
}
