package app

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"adventctl/internal/remote"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const DefaultConfigFile = "adventctl.yaml"

// Config controls how puzzles are fetched, cached, solved and submitted.
type Config struct {
	Token             string   `yaml:"token" env:"AOC_TOKEN"`
	Year              int      `yaml:"year" env:"YEAR"`
	MaxDays           int      `yaml:"max_days" env:"MAX_DAYS"`
	BaseURL           string   `yaml:"base_url" env:"AOC_BASE_URL"`
	Root              string   `yaml:"root" env:"AOC_ROOT"`
	SolutionsDir      string   `yaml:"solutions_dir" env:"AOC_SOLUTIONS_DIR"`
	DataDir           string   `yaml:"data_dir" env:"AOC_DATA_DIR"`
	LogLevel          string   `yaml:"log_level" env:"AOC_LOG_LEVEL"`
	LogPath           string   `yaml:"log_path" env:"AOC_LOG_PATH"`
	Submit            bool     `yaml:"submit" env:"AOC_SUBMIT"`
	RequestsPerSecond float64  `yaml:"requests_per_second" env:"AOC_REQUESTS_PER_SECOND"`
	UI                UIConfig `yaml:"ui"`
}

type UIConfig struct {
	StyleVariant  string `yaml:"style_variant" env:"AOC_STYLE"`
	MarkdownStyle string `yaml:"markdown_style" env:"AOC_MARKDOWN_STYLE"`
	WordWrap      int    `yaml:"word_wrap" env:"AOC_WORD_WRAP"`
}

// legacyEnv holds the bare variable names older setups used.
type legacyEnv struct {
	Token string `env:"TOKEN"`
}

func DefaultConfig() Config {
	return Config{
		Year:              latestEventYear(time.Now()),
		MaxDays:           25,
		BaseURL:           remote.DefaultBaseURL,
		Root:              ".",
		SolutionsDir:      filepath.Join("internal", "solutions"),
		LogLevel:          "info",
		Submit:            true,
		RequestsPerSecond: 1,
		UI: UIConfig{
			StyleVariant:  "modern_arcade",
			MarkdownStyle: "dark",
			WordWrap:      78,
		},
	}
}

// LoadConfig layers defaults, the YAML file and the environment, in that
// order. An empty path reads DefaultConfigFile when it exists.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	optional := path == ""
	if optional {
		path = DefaultConfigFile
	}
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case optional && errors.Is(err, fs.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.Token == "" {
		var legacy legacyEnv
		if err := env.Parse(&legacy); err != nil {
			return Config{}, fmt.Errorf("parse environment: %w", err)
		}
		cfg.Token = legacy.Token
	}
	cfg.Token = strings.TrimSpace(cfg.Token)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Year < 2015 {
		return fmt.Errorf("invalid year %d: events start in 2015", c.Year)
	}
	if c.MaxDays == 0 {
		c.MaxDays = 25
	}
	if c.MaxDays < 1 || c.MaxDays > 25 {
		return fmt.Errorf("invalid max days %d", c.MaxDays)
	}

	if c.BaseURL == "" {
		c.BaseURL = remote.DefaultBaseURL
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base url %q", c.BaseURL)
	}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = 1
	}

	switch c.UI.StyleVariant {
	case "", "modern_arcade", "cozy_clean", "plain":
	default:
		return fmt.Errorf("invalid ui style variant %q", c.UI.StyleVariant)
	}
	if c.UI.StyleVariant == "" {
		c.UI.StyleVariant = "modern_arcade"
	}
	switch c.UI.MarkdownStyle {
	case "", "dark", "light", "notty", "ascii", "dracula", "pink", "tokyo-night":
	default:
		return fmt.Errorf("invalid ui markdown style %q", c.UI.MarkdownStyle)
	}
	if c.UI.MarkdownStyle == "" {
		c.UI.MarkdownStyle = "dark"
	}
	if c.UI.WordWrap <= 0 {
		c.UI.WordWrap = 78
	}

	if c.Root == "" {
		c.Root = "."
	}
	if c.SolutionsDir == "" {
		c.SolutionsDir = filepath.Join("internal", "solutions")
	}
	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.New("cannot resolve user home directory")
		}
		c.DataDir = filepath.Join(home, ".local", "share", "adventctl")
	}

	return nil
}

// latestEventYear is the most recent December that has started.
func latestEventYear(now time.Time) int {
	if now.Month() == time.December {
		return now.Year()
	}
	return now.Year() - 1
}
