package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

var (
	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
	// ErrInvalidConfig is returned for malformed or incomplete configuration.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// DefaultPath is the configuration file read when none is given.
const DefaultPath = "config.json"

// Defaults for optional keys.
const (
	DefaultTitle      = "Image Gallery"
	DefaultFooter     = "Gallery"
	DefaultFooterLink = "#"
	DefaultLanguage   = "zh-CN"
	DefaultTheme      = "themes/simple"
	DefaultFonts      = "assets/fonts"
)

// Gallery holds per-album overrides from the galleries map.
type Gallery struct {
	Cover       string `json:"cover" yaml:"cover"`
	Description string `json:"description" yaml:"description"`
}

// fileConfig mirrors the on-disk keys.
type fileConfig struct {
	Input      string             `json:"input" yaml:"input"`
	Output     string             `json:"output" yaml:"output"`
	Title      *string            `json:"title" yaml:"title"`
	Footer     *string            `json:"footer" yaml:"footer"`
	FooterLink *string            `json:"footer-link" yaml:"footer-link"`
	TitleFont  string             `json:"title-font" yaml:"title-font"`
	FooterFont string             `json:"footer-font" yaml:"footer-font"`
	GlobalFont string             `json:"global-font" yaml:"global-font"`
	StartYear  *int               `json:"start-year" yaml:"start-year"`
	StartDate  StartDate          `json:"start-date" yaml:"start-date"`
	Galleries  map[string]Gallery `json:"galleries" yaml:"galleries"`
	Language   string             `json:"language" yaml:"language"`
	Theme      string             `json:"theme" yaml:"theme"`
	Fonts      string             `json:"fonts" yaml:"fonts"`
}

// StartDate accepts either a string ("2020-03-01") or a bare number (2020).
// Numbers keep their literal text.
type StartDate string

// UnmarshalJSON implements json.Unmarshaler.
func (d *StartDate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = StartDate(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("start-date must be a string or a number: %w", err)
	}
	*d = StartDate(n.String())
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *StartDate) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("start-date must be a scalar, line %d", node.Line)
	}
	if node.Tag == "!!null" {
		*d = ""
		return nil
	}
	*d = StartDate(node.Value)
	return nil
}

// Settings is the validated, read-only build configuration.
type Settings struct {
	// Path is the file the settings were loaded from.
	Path string

	Input      string
	Output     string
	Title      string
	Footer     string
	FooterLink string
	TitleFont  string
	FooterFont string
	GlobalFont string
	StartDate  string
	Language   string
	Theme      string
	Fonts      string

	startYear    int
	hasStartYear bool
	galleries    map[string]Gallery
}

// StartYear returns the configured start year, if any.
func (s *Settings) StartYear() (int, bool) {
	return s.startYear, s.hasStartYear
}

// Cover returns the configured cover for an album folder, or "".
func (s *Settings) Cover(album string) string {
	return s.galleries[album].Cover
}

// Description returns the Markdown description for an album folder, or "".
func (s *Settings) Description(album string) string {
	return s.galleries[album].Description
}

// LoadEnv loads .env files into the process environment without overriding
// variables that are already set. Missing files are not an error.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads the configuration file at path. Files ending in .yaml or .yml
// are parsed as YAML, everything else as JSON.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	settings, err := Parse(data, formatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	settings.Path = path
	return settings, nil
}

// Format is the configuration file syntax.
type Format int

const (
	// FormatJSON is the default config.json syntax.
	FormatJSON Format = iota
	// FormatYAML uses the same keys in YAML syntax.
	FormatYAML
)

func formatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes and validates configuration data.
func Parse(data []byte, format Format) (*Settings, error) {
	var raw fileConfig
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if raw.Input == "" {
		return nil, fmt.Errorf("%w: missing required key \"input\"", ErrInvalidConfig)
	}
	if raw.Output == "" {
		return nil, fmt.Errorf("%w: missing required key \"output\"", ErrInvalidConfig)
	}

	lang := DefaultLanguage
	if raw.Language != "" {
		tag, err := language.Parse(raw.Language)
		if err != nil {
			return nil, fmt.Errorf("%w: language %q: %v", ErrInvalidConfig, raw.Language, err)
		}
		lang = tag.String()
	}

	s := &Settings{
		Input:      raw.Input,
		Output:     raw.Output,
		Title:      stringOr(raw.Title, DefaultTitle),
		Footer:     stringOr(raw.Footer, DefaultFooter),
		FooterLink: stringOr(raw.FooterLink, DefaultFooterLink),
		TitleFont:  raw.TitleFont,
		FooterFont: raw.FooterFont,
		GlobalFont: raw.GlobalFont,
		StartDate:  string(raw.StartDate),
		Language:   lang,
		Theme:      nonEmptyOr(raw.Theme, DefaultTheme),
		Fonts:      nonEmptyOr(raw.Fonts, DefaultFonts),
		galleries:  make(map[string]Gallery, len(raw.Galleries)),
	}
	if raw.StartYear != nil {
		s.startYear, s.hasStartYear = *raw.StartYear, true
	}
	for name, g := range raw.Galleries {
		s.galleries[name] = g
	}
	return s, nil
}

// stringOr returns the default only when the key is absent, so an explicit
// empty title stays empty.
func stringOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}

func nonEmptyOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
