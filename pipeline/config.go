package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/exp/maps"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const (
	// LanguagePlaceholder is replaced with the locale in Config.Output
	LanguagePlaceholder = "{{language}}"
	// NamespacePlaceholder is replaced with the namespace in Config.Output
	NamespacePlaceholder = "{{namespace}}"
)

var (
	// ErrConfigNotFound reports a missing config file
	ErrConfigNotFound = errors.New("config not found")
	// ErrInvalidConfig reports a config that failed validation
	ErrInvalidConfig = errors.New("invalid config")
)

// Config represents pipeline settings
type Config struct {
	// ProjectRoot is the folder sources are scanned from; detected from the config location when empty
	ProjectRoot string `yaml:"projectRoot,omitempty" toml:"projectRoot"`
	// Input lists include patterns relative to ProjectRoot
	Input []string `yaml:"input,omitempty" toml:"input"`
	// Ignore lists exclude patterns relative to ProjectRoot
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore"`
	// Locales lists the languages extraction output is written for; the first one receives default values
	Locales []string `yaml:"locales,omitempty" toml:"locales"`
	// Output is the extraction output location template
	Output       string `yaml:"output,omitempty" toml:"output"`
	Namespace    string `yaml:"namespace,omitempty" toml:"namespace"`
	KeySeparator string `yaml:"keySeparator,omitempty" toml:"keySeparator"`
	// FlatKeys writes extraction output without nesting keys by KeySeparator
	FlatKeys              bool              `yaml:"flatKeys,omitempty" toml:"flatKeys"`
	OutputMatrixFile      string            `yaml:"outputMatrixFile,omitempty" toml:"outputMatrixFile"`
	LocaleFilesByLanguage map[string]string `yaml:"localeFilesByLanguage,omitempty" toml:"localeFilesByLanguage"`
	// DisableDynamic skips the symbolic resolution of dynamic keys
	DisableDynamic bool          `yaml:"disableDynamic,omitempty" toml:"disableDynamic"`
	Workers        int           `yaml:"workers,omitempty" toml:"workers"`
	Debounce       time.Duration `yaml:"debounce,omitempty" toml:"debounce"`

	baseDir string
}

// Load reads a .yaml/.yml or .toml config, applies defaults and validates it.
// Relative paths are resolved against the config folder.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %v", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config %v: %w", path, err)
	}
	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err = toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config %v: %w", path, err)
		}
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config %v: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported config format %v", ErrInvalidConfig, path)
	}
	location, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	cfg.baseDir = filepath.Dir(location)
	if err = cfg.Init(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Init applies defaults and validates the config
func (c *Config) Init() error {
	c.applyDefaults()
	return c.validate()
}

func (c *Config) applyDefaults() {
	if len(c.Input) == 0 {
		c.Input = []string{"src/**/*.{ts,tsx,js,jsx}"}
	}
	if c.Ignore == nil {
		c.Ignore = []string{"**/*.test.*", "**/*.spec.*", "**/node_modules/**", "**/dist/**"}
	}
	if strings.TrimSpace(c.Namespace) == "" {
		c.Namespace = "translation"
	}
	if c.KeySeparator == "" {
		c.KeySeparator = "."
	}
	if strings.TrimSpace(c.Output) == "" {
		c.Output = ".output/" + LanguagePlaceholder + "/" + NamespacePlaceholder + ".json"
	}
	if strings.TrimSpace(c.OutputMatrixFile) == "" {
		c.OutputMatrixFile = ".output/matrix.json"
	}
	if len(c.Locales) == 0 {
		c.Locales = c.Languages()
	}
	if c.Debounce <= 0 {
		c.Debounce = 500 * time.Millisecond
	}
}

func (c *Config) validate() error {
	if len(c.LocaleFilesByLanguage) == 0 {
		return fmt.Errorf("%w: localeFilesByLanguage is empty", ErrInvalidConfig)
	}
	for _, lang := range append(c.Languages(), c.Locales...) {
		if _, err := language.Parse(lang); err != nil {
			return fmt.Errorf("%w: language %q: %v", ErrInvalidConfig, lang, err)
		}
	}
	if len(c.Locales) > 1 && !strings.Contains(c.Output, LanguagePlaceholder) {
		return fmt.Errorf("%w: output %v does not contain %v", ErrInvalidConfig, c.Output, LanguagePlaceholder)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Languages returns the sorted matrix languages
func (c *Config) Languages() []string {
	languages := maps.Keys(c.LocaleFilesByLanguage)
	sort.Strings(languages)
	return languages
}

// Resolve returns location as an absolute path, relative locations being taken from the config folder
func (c *Config) Resolve(location string) string {
	if filepath.IsAbs(location) {
		return location
	}
	if c.baseDir != "" {
		return filepath.Join(c.baseDir, location)
	}
	if abs, err := filepath.Abs(location); err == nil {
		return abs
	}
	return location
}

// BaseDir returns the folder the config was loaded from, or the working directory
func (c *Config) BaseDir() string {
	return c.Resolve(".")
}

// OutputFile returns the extraction output location for a locale
func (c *Config) OutputFile(locale string) string {
	location := strings.ReplaceAll(c.Output, LanguagePlaceholder, locale)
	location = strings.ReplaceAll(location, NamespacePlaceholder, c.Namespace)
	return c.Resolve(location)
}

// LocaleFiles returns the translation files by language with resolved locations
func (c *Config) LocaleFiles() map[string]string {
	result := make(map[string]string, len(c.LocaleFilesByLanguage))
	for lang, location := range c.LocaleFilesByLanguage {
		result[lang] = c.Resolve(location)
	}
	return result
}
