// Package models defines shared data structures: configuration, request
// options, and the JSON result envelope.
package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied when config.yaml is absent or leaves fields unset.
const (
	DefaultCacheMaxEntries = 30
	DefaultCacheTTL        = time.Hour
	DefaultChunkSize       = 1000
	DefaultChunkOverlap    = 100
	DefaultOCRDPI          = 200
	DefaultWorkerCount     = 4
)

// DefaultOCRLanguages returns the default Tesseract language set.
func DefaultOCRLanguages() []string { return []string{"eng"} }

// CacheConfig controls the in-process result cache.
type CacheConfig struct {
	MaxEntries int    `yaml:"max_entries"`
	TTL        string `yaml:"ttl"` // Go duration string, e.g. "1h"
}

// ChunkingConfig sets default chunk geometry for requests that don't
// override it.
type ChunkingConfig struct {
	Size    int `yaml:"size"`
	Overlap int `yaml:"overlap"`
}

// OCRConfig sets OCR engine defaults.
type OCRConfig struct {
	Languages      []string `yaml:"languages"`
	DPI            int      `yaml:"dpi"`
	UseAccelerator bool     `yaml:"use_accelerator"`
}

// Config is the process-level configuration, loaded once at startup.
type Config struct {
	Cache    CacheConfig    `yaml:"cache"`
	Chunking ChunkingConfig `yaml:"chunking"`
	OCR      OCRConfig      `yaml:"ocr"`
	Workers  int            `yaml:"workers"`
}

// DefaultConfig returns a Config with all defaults filled in.
func DefaultConfig() *Config {
	return &Config{
		Cache:    CacheConfig{MaxEntries: DefaultCacheMaxEntries, TTL: DefaultCacheTTL.String()},
		Chunking: ChunkingConfig{Size: DefaultChunkSize, Overlap: DefaultChunkOverlap},
		OCR:      OCRConfig{Languages: DefaultOCRLanguages(), DPI: DefaultOCRDPI},
		Workers:  DefaultWorkerCount,
	}
}

// LoadConfig reads a YAML config file and fills unset fields with defaults.
// A missing file is not an error; defaults are returned.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	applyConfigDefaults(cfg)
	return cfg, nil
}

func applyConfigDefaults(cfg *Config) {
	if cfg.Cache.MaxEntries <= 0 {
		cfg.Cache.MaxEntries = DefaultCacheMaxEntries
	}
	if cfg.Cache.TTL == "" {
		cfg.Cache.TTL = DefaultCacheTTL.String()
	}
	if cfg.Chunking.Size <= 0 {
		cfg.Chunking.Size = DefaultChunkSize
	}
	if cfg.Chunking.Overlap < 0 {
		cfg.Chunking.Overlap = DefaultChunkOverlap
	}
	if len(cfg.OCR.Languages) == 0 {
		cfg.OCR.Languages = DefaultOCRLanguages()
	}
	if cfg.OCR.DPI <= 0 {
		cfg.OCR.DPI = DefaultOCRDPI
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkerCount
	}
}

// CacheTTL parses the configured TTL string.
func (c *Config) CacheTTL() (time.Duration, error) {
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0, NewConfigurationError("cache.ttl", "invalid duration %q", c.Cache.TTL)
	}
	return d, nil
}
