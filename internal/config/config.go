package config

import (
	"time"

	"github.com/mvp-joe/fndoc/internal/docmeta"
)

// Config represents the complete fndoc configuration.
// It can be loaded from .fndoc/config.yml with environment variable overrides.
type Config struct {
	Annotations AnnotationsConfig `yaml:"annotations" mapstructure:"annotations"`
	Paths       PathsConfig       `yaml:"paths" mapstructure:"paths"`
	Scan        ScanConfig        `yaml:"scan" mapstructure:"scan"`
	Watch       WatchConfig       `yaml:"watch" mapstructure:"watch"`
}

// AnnotationsConfig controls how doc comments become annotations.
type AnnotationsConfig struct {
	SupportedTags         []string `yaml:"supported_tags" mapstructure:"supported_tags"`                   // matched as line prefixes, first match wins
	MultiLineContinuation bool     `yaml:"multi_line_continuation" mapstructure:"multi_line_continuation"` // fold non-tag lines into the open tag
	TextEncoding          string   `yaml:"text_encoding" mapstructure:"text_encoding"`                     // e.g., "utf-8", "latin1"
}

// PathsConfig defines which files to scan and which to ignore.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for source files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to ignore
}

// ScanConfig controls directory scans.
type ScanConfig struct {
	Workers   int `yaml:"workers" mapstructure:"workers"`       // 0 means runtime.NumCPU()
	CacheSize int `yaml:"cache_size" mapstructure:"cache_size"` // max cached extraction results
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms" mapstructure:"debounce_ms"` // quiet period before re-extracting
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	annotations := docmeta.DefaultAnnotationConfig()
	return &Config{
		Annotations: AnnotationsConfig{
			SupportedTags:         annotations.SupportedAnnotationTags,
			MultiLineContinuation: annotations.MultiLineContinuation,
			TextEncoding:          annotations.TextEncoding,
		},
		Paths: PathsConfig{
			Include: []string{
				"**/*.go",
				"**/*.ts",
				"**/*.mts",
				"**/*.cts",
				"**/*.tsx",
				"**/*.js",
				"**/*.mjs",
				"**/*.cjs",
				"**/*.jsx",
				"**/*.py",
				"**/*.rs",
				"**/*.c",
				"**/*.h",
				"**/*.php",
				"**/*.rb",
			},
			Ignore: []string{
				"node_modules/**",
				"vendor/**",
				"dist/**",
				"build/**",
				"target/**",
				"__pycache__/**",
				"**/*.min.js",
				"**/*.d.ts",
			},
		},
		Scan: ScanConfig{
			Workers:   0,
			CacheSize: 1024,
		},
		Watch: WatchConfig{
			DebounceMs: 300,
		},
	}
}

// ToAnnotationConfig converts the annotations section to the value threaded
// through the extraction pipeline.
func (c *Config) ToAnnotationConfig() docmeta.AnnotationConfig {
	return docmeta.AnnotationConfig{
		SupportedAnnotationTags: append([]string(nil), c.Annotations.SupportedTags...),
		MultiLineContinuation:   c.Annotations.MultiLineContinuation,
		TextEncoding:            c.Annotations.TextEncoding,
		CommentMarkers:          docmeta.DefaultCommentMarkers,
	}
}

// Debounce returns the watch debounce interval.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMs) * time.Millisecond
}
