package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
	"golang.org/x/text/encoding/htmlindex"
)

var (
	// ErrEmptyTags indicates no supported annotation tags are configured
	ErrEmptyTags = errors.New("empty supported tags")

	// ErrInvalidTag indicates a blank tag or one containing whitespace
	ErrInvalidTag = errors.New("invalid annotation tag")

	// ErrUnknownEncoding indicates a text encoding label that can't be resolved
	ErrUnknownEncoding = errors.New("unknown text encoding")

	// ErrInvalidPattern indicates an include or ignore glob that doesn't compile
	ErrInvalidPattern = errors.New("invalid path pattern")

	// ErrInvalidWorkers indicates a negative worker count
	ErrInvalidWorkers = errors.New("invalid worker count")

	// ErrInvalidCacheSize indicates a non-positive cache size
	ErrInvalidCacheSize = errors.New("invalid cache size")

	// ErrInvalidDebounce indicates a negative debounce interval
	ErrInvalidDebounce = errors.New("invalid debounce interval")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateAnnotations(&cfg.Annotations); err != nil {
		errs = append(errs, err)
	}

	if err := validatePaths(&cfg.Paths); err != nil {
		errs = append(errs, err)
	}

	if err := validateScan(&cfg.Scan); err != nil {
		errs = append(errs, err)
	}

	if cfg.Watch.DebounceMs < 0 {
		errs = append(errs, fmt.Errorf("%w: debounce_ms cannot be negative, got %d", ErrInvalidDebounce, cfg.Watch.DebounceMs))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateAnnotations(cfg *AnnotationsConfig) error {
	var errs []error

	if len(cfg.SupportedTags) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one tag required", ErrEmptyTags))
	}

	for _, tag := range cfg.SupportedTags {
		if strings.TrimSpace(tag) == "" || strings.ContainsAny(tag, " \t\r\n") {
			errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidTag, tag))
		}
	}

	if label := strings.TrimSpace(cfg.TextEncoding); label != "" {
		if _, err := htmlindex.Get(label); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownEncoding, cfg.TextEncoding))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validatePaths(cfg *PathsConfig) error {
	// Paths can be empty - a scan with no include patterns finds nothing
	var errs []error

	for _, section := range []struct {
		name     string
		patterns []string
	}{
		{"include", cfg.Include},
		{"ignore", cfg.Ignore},
	} {
		for _, pattern := range section.patterns {
			if _, err := glob.Compile(pattern, '/'); err != nil {
				errs = append(errs, fmt.Errorf("%w: %s %q: %v", ErrInvalidPattern, section.name, pattern, err))
			}
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateScan(cfg *ScanConfig) error {
	var errs []error

	// Zero workers means one per CPU
	if cfg.Workers < 0 {
		errs = append(errs, fmt.Errorf("%w: workers cannot be negative, got %d", ErrInvalidWorkers, cfg.Workers))
	}

	if cfg.CacheSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: cache_size must be positive, got %d", ErrInvalidCacheSize, cfg.CacheSize))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
// Sentinels stay reachable through errors.Is.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	return &validationErrors{errs: errs}
}

type validationErrors struct {
	errs []error
}

func (v *validationErrors) Error() string {
	msgs := make([]string, 0, len(v.errs))
	for _, err := range v.errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

func (v *validationErrors) Unwrap() []error {
	return v.errs
}
