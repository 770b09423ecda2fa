package indexer

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mvp-joe/fndoc/internal/annotations"
	"github.com/mvp-joe/fndoc/internal/docmeta"
	"github.com/mvp-joe/fndoc/internal/indexer/parsers"
)

// ErrUnsupportedLanguage indicates a file extension with no registered locator.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Extractor runs the extraction pipeline: decode, locate declarations, parse
// their comments. It holds no per-file state and is safe for concurrent use.
type Extractor struct {
	cfg      docmeta.AnnotationConfig
	registry *parsers.Registry
	cache    *ResultCache
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithCache caches results by path, content and config.
func WithCache(cache *ResultCache) Option {
	return func(e *Extractor) {
		e.cache = cache
	}
}

// WithRegistry overrides the locator registry.
func WithRegistry(registry *parsers.Registry) Option {
	return func(e *Extractor) {
		e.registry = registry
	}
}

// NewExtractor creates an Extractor for the given annotation config.
func NewExtractor(cfg docmeta.AnnotationConfig, opts ...Option) *Extractor {
	e := &Extractor{
		cfg: cfg.Clone(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		e.registry = parsers.NewRegistry()
	}
	return e
}

// Config returns the annotation config this extractor was built with.
func (e *Extractor) Config() docmeta.AnnotationConfig {
	return e.cfg.Clone()
}

// Supports reports whether the file's language has a locator.
func (e *Extractor) Supports(filePath string) bool {
	_, ok := e.registry.ForPath(filePath)
	return ok
}

// ExtractFile reads a source file and extracts its function metadata.
// Read and decode failures are IO failures; unparseable source is a syntax failure.
func (e *Extractor) ExtractFile(ctx context.Context, filePath string) (*docmeta.FileMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, docmeta.NewIOError(filePath, err)
	}

	return e.ExtractSource(ctx, filePath, raw)
}

// ExtractSource extracts function metadata from already-read file bytes.
// filePath selects the language and is recorded in the result.
func (e *Extractor) ExtractSource(ctx context.Context, filePath string, raw []byte) (*docmeta.FileMetadata, error) {
	locator, ok := e.registry.ForPath(filePath)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, filePath)
	}

	source, err := DecodeSource(raw, e.cfg.TextEncoding)
	if err != nil {
		return nil, docmeta.NewIOError(filePath, err)
	}

	var key string
	if e.cache != nil {
		key = cacheKey(filePath, source, e.cfg.Fingerprint())
		if cached, ok := e.cache.Get(key); ok {
			return cached, nil
		}
	}

	decls, err := locator.Locate(ctx, source)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, docmeta.NewSyntaxError(filePath, err)
	}

	parseCfg := e.cfg.WithCommentMarkers(locator.CommentMarkers())
	functions := make([]docmeta.FunctionMetadata, 0, len(decls))
	for _, decl := range decls {
		functions = append(functions, docmeta.FunctionMetadata{
			Name:        decl.Name,
			Annotations: annotations.Parse(decl.RawComment, parseCfg),
			Location:    decl.Location,
		})
	}

	result := &docmeta.FileMetadata{
		Path:      filePath,
		Language:  locator.Language(),
		Functions: functions,
	}

	if e.cache != nil {
		e.cache.Set(key, result)
	}

	return result, nil
}

// Extract is a convenience wrapper that runs the pipeline on one file with cfg
// and returns only the function records.
func Extract(ctx context.Context, filePath string, cfg docmeta.AnnotationConfig) ([]docmeta.FunctionMetadata, error) {
	result, err := NewExtractor(cfg).ExtractFile(ctx, filePath)
	if err != nil {
		return nil, err
	}
	return result.Functions, nil
}
