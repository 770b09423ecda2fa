package parsers

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mvp-joe/fndoc/internal/indexer/extraction"
)

// Locator finds named function declarations and their leading comments.
// Implementations hold no per-call state and are safe for concurrent use.
type Locator interface {
	// Language returns the language name (e.g. "typescript").
	Language() string

	// CommentMarkers returns the comment line markers specific to the language,
	// in addition to the default '/' and '*'.
	CommentMarkers() string

	// Locate returns declarations in document order. An error means the source
	// could not be parsed into a clean tree.
	Locate(ctx context.Context, source []byte) ([]extraction.Declaration, error)
}

// Registry maps file extensions to locators.
type Registry struct {
	byExt map[string]Locator
}

// NewRegistry creates a registry with every supported language.
func NewRegistry() *Registry {
	ts := NewTypeScriptParser()
	tsx := NewTSXParser()
	js := NewJavaScriptParser()
	py := NewPythonParser()
	rs := NewRustParser()
	cc := NewCParser()
	php := NewPhpParser()
	rb := NewRubyParser()
	goLang := NewGoParser()

	return &Registry{
		byExt: map[string]Locator{
			".ts":  ts,
			".mts": ts,
			".cts": ts,
			".tsx": tsx,
			".js":  js,
			".mjs": js,
			".cjs": js,
			".jsx": js,
			".py":  py,
			".rs":  rs,
			".c":   cc,
			".h":   cc,
			".php": php,
			".rb":  rb,
			".go":  goLang,
		},
	}
}

// ForPath returns the locator for a file based on its extension.
func (r *Registry) ForPath(filePath string) (Locator, bool) {
	loc, ok := r.byExt[strings.ToLower(filepath.Ext(filePath))]
	return loc, ok
}

// DetectLanguage returns the language name for a file, or "unknown".
func (r *Registry) DetectLanguage(filePath string) string {
	if loc, ok := r.ForPath(filePath); ok {
		return loc.Language()
	}
	return "unknown"
}

// Extensions returns the supported extensions (with leading dot) in sorted order.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
