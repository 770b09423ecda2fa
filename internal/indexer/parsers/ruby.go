package parsers

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"
)

// NewRubyParser creates a new Ruby locator.
// A `def` directly in a class or module body is a method; top-level and
// block-nested defs are functions. `def self.x` is a singleton_method and
// never matches.
func NewRubyParser() *treeSitterParser {
	lang := sitter.NewLanguage(ruby.Language())
	return newTreeSitterParser(lang, &languageSpec{
		name:             "ruby",
		functionKinds:    kinds("method"),
		methodContainers: kinds("class", "module", "singleton_class"),
		bodyKinds:        kinds("body_statement"),
		commentKinds:     kinds("comment"),
		commentMarkers:   "#",
	})
}
