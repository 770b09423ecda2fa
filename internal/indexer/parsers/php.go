package parsers

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	php "github.com/tree-sitter/tree-sitter-php/bindings/go"
)

// NewPhpParser creates a new PHP locator.
// Class methods are method_declaration nodes and never match.
func NewPhpParser() *treeSitterParser {
	lang := sitter.NewLanguage(php.LanguagePHP())
	return newTreeSitterParser(lang, &languageSpec{
		name:           "php",
		functionKinds:  kinds("function_definition"),
		commentKinds:   kinds("comment"),
		commentMarkers: "#",
	})
}
