package parsers

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// NewPythonParser creates a new Python locator.
// Functions defined directly in a class body are methods and are skipped;
// functions nested in other functions are kept.
func NewPythonParser() *treeSitterParser {
	lang := sitter.NewLanguage(python.Language())
	return newTreeSitterParser(lang, &languageSpec{
		name:             "python",
		functionKinds:    kinds("function_definition"),
		methodContainers: kinds("class_definition"),
		bodyKinds:        kinds("block"),
		wrapperKinds:     kinds("decorated_definition"),
		commentKinds:     kinds("comment"),
		commentMarkers:   "#",
	})
}
