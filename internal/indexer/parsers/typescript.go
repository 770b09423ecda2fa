package parsers

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// typeScriptSpec describes function declarations in the TypeScript family of grammars.
// Methods, arrow functions and function expressions have their own node kinds
// and are never matched.
func typeScriptSpec(name string) *languageSpec {
	return &languageSpec{
		name: name,
		functionKinds: kinds(
			"function_declaration",
			"generator_function_declaration",
			"function_signature",
		),
		wrapperKinds:   kinds("export_statement", "ambient_declaration"),
		commentKinds:   kinds("comment"),
		commentMarkers: "",
	}
}

// NewTypeScriptParser creates a new TypeScript locator.
func NewTypeScriptParser() *treeSitterParser {
	lang := sitter.NewLanguage(typescript.LanguageTypescript())
	return newTreeSitterParser(lang, typeScriptSpec("typescript"))
}

// NewTSXParser creates a new TSX locator.
func NewTSXParser() *treeSitterParser {
	lang := sitter.NewLanguage(typescript.LanguageTSX())
	return newTreeSitterParser(lang, typeScriptSpec("tsx"))
}

// NewJavaScriptParser creates a new JavaScript locator.
// JavaScript and JSX parse with the TSX grammar, which accepts both.
func NewJavaScriptParser() *treeSitterParser {
	lang := sitter.NewLanguage(typescript.LanguageTSX())
	return newTreeSitterParser(lang, typeScriptSpec("javascript"))
}
