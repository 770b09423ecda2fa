package parsers

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
)

// NewRustParser creates a new Rust locator.
// Items inside impl and trait blocks are methods. Attributes between a doc
// comment and its item are skipped so `/// doc` + `#[inline]` still attach.
func NewRustParser() *treeSitterParser {
	lang := sitter.NewLanguage(rust.Language())
	return newTreeSitterParser(lang, &languageSpec{
		name:             "rust",
		functionKinds:    kinds("function_item", "function_signature_item"),
		methodContainers: kinds("impl_item", "trait_item"),
		bodyKinds:        kinds("declaration_list"),
		commentKinds:     kinds("line_comment", "block_comment"),
		prefixKinds:      kinds("attribute_item"),
		commentMarkers:   "!",
	})
}
