package parsers

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	c "github.com/tree-sitter/tree-sitter-c/bindings/go"
)

// NewCParser creates a new C locator.
func NewCParser() *treeSitterParser {
	lang := sitter.NewLanguage(c.Language())
	return newTreeSitterParser(lang, &languageSpec{
		name:          "c",
		functionKinds: kinds("function_definition"),
		commentKinds:  kinds("comment"),
		nameOf:        cFunctionName,
	})
}

// cFunctionName finds the identifier inside a function definition's declarator,
// which may be nested in pointer or parenthesized declarators.
func cFunctionName(node *sitter.Node) *sitter.Node {
	return findDeclaratorName(node.ChildByFieldName("declarator"))
}

// findDeclaratorName recursively finds the function name in a declarator.
func findDeclaratorName(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}

	switch node.Kind() {
	case "identifier":
		return node
	case "function_declarator", "pointer_declarator", "parenthesized_declarator", "attributed_declarator":
		if inner := node.ChildByFieldName("declarator"); inner != nil {
			return findDeclaratorName(inner)
		}
		return findChildByType(node, "identifier")
	default:
		return findChildByType(node, "identifier")
	}
}
