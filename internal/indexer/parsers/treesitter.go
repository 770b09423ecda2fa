package parsers

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mvp-joe/fndoc/internal/docmeta"
	"github.com/mvp-joe/fndoc/internal/indexer/extraction"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// nodeVariant is the closed set of node kinds the declaration walk cares about.
type nodeVariant int

const (
	variantOther nodeVariant = iota
	variantFunctionDeclaration
)

// languageSpec describes where function declarations and their comments live
// in one tree-sitter grammar.
type languageSpec struct {
	name string

	// functionKinds are node kinds that declare a named function.
	functionKinds map[string]bool

	// methodContainers are kinds whose direct members are methods, not functions.
	// bodyKinds are the block kinds that sit between a container and its members.
	methodContainers map[string]bool
	bodyKinds        map[string]bool

	// wrapperKinds enclose a declaration without being part of its comment run
	// (export statements, decorated definitions).
	wrapperKinds map[string]bool

	// commentKinds are trivia kinds collected as the leading comment.
	commentKinds map[string]bool

	// prefixKinds may sit between the comment and the declaration (Rust attributes).
	prefixKinds map[string]bool

	// commentMarkers are the extra line markers of this language's comments.
	commentMarkers string

	// nameOf returns the declaration's name node, or nil when it has none.
	nameOf func(node *sitter.Node) *sitter.Node
}

// treeSitterParser locates function declarations with a tree-sitter grammar.
type treeSitterParser struct {
	language *sitter.Language
	spec     *languageSpec
}

// newTreeSitterParser creates a new tree-sitter locator for the given grammar.
func newTreeSitterParser(language *sitter.Language, spec *languageSpec) *treeSitterParser {
	if spec.nameOf == nil {
		spec.nameOf = nameField
	}
	return &treeSitterParser{
		language: language,
		spec:     spec,
	}
}

// Language returns the language name.
func (p *treeSitterParser) Language() string {
	return p.spec.name
}

// CommentMarkers returns the comment line markers used by this language.
func (p *treeSitterParser) CommentMarkers() string {
	return p.spec.commentMarkers
}

// Locate parses source and returns every named function declaration in document order.
func (p *treeSitterParser) Locate(ctx context.Context, source []byte) ([]extraction.Declaration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(p.language); err != nil {
		return nil, fmt.Errorf("failed to set %s language: %w", p.spec.name, err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, &SyntaxError{Language: p.spec.name, Message: "parser produced no tree"}
	}
	defer tree.Close()

	rootNode := tree.RootNode()
	if rootNode.HasError() {
		return nil, p.syntaxError(rootNode, source)
	}

	v := &declarationVisitor{spec: p.spec, source: source, out: []extraction.Declaration{}}
	walkTree(rootNode, v.visit)

	return v.out, nil
}

// syntaxError describes the first error or missing node in the tree.
func (p *treeSitterParser) syntaxError(root *sitter.Node, source []byte) error {
	var bad *sitter.Node
	walkTree(root, func(n *sitter.Node) bool {
		if bad != nil {
			return false
		}
		if n.IsError() || n.IsMissing() {
			bad = n
			return false
		}
		return n.HasError()
	})

	serr := &SyntaxError{Language: p.spec.name, Message: "invalid syntax"}
	if bad != nil {
		loc := nodeLocation(bad, source)
		serr.Line, serr.Column = loc.Line, loc.Column
		if bad.IsMissing() {
			serr.Message = fmt.Sprintf("missing %s", bad.Kind())
		} else {
			serr.Message = "unexpected input"
		}
	}
	return serr
}

// declarationVisitor collects declarations during a depth-first walk.
type declarationVisitor struct {
	spec   *languageSpec
	source []byte
	out    []extraction.Declaration
}

// visit handles one node. It always returns true so nested declarations are reached.
func (v *declarationVisitor) visit(node *sitter.Node) bool {
	variant, nameNode := v.spec.classify(node)
	switch variant {
	case variantFunctionDeclaration:
		v.out = append(v.out, extraction.Declaration{
			Name:       extractNodeText(nameNode, v.source),
			Location:   nodeLocation(nameNode, v.source),
			RawComment: v.spec.leadingComment(node, v.source),
		})
	case variantOther:
	}
	return true
}

// classify maps a node onto the variant set, returning the name node for declarations.
func (s *languageSpec) classify(node *sitter.Node) (nodeVariant, *sitter.Node) {
	if !s.functionKinds[node.Kind()] {
		return variantOther, nil
	}
	if s.isMethod(s.anchor(node)) {
		return variantOther, nil
	}
	nameNode := s.nameOf(node)
	if nameNode == nil {
		return variantOther, nil
	}
	return variantFunctionDeclaration, nameNode
}

// anchor climbs through wrapper nodes so comments before `export` or a
// decorator are attributed to the declaration they wrap.
func (s *languageSpec) anchor(node *sitter.Node) *sitter.Node {
	for {
		parent := node.Parent()
		if parent == nil || !s.wrapperKinds[parent.Kind()] {
			return node
		}
		node = parent
	}
}

// isMethod reports whether node is a direct member of a method container.
func (s *languageSpec) isMethod(node *sitter.Node) bool {
	if len(s.methodContainers) == 0 {
		return false
	}
	parent := node.Parent()
	if parent == nil {
		return false
	}
	if s.methodContainers[parent.Kind()] {
		return true
	}
	if s.bodyKinds[parent.Kind()] {
		if grand := parent.Parent(); grand != nil && s.methodContainers[grand.Kind()] {
			return true
		}
	}
	return false
}

// leadingComment returns the run of comments immediately preceding the
// declaration, joined by newlines. Comments that share a line with the
// preceding token trail that token and are excluded.
func (s *languageSpec) leadingComment(node *sitter.Node, source []byte) string {
	var comments []*sitter.Node

	prev := s.anchor(node).PrevSibling()
	for prev != nil {
		kind := prev.Kind()
		if s.commentKinds[kind] {
			comments = append(comments, prev)
		} else if !s.prefixKinds[kind] {
			break
		}
		prev = prev.PrevSibling()
	}
	if len(comments) == 0 {
		return ""
	}

	// comments is in reverse source order; prev is the token before the run.
	parts := make([]string, 0, len(comments))
	for i := len(comments) - 1; i >= 0; i-- {
		c := comments[i]
		if prev != nil && c.StartPosition().Row == prev.EndPosition().Row {
			continue
		}
		parts = append(parts, strings.TrimRight(extractNodeText(c, source), "\r\n"))
	}
	return strings.Join(parts, "\n")
}

// SyntaxError is returned when a grammar can't produce a clean tree.
type SyntaxError struct {
	Language string
	Line     int
	Column   int
	Message  string
}

func (e *SyntaxError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Language, e.Message)
	}
	return fmt.Sprintf("%s: %s at %d:%d", e.Language, e.Message, e.Line, e.Column)
}

// nameField returns the node's "name" field.
func nameField(node *sitter.Node) *sitter.Node {
	return node.ChildByFieldName("name")
}

// extractNodeText extracts the text content of a tree-sitter node.
func extractNodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// nodeLocation returns the 1-based line and code-point column of the node's start.
func nodeLocation(node *sitter.Node, source []byte) docmeta.Location {
	pos := node.StartPosition()
	return docmeta.Location{
		Line:   int(pos.Row) + 1,
		Column: runeColumn(source, int(node.StartByte()), int(pos.Column)),
	}
}

// runeColumn converts a 0-based byte column at offset into a 1-based code-point column.
func runeColumn(source []byte, offset, byteColumn int) int {
	lineStart := offset - byteColumn
	if lineStart < 0 || offset > len(source) {
		return byteColumn + 1
	}
	return utf8.RuneCount(source[lineStart:offset]) + 1
}

// walkTree recursively walks a tree-sitter tree and calls the visitor for each node.
// Children are skipped when the visitor returns false.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !visitor(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		walkTree(child, visitor)
	}
}

// findChildByType finds the first child node with the given type.
func findChildByType(node *sitter.Node, nodeType string) *sitter.Node {
	if node == nil {
		return nil
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == nodeType {
			return child
		}
	}
	return nil
}

// kinds builds a lookup set from node kind names.
func kinds(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
