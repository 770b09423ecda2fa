package parsers

import (
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"

	"github.com/mvp-joe/fndoc/internal/docmeta"
	"github.com/mvp-joe/fndoc/internal/indexer/extraction"
)

// goParser locates function declarations in Go source using go/ast.
// Methods (declarations with a receiver) are skipped.
type goParser struct{}

// NewGoParser creates a new Go locator.
func NewGoParser() *goParser {
	return &goParser{}
}

// Language returns the language name.
func (p *goParser) Language() string {
	return "go"
}

// CommentMarkers returns the comment line markers used by Go.
func (p *goParser) CommentMarkers() string {
	return ""
}

// Locate parses source and returns every top-level function in document order.
func (p *goParser) Locate(ctx context.Context, source []byte) ([]extraction.Declaration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "", source, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	decls := []extraction.Declaration{}
	prevEnd := file.Name.End()
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if ok && fn.Recv == nil && fn.Name != nil {
			decls = append(decls, extraction.Declaration{
				Name:       fn.Name.Name,
				Location:   goLocation(fset, fn.Name.Pos(), source),
				RawComment: goLeadingComment(fset, file.Comments, prevEnd, fn.Pos()),
			})
		}
		prevEnd = decl.End()
	}

	return decls, nil
}

// goLeadingComment joins every comment between prevEnd and pos, excluding
// comments that trail the previous declaration on its last line.
func goLeadingComment(fset *token.FileSet, groups []*ast.CommentGroup, prevEnd, pos token.Pos) string {
	prevLine := fset.Position(prevEnd).Line

	var parts []string
	for _, group := range groups {
		if group.End() <= prevEnd || group.Pos() >= pos {
			continue
		}
		for _, c := range group.List {
			if c.Pos() <= prevEnd || c.End() > pos {
				continue
			}
			if fset.Position(c.Pos()).Line == prevLine {
				continue
			}
			parts = append(parts, c.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// goLocation converts a token position to a 1-based line and code-point column.
func goLocation(fset *token.FileSet, pos token.Pos, source []byte) docmeta.Location {
	p := fset.Position(pos)
	return docmeta.Location{
		Line:   p.Line,
		Column: runeColumn(source, p.Offset, p.Column-1),
	}
}
