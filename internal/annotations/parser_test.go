package annotations

import (
	"testing"

	"github.com/mvp-joe/fndoc/internal/docmeta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the annotation parser:
// - Single-line JSDoc with two tags yields two single-line annotations
// - Continuation lines are joined with newlines and flag the annotation multi-line
// - Continuation disabled keeps only the tag line's content
// - Unsupported tags never produce annotations and fold into the open tag
// - A tag with no body followed by another tag is dropped
// - Prose before the first tag is discarded
// - Empty, marker-only and tagless input yields an empty non-nil slice
// - Blank comment lines don't mark an annotation as multi-line
// - First configured tag wins when tags share a prefix
// - Extra comment markers (e.g. '#') are stripped when configured
// - CRLF line endings are handled

func testConfig(tags ...string) docmeta.AnnotationConfig {
	cfg := docmeta.DefaultAnnotationConfig()
	if len(tags) > 0 {
		cfg.SupportedAnnotationTags = tags
	}
	return cfg
}

func TestParse_SingleLineBlock(t *testing.T) {
	t.Parallel()

	raw := "/** @param name desc\n@returns result */"
	got := Parse(raw, testConfig("@param", "@returns"))

	require.Len(t, got, 2)
	assert.Equal(t, docmeta.AnnotationMetadata{Tag: "@param", Content: "name desc"}, got[0])
	assert.Equal(t, docmeta.AnnotationMetadata{Tag: "@returns", Content: "result"}, got[1])
}

func TestParse_StandardJSDoc(t *testing.T) {
	t.Parallel()

	raw := `/**
 * Adds two numbers.
 *
 * @param a the first operand
 * @param b the second operand
 * @returns the sum
 */`
	got := Parse(raw, testConfig())

	require.Len(t, got, 3)
	assert.Equal(t, "@param", got[0].Tag)
	assert.Equal(t, "a the first operand", got[0].Content)
	assert.Equal(t, "b the second operand", got[1].Content)
	assert.Equal(t, "@returns", got[2].Tag)
	assert.Equal(t, "the sum", got[2].Content)
	for _, a := range got {
		assert.False(t, a.IsMultiLine, "closing line must not count as continuation for %s", a.Tag)
	}
}

func TestParse_ContinuationLaw(t *testing.T) {
	t.Parallel()

	got := Parse("@description\nline1\nline2", testConfig("@description"))

	require.Len(t, got, 1)
	assert.Equal(t, "@description", got[0].Tag)
	assert.Equal(t, "line1\nline2", got[0].Content)
	assert.True(t, got[0].IsMultiLine)
}

func TestParse_ContinuationAfterInlineContent(t *testing.T) {
	t.Parallel()

	raw := `/**
 * @param opts options bag
 *   with a wrapped description
 * @returns nothing
 */`
	got := Parse(raw, testConfig())

	require.Len(t, got, 2)
	assert.Equal(t, "opts options bag\nwith a wrapped description", got[0].Content)
	assert.True(t, got[0].IsMultiLine)
	assert.False(t, got[1].IsMultiLine)
}

func TestParse_ContinuationDisabled(t *testing.T) {
	t.Parallel()

	cfg := testConfig("@param", "@returns")
	cfg.MultiLineContinuation = false

	raw := "/**\n * @param a first\n * more about a\n * @returns sum\n */"
	got := Parse(raw, cfg)

	require.Len(t, got, 2)
	assert.Equal(t, "a first", got[0].Content)
	assert.False(t, got[0].IsMultiLine)
	assert.Equal(t, "sum", got[1].Content)
}

func TestParse_ContinuationDisabledDropsBodylessTag(t *testing.T) {
	t.Parallel()

	cfg := testConfig("@param")
	cfg.MultiLineContinuation = false

	got := Parse("@param\nname described below", cfg)
	assert.Empty(t, got)
}

func TestParse_TagFiltering(t *testing.T) {
	t.Parallel()

	raw := "/**\n * @deprecated use other\n * @param x value\n */"
	got := Parse(raw, testConfig("@param"))

	require.Len(t, got, 1)
	assert.Equal(t, "@param", got[0].Tag)
	assert.Equal(t, "x value", got[0].Content)
}

func TestParse_UnsupportedTagFoldsIntoOpenTag(t *testing.T) {
	t.Parallel()

	raw := "/**\n * @param x value\n * @since 1.2\n * @returns y\n */"
	got := Parse(raw, testConfig("@param", "@returns"))

	require.Len(t, got, 2)
	assert.Equal(t, "x value\n@since 1.2", got[0].Content)
	assert.True(t, got[0].IsMultiLine)
	assert.Equal(t, "y", got[1].Content)
}

func TestParse_EmptyContentSuppression(t *testing.T) {
	t.Parallel()

	got := Parse("/**\n * @param\n * @returns value\n */", testConfig())

	require.Len(t, got, 1)
	assert.Equal(t, "@returns", got[0].Tag)
	assert.Equal(t, "value", got[0].Content)
}

func TestParse_TrailingBodylessTag(t *testing.T) {
	t.Parallel()

	got := Parse("/** @returns */", testConfig())
	assert.Empty(t, got)
}

func TestParse_ProseBeforeFirstTagIsDiscarded(t *testing.T) {
	t.Parallel()

	raw := "/**\n * Summary line.\n * More prose.\n * @throws Error when empty\n */"
	got := Parse(raw, testConfig())

	require.Len(t, got, 1)
	assert.Equal(t, "@throws", got[0].Tag)
	assert.Equal(t, "Error when empty", got[0].Content)
	assert.False(t, got[0].IsMultiLine)
}

func TestParse_Totality(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"no markers at all",
		"/**/",
		"/***/",
		"*/",
		"// @unknown tag only",
		"/** @since 1.0 */",
		"\n\n\n",
		"@",
		"/** @param",
	}

	for _, in := range inputs {
		got := Parse(in, testConfig())
		assert.NotNil(t, got, "input %q", in)
		assert.Empty(t, got, "input %q", in)
	}
}

func TestParse_NoTagsConfigured(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.SupportedAnnotationTags = nil

	got := Parse("/** @param a b */", cfg)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParse_FirstConfiguredTagWins(t *testing.T) {
	t.Parallel()

	raw := "/** @paramType string */"

	got := Parse(raw, testConfig("@param", "@paramType"))
	require.Len(t, got, 1)
	assert.Equal(t, "@param", got[0].Tag)
	assert.Equal(t, "Type string", got[0].Content)

	got = Parse(raw, testConfig("@paramType", "@param"))
	require.Len(t, got, 1)
	assert.Equal(t, "@paramType", got[0].Tag)
	assert.Equal(t, "string", got[0].Content)
}

func TestParse_LineComments(t *testing.T) {
	t.Parallel()

	raw := "// @param a first\n// @returns sum"
	got := Parse(raw, testConfig())

	require.Len(t, got, 2)
	assert.Equal(t, "a first", got[0].Content)
	assert.Equal(t, "sum", got[1].Content)
}

func TestParse_HashMarkers(t *testing.T) {
	t.Parallel()

	raw := "# @param name the user name\n#   continued here\n# @returns greeting"
	cfg := testConfig().WithCommentMarkers("#")
	got := Parse(raw, cfg)

	require.Len(t, got, 2)
	assert.Equal(t, "name the user name\ncontinued here", got[0].Content)
	assert.True(t, got[0].IsMultiLine)
	assert.Equal(t, "greeting", got[1].Content)
}

func TestParse_CRLF(t *testing.T) {
	t.Parallel()

	raw := "/**\r\n * @param a first\r\n * @returns sum\r\n */"
	got := Parse(raw, testConfig())

	require.Len(t, got, 2)
	assert.Equal(t, "a first", got[0].Content)
	assert.Equal(t, "sum", got[1].Content)
}

func TestParse_Idempotent(t *testing.T) {
	t.Parallel()

	raw := "/**\n * @param a x\n *  y\n * @returns z\n */"
	cfg := testConfig()
	assert.Equal(t, Parse(raw, cfg), Parse(raw, cfg))
}

func TestCleanLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"/**", ""},
		{" */", ""},
		{" * @param a b", "@param a b"},
		{"/** @returns x */", "@returns x"},
		{"  **   text  ", "text"},
		{"// line comment", "line comment"},
		{"\t*\tindented", "indented"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanLine(tt.in, docmeta.DefaultCommentMarkers), "input %q", tt.in)
	}
}

func TestMatchTag_IgnoresEmptyTags(t *testing.T) {
	t.Parallel()

	_, ok := MatchTag("anything", []string{""})
	assert.False(t, ok)

	tag, ok := MatchTag("@throws Err", []string{"", "@throws"})
	assert.True(t, ok)
	assert.Equal(t, "@throws", tag)
}
