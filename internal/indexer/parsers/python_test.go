package parsers

import (
	"testing"

	"github.com/mvp-joe/fndoc/internal/docmeta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the Python locator:
// - Comments before a decorator attach to the decorated function
// - Functions nested in functions are located
// - Methods defined in a class body are skipped
// - Docstrings are body content, only leading # comments are collected
// - Language and comment markers are reported

func TestPythonParser_LocatesFunctions(t *testing.T) {
	t.Parallel()

	src := `# @param name who to greet
@cache
def greet(name):
    def inner():
        pass
    return name


class Greeter:
    def method(self):
        pass
`
	decls := locate(t, NewPythonParser(), src)

	require.Equal(t, []string{"greet", "inner"}, names(decls))
	assert.Equal(t, "# @param name who to greet", decls[0].RawComment)
	assert.Equal(t, docmeta.Location{Line: 3, Column: 5}, decls[0].Location)
	assert.Equal(t, "", decls[1].RawComment)
	assert.Equal(t, docmeta.Location{Line: 4, Column: 9}, decls[1].Location)
}

func TestPythonParser_IgnoresDocstrings(t *testing.T) {
	t.Parallel()

	src := "# @param a leading\ndef f(a):\n    \"\"\"@param a docstr\"\"\"\n    return a\n"
	decls := locate(t, NewPythonParser(), src)

	require.Len(t, decls, 1)
	assert.Equal(t, "# @param a leading", decls[0].RawComment)
}

func TestPythonParser_Metadata(t *testing.T) {
	t.Parallel()

	parser := NewPythonParser()
	assert.Equal(t, "python", parser.Language())
	assert.Equal(t, "#", parser.CommentMarkers())
}
