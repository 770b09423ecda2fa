package parsers

import (
	"testing"

	"github.com/mvp-joe/fndoc/internal/docmeta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the C locator:
// - Block comment before a definition is captured
// - Names nested in pointer declarators are found
// - Prototypes (declarations without bodies) are not definitions

func TestCParser_LocatesFunctions(t *testing.T) {
	t.Parallel()

	src := `int prototype(int x);

/* Adds two ints.
 * @param a first
 */
int add(int a, int b) { return a + b; }

static char *dup(const char *s) { return 0; }
`
	decls := locate(t, NewCParser(), src)

	require.Equal(t, []string{"add", "dup"}, names(decls))
	assert.Equal(t, "/* Adds two ints.\n * @param a first\n */", decls[0].RawComment)
	assert.Equal(t, docmeta.Location{Line: 6, Column: 5}, decls[0].Location)
	assert.Equal(t, "", decls[1].RawComment)
	assert.Equal(t, docmeta.Location{Line: 8, Column: 14}, decls[1].Location)
}
