package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mvp-joe/fndoc/internal/config"
	"github.com/mvp-joe/fndoc/internal/docmeta"
	"github.com/mvp-joe/fndoc/internal/indexer"
	"github.com/mvp-joe/fndoc/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the CLI:
// - runExtract prints pretty JSON (2-space indent) for one file
// - runExtract surfaces IO failures for missing files
// - The root command requires exactly one argument
// - Flag overrides replace config values and are validated
// - runScan prints every discovered file in order and can export to SQLite
// - runScan rejects a missing directory
// - handleChanges writes one JSON line per existing file and skips removed ones
// - version prints the build information

func testSettings() *settings {
	return &settings{config: config.Default()}
}

func TestRunExtract_PrettyJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "greet.ts")
	require.NoError(t, os.WriteFile(path, []byte("/** @param name desc\n@returns result */\nfunction greet(name) {}\n"), 0644))

	var out bytes.Buffer
	require.NoError(t, runExtract(context.Background(), testSettings(), path, &out))

	expected := `[
  {
    "name": "greet",
    "annotations": [
      {
        "tag": "@param",
        "content": "name desc",
        "isMultiLine": false
      },
      {
        "tag": "@returns",
        "content": "result",
        "isMultiLine": false
      }
    ],
    "location": {
      "line": 3,
      "column": 10
    }
  }
]
`
	assert.Equal(t, expected, out.String())
}

func TestRunExtract_UndocumentedFunction(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bare.py")
	require.NoError(t, os.WriteFile(path, []byte("def bare():\n    pass\n"), 0644))

	var out bytes.Buffer
	require.NoError(t, runExtract(context.Background(), testSettings(), path, &out))
	assert.Contains(t, out.String(), `"annotations": []`)
}

func TestRunExtract_MissingFile(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := runExtract(context.Background(), testSettings(), filepath.Join(t.TempDir(), "missing.ts"), &out)

	assert.ErrorIs(t, err, docmeta.ErrIO)
	assert.Empty(t, out.String())
}

func TestRootCommand_RequiresOneArgument(t *testing.T) {
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	defer rootCmd.SetOut(nil)
	defer rootCmd.SetErr(nil)

	rootCmd.SetArgs([]string{})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s), received 0")
	assert.Contains(t, stdout.String()+stderr.String(), "Usage:")

	rootCmd.SetArgs([]string{"a.ts", "b.ts"})
	assert.Error(t, rootCmd.Execute())
}

func TestOverrides_Apply(t *testing.T) {
	t.Parallel()

	continuation := false
	encoding := "latin1"
	cfg := config.Default()

	require.NoError(t, overrides{
		tags:         []string{"@see"},
		continuation: &continuation,
		encoding:     &encoding,
	}.apply(cfg))

	assert.Equal(t, []string{"@see"}, cfg.Annotations.SupportedTags)
	assert.False(t, cfg.Annotations.MultiLineContinuation)
	assert.Equal(t, "latin1", cfg.Annotations.TextEncoding)

	unchanged := config.Default()
	require.NoError(t, overrides{}.apply(unchanged))
	assert.Equal(t, config.Default(), unchanged)

	bad := "klingon"
	err := overrides{encoding: &bad}.apply(config.Default())
	assert.ErrorIs(t, err, config.ErrUnknownEncoding)
}

func TestRunScan_Project(t *testing.T) {
	t.Parallel()

	root := "../../testdata/project"
	dbPath := filepath.Join(t.TempDir(), "scan.db")

	var out bytes.Buffer
	progress := NewCLIProgressReporter(true, &bytes.Buffer{})
	require.NoError(t, runScan(context.Background(), testSettings(), root, dbPath, progress, &out))

	var files []docmeta.FileMetadata
	require.NoError(t, json.Unmarshal(out.Bytes(), &files))
	require.Len(t, files, 3)
	assert.Equal(t, filepath.Join(root, "src/index.ts"), files[0].Path)
	assert.Equal(t, "python", files[1].Language)
	assert.Equal(t, "trim", files[2].Functions[0].Name)

	db, err := storage.Open(dbPath)
	require.NoError(t, err)
	defer db.Close()

	var runID string
	require.NoError(t, db.QueryRow("SELECT id FROM scan_runs").Scan(&runID))
	params, err := storage.NewReader(db).AnnotationsByTag(context.Background(), runID, "@param")
	require.NoError(t, err)
	assert.Len(t, params, 2)
}

func TestRunScan_MissingDirectory(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := runScan(context.Background(), testSettings(), filepath.Join(t.TempDir(), "missing"), "",
		&indexer.NoOpProgressReporter{}, &out)
	assert.ErrorIs(t, err, docmeta.ErrIO)
}

func TestHandleChanges(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	present := filepath.Join(dir, "a.rb")
	require.NoError(t, os.WriteFile(present, []byte("# @param x value\ndef a(x)\nend\n"), 0644))
	removed := filepath.Join(dir, "gone.rb")

	var out bytes.Buffer
	extractor := indexer.NewExtractor(docmeta.DefaultAnnotationConfig())
	handleChanges(context.Background(), extractor, []string{present, removed}, &out)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1)

	var file docmeta.FileMetadata
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &file))
	assert.Equal(t, present, file.Path)
	assert.Equal(t, "a", file.Functions[0].Name)
	assert.Equal(t, "x value", file.Functions[0].Annotations[0].Content)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	defer versionCmd.SetOut(nil)

	versionCmd.Run(versionCmd, nil)
	assert.Contains(t, out.String(), "fndoc dev")
}
