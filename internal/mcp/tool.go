package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mvp-joe/fndoc/internal/docmeta"
	"github.com/mvp-joe/fndoc/internal/indexer"
	mcputils "github.com/mvp-joe/fndoc/internal/mcp-utils"
)

// ExtractToolName is the name the extraction tool is registered under.
const ExtractToolName = "fndoc_extract"

// ExtractRequest holds the arguments of the fndoc_extract tool.
type ExtractRequest struct {
	Path         string   `json:"path"`
	Tags         []string `json:"tags,omitempty"`
	Continuation *bool    `json:"continuation,omitempty"`
}

// config applies the request overrides to base.
func (r *ExtractRequest) config(base docmeta.AnnotationConfig) docmeta.AnnotationConfig {
	cfg := base.Clone()
	if len(r.Tags) > 0 {
		cfg.SupportedAnnotationTags = append([]string(nil), r.Tags...)
	}
	if r.Continuation != nil {
		cfg.MultiLineContinuation = *r.Continuation
	}
	return cfg
}

// AddExtractTool registers the fndoc_extract tool with an MCP server.
func AddExtractTool(s *server.MCPServer, handler *ExtractHandler) {
	tool := mcp.NewTool(
		ExtractToolName,
		mcp.WithDescription("Extract function declarations and their documentation annotations (e.g. @param, @returns) from a source file. Returns the file's functions with name, location and annotations as JSON."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Source file path, absolute or relative to the project root")),
		mcp.WithArray("tags",
			mcp.Description("Annotation tags to recognize, matched as line prefixes (default: the configured tags)")),
		mcp.WithBoolean("continuation",
			mcp.Description("Fold lines following a tag into its content (default: the configured value)")),
	)

	s.AddTool(tool, handler.Handle)
}

// ExtractHandler serves fndoc_extract calls. Results are cached across calls.
type ExtractHandler struct {
	rootDir string
	base    docmeta.AnnotationConfig
	cache   *indexer.ResultCache
}

// NewExtractHandler creates a handler resolving relative paths against rootDir.
// cache may be nil.
func NewExtractHandler(rootDir string, base docmeta.AnnotationConfig, cache *indexer.ResultCache) *ExtractHandler {
	return &ExtractHandler{
		rootDir: rootDir,
		base:    base.Clone(),
		cache:   cache,
	}
}

// Handle implements the MCP tool handler. Extraction failures are reported as
// tool errors so the client can show them; they are not protocol errors.
func (h *ExtractHandler) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args ExtractRequest
	if err := mcputils.CoerceBindArguments(request, &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.Path == "" {
		return mcp.NewToolResultError("path parameter is required"), nil
	}

	path, err := h.resolvePath(args.Path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var opts []indexer.Option
	if h.cache != nil {
		opts = append(opts, indexer.WithCache(h.cache))
	}

	result, err := indexer.NewExtractor(args.config(h.base), opts...).ExtractFile(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	jsonData, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}

	// Return as text result (mcp-go convention)
	return mcp.NewToolResultText(string(jsonData)), nil
}

// errOutsideRoot is returned for paths that resolve outside the project root.
var errOutsideRoot = errors.New("path must be inside the project root")

// resolvePath makes path absolute against the root and confines it there.
func (h *ExtractHandler) resolvePath(path string) (string, error) {
	root, err := filepath.Abs(h.rootDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve project root: %w", err)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	path = filepath.Clean(path)

	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errOutsideRoot
	}
	return path, nil
}
