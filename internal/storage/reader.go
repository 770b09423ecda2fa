package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/mvp-joe/fndoc/internal/docmeta"
)

// ErrRunNotFound indicates a run ID with no stored scan.
var ErrRunNotFound = errors.New("scan run not found")

// TaggedAnnotation is an annotation together with the function it documents.
type TaggedAnnotation struct {
	FilePath     string
	FunctionName string
	Location     docmeta.Location
	docmeta.AnnotationMetadata
}

// Run summarizes a stored scan.
type Run struct {
	ID        string
	Root      string
	StartedAt string
	Functions int
}

// Reader queries exported scans.
type Reader struct {
	db *sql.DB
}

// NewReader creates a Reader instance.
func NewReader(db *sql.DB) *Reader {
	return &Reader{db: db}
}

// GetRun returns the summary of one run.
func (r *Reader) GetRun(ctx context.Context, runID string) (*Run, error) {
	run := &Run{}
	err := sq.Select("r.id", "r.root", "r.started_at", "COUNT(f.id)").
		From("scan_runs r").
		LeftJoin("functions f ON f.run_id = r.id").
		Where(sq.Eq{"r.id": runID}).
		GroupBy("r.id").
		RunWith(r.db).
		QueryRowContext(ctx).
		Scan(&run.ID, &run.Root, &run.StartedAt, &run.Functions)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run %s: %w", runID, err)
	}
	return run, nil
}

// AnnotationsByTag lists every annotation with the given tag in a run,
// ordered by file, function and comment position.
func (r *Reader) AnnotationsByTag(ctx context.Context, runID, tag string) ([]TaggedAnnotation, error) {
	rows, err := sq.Select("f.file_path", "f.name", "f.line", `f."column"`, "a.tag", "a.content", "a.is_multi_line").
		From("annotations a").
		Join("functions f ON f.id = a.function_id").
		Where(sq.Eq{"f.run_id": runID, "a.tag": tag}).
		OrderBy("f.file_path", "f.ordinal", "a.ordinal").
		RunWith(r.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query annotations for tag %s: %w", tag, err)
	}
	defer rows.Close()

	result := []TaggedAnnotation{}
	for rows.Next() {
		var a TaggedAnnotation
		if err := rows.Scan(&a.FilePath, &a.FunctionName, &a.Location.Line, &a.Location.Column,
			&a.Tag, &a.Content, &a.IsMultiLine); err != nil {
			return nil, fmt.Errorf("failed to scan annotation: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

// LoadRun rebuilds the file metadata of a run in file path order. Files
// without functions have no rows and are not returned.
func (r *Reader) LoadRun(ctx context.Context, runID string) ([]*docmeta.FileMetadata, error) {
	if _, err := r.GetRun(ctx, runID); err != nil {
		return nil, err
	}

	rows, err := sq.Select("f.id", "f.file_path", "f.language", "f.name", "f.line", `f."column"`,
		"a.tag", "a.content", "a.is_multi_line").
		From("functions f").
		LeftJoin("annotations a ON a.function_id = f.id").
		Where(sq.Eq{"f.run_id": runID}).
		OrderBy("f.file_path", "f.ordinal", "a.ordinal").
		RunWith(r.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query run %s: %w", runID, err)
	}
	defer rows.Close()

	files := []*docmeta.FileMetadata{}
	var (
		current   *docmeta.FileMetadata
		currentFn int64 = -1
	)
	for rows.Next() {
		var (
			id          int64
			path, lang  string
			fn          docmeta.FunctionMetadata
			tag, value  sql.NullString
			isMultiLine sql.NullBool
		)
		if err := rows.Scan(&id, &path, &lang, &fn.Name, &fn.Location.Line, &fn.Location.Column,
			&tag, &value, &isMultiLine); err != nil {
			return nil, fmt.Errorf("failed to scan function: %w", err)
		}

		if current == nil || current.Path != path {
			current = &docmeta.FileMetadata{Path: path, Language: lang, Functions: []docmeta.FunctionMetadata{}}
			files = append(files, current)
		}
		if id != currentFn {
			fn.Annotations = []docmeta.AnnotationMetadata{}
			current.Functions = append(current.Functions, fn)
			currentFn = id
		}
		if tag.Valid {
			last := &current.Functions[len(current.Functions)-1]
			last.Annotations = append(last.Annotations, docmeta.AnnotationMetadata{
				Tag:         tag.String,
				Content:     value.String,
				IsMultiLine: isMultiLine.Bool,
			})
		}
	}
	return files, rows.Err()
}
