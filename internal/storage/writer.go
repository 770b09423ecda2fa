package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/mvp-joe/fndoc/internal/docmeta"
)

// Writer exports extraction results to SQLite.
type Writer struct {
	db  *sql.DB
	now func() time.Time
}

// NewWriter creates a Writer instance.
// DB must have schema already created via CreateSchema().
func NewWriter(db *sql.DB) *Writer {
	return &Writer{db: db, now: time.Now}
}

// WriteRun stores one scan in a single transaction and returns its run ID.
// Functions keep their document order and annotations their comment order.
func (w *Writer) WriteRun(ctx context.Context, root string, files []*docmeta.FileMetadata) (string, error) {
	runID := uuid.New().String()

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	_, err = sq.Insert("scan_runs").
		Columns("id", "root", "started_at").
		Values(runID, root, w.now().UTC().Format(time.RFC3339)).
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to insert scan run: %w", err)
	}

	for _, file := range files {
		if file == nil {
			continue
		}
		for ordinal, fn := range file.Functions {
			functionID, err := insertFunction(ctx, tx, runID, file, ordinal, fn)
			if err != nil {
				return "", err
			}
			if err := insertAnnotations(ctx, tx, functionID, fn.Annotations); err != nil {
				return "", fmt.Errorf("failed to insert annotations for %s in %s: %w", fn.Name, file.Path, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit scan run: %w", err)
	}

	return runID, nil
}

func insertFunction(ctx context.Context, tx *sql.Tx, runID string, file *docmeta.FileMetadata, ordinal int, fn docmeta.FunctionMetadata) (int64, error) {
	result, err := sq.Insert("functions").
		Columns("run_id", "file_path", "language", "name", "line", `"column"`, "ordinal").
		Values(runID, file.Path, file.Language, fn.Name, fn.Location.Line, fn.Location.Column, ordinal).
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to insert function %s in %s: %w", fn.Name, file.Path, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get function id: %w", err)
	}
	return id, nil
}

func insertAnnotations(ctx context.Context, tx *sql.Tx, functionID int64, annotations []docmeta.AnnotationMetadata) error {
	if len(annotations) == 0 {
		return nil
	}

	builder := sq.Insert("annotations").
		Columns("function_id", "tag", "content", "is_multi_line", "ordinal")
	for ordinal, a := range annotations {
		builder = builder.Values(functionID, a.Tag, a.Content, a.IsMultiLine, ordinal)
	}

	_, err := builder.RunWith(tx).ExecContext(ctx)
	return err
}

// DeleteRun removes a run. Functions and annotations cascade.
func (w *Writer) DeleteRun(ctx context.Context, runID string) error {
	result, err := sq.Delete("scan_runs").
		Where(sq.Eq{"id": runID}).
		RunWith(w.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete run %s: %w", runID, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete run %s: %w", runID, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return nil
}
