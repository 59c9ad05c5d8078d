package sqlite

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	apperrors "github.com/nijaru/yt-transcript/errors"
)

const transcriptColumns = `id, video_id, url, title, requested_language, language,
               fallback, selected, text, comments, created_at`

const (
	insertTranscriptQuery = `
        INSERT INTO transcripts (` + transcriptColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `

	getTranscriptQuery = `
        SELECT ` + transcriptColumns + `
        FROM transcripts WHERE id = ?
    `

	getByVideoIDQuery = `
        SELECT ` + transcriptColumns + `
        FROM transcripts
        WHERE video_id = ?
        ORDER BY created_at DESC, rowid DESC
    `

	deleteTranscriptQuery = `
        DELETE FROM transcripts WHERE id = ?
    `
)

type PreparedStatements struct {
	insert    *sql.Stmt
	get       *sql.Stmt
	byVideoID *sql.Stmt
	delete    *sql.Stmt
}

func (stmts *PreparedStatements) Prepare(ctx context.Context, db *sql.DB) error {
	const op = "PreparedStatements.Prepare"

	var err error

	if stmts.insert, err = db.PrepareContext(ctx, insertTranscriptQuery); err != nil {
		return apperrors.Internal(op, err, "failed to prepare insert statement")
	}

	if stmts.get, err = db.PrepareContext(ctx, getTranscriptQuery); err != nil {
		return apperrors.Internal(op, err, "failed to prepare get statement")
	}

	if stmts.byVideoID, err = db.PrepareContext(ctx, getByVideoIDQuery); err != nil {
		return apperrors.Internal(op, err, "failed to prepare byVideoID statement")
	}

	if stmts.delete, err = db.PrepareContext(ctx, deleteTranscriptQuery); err != nil {
		return apperrors.Internal(op, err, "failed to prepare delete statement")
	}

	return nil
}

func (stmts *PreparedStatements) Close() error {
	var firstErr error

	for _, stmt := range [...]*sql.Stmt{stmts.insert, stmts.get, stmts.byVideoID, stmts.delete} {
		if stmt == nil {
			continue
		}
		if err := stmt.Close(); err != nil && firstErr == nil {
			firstErr = errors.Wrap(err, "close prepared statement")
		}
	}

	return firstErr
}
