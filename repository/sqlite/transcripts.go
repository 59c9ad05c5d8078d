package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/sethvargo/go-retry"

	"github.com/nijaru/yt-transcript/errors"
	"github.com/nijaru/yt-transcript/models"
)

type Repository struct {
	db *DB
}

func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// Save inserts t, retrying while sqlite reports the database as locked.
func (r *Repository) Save(ctx context.Context, t *models.Transcript) error {
	const op = "SQLiteRepository.Save"

	comments, err := json.Marshal(commentsOrEmpty(t.Comments))
	if err != nil {
		return errors.Internal(op, err, "Failed to encode comments")
	}

	backoff := retry.WithMaxRetries(r.db.config.MaxRetries, retry.NewConstant(r.db.config.RetryDelay))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := r.save(ctx, t, comments); err != nil {
			if isLockError(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return errors.Internal(op, err, "Failed to save transcript")
	}
	return nil
}

func (r *Repository) save(ctx context.Context, t *models.Transcript, comments []byte) error {
	_, err := r.db.statements.insert.ExecContext(ctx,
		t.ID,
		t.VideoID,
		t.URL,
		t.Title,
		t.RequestedLanguage,
		t.Language,
		t.Fallback,
		t.Selected,
		t.Text,
		string(comments),
		t.CreatedAt.UTC(),
	)
	return err
}

func (r *Repository) Find(ctx context.Context, id string) (*models.Transcript, error) {
	const op = "SQLiteRepository.Find"

	t, err := scanTranscript(r.db.statements.get.QueryRowContext(ctx, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound(op, nil, "Transcript not found")
	}
	if err != nil {
		return nil, errors.Internal(op, err, "Failed to query transcript")
	}
	return t, nil
}

// FindByVideoID returns every transcript recorded for videoID, newest first.
func (r *Repository) FindByVideoID(ctx context.Context, videoID string) ([]*models.Transcript, error) {
	const op = "SQLiteRepository.FindByVideoID"

	rows, err := r.db.statements.byVideoID.QueryContext(ctx, videoID)
	if err != nil {
		return nil, errors.Internal(op, err, "Failed to query transcripts")
	}
	defer rows.Close()

	transcripts := []*models.Transcript{}
	for rows.Next() {
		t, err := scanTranscript(rows)
		if err != nil {
			return nil, errors.Internal(op, err, "Failed to scan transcript")
		}
		transcripts = append(transcripts, t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Internal(op, err, "Failed to iterate transcripts")
	}
	return transcripts, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	const op = "SQLiteRepository.Delete"

	res, err := r.db.statements.delete.ExecContext(ctx, id)
	if err != nil {
		return errors.Internal(op, err, "Failed to delete transcript")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Internal(op, err, "Failed to delete transcript")
	}
	if n == 0 {
		return errors.NotFound(op, nil, "Transcript not found")
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTranscript(row scanner) (*models.Transcript, error) {
	t := &models.Transcript{}
	var comments string

	if err := row.Scan(
		&t.ID,
		&t.VideoID,
		&t.URL,
		&t.Title,
		&t.RequestedLanguage,
		&t.Language,
		&t.Fallback,
		&t.Selected,
		&t.Text,
		&comments,
		&t.CreatedAt,
	); err != nil {
		return nil, err
	}

	if comments != "" {
		if err := json.Unmarshal([]byte(comments), &t.Comments); err != nil {
			return nil, err
		}
	}
	if len(t.Comments) == 0 {
		t.Comments = nil
	}
	return t, nil
}

func commentsOrEmpty(c []models.Comment) []models.Comment {
	if c == nil {
		return []models.Comment{}
	}
	return c
}

func isLockError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "busy")
}
