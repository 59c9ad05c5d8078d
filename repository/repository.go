package repository

import (
	"context"

	"github.com/nijaru/yt-transcript/models"
)

type TranscriptRepository interface {
	Save(ctx context.Context, t *models.Transcript) error
	Find(ctx context.Context, id string) (*models.Transcript, error)
	FindByVideoID(ctx context.Context, videoID string) ([]*models.Transcript, error)
	Delete(ctx context.Context, id string) error
}
