package transcript

import (
	"context"

	"github.com/nijaru/yt-transcript/models"
)

type Service interface {
	// Process selects one subtitle track, normalizes it and records the outcome.
	Process(ctx context.Context, req *models.TranscriptRequest) (*models.Transcript, error)

	// Get retrieves a recorded transcript by ID
	Get(ctx context.Context, id string) (*models.Transcript, error)

	// GetForVideo is Get scoped to a video. It falls back to the archive
	// when the transcript is no longer in the local database.
	GetForVideo(ctx context.Context, videoID, id string) (*models.Transcript, error)

	// ListByVideo returns every transcript recorded for a video, newest first.
	ListByVideo(ctx context.Context, videoID string) ([]*models.Transcript, error)

	Delete(ctx context.Context, id string) error
}

type Config struct {
	// DefaultLanguage applies when a request names no language.
	DefaultLanguage string `json:"default_language"`

	// Priority is the auto-mode order used when a request has none.
	Priority []string `json:"priority"`

	MaxCandidates int `json:"max_candidates"`
}
