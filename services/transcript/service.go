package transcript

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nijaru/yt-transcript/errors"
	"github.com/nijaru/yt-transcript/infojson"
	"github.com/nijaru/yt-transcript/models"
	"github.com/nijaru/yt-transcript/repository"
	"github.com/nijaru/yt-transcript/storage"
	"github.com/nijaru/yt-transcript/subtitles"
	"github.com/nijaru/yt-transcript/validation"
)

type Repository = repository.TranscriptRepository

type service struct {
	repo      Repository
	archiver  storage.Archiver
	validator *validation.Validator
	config    Config
	logger    *logrus.Logger
	now       func() time.Time
}

// NewService wires the transcript pipeline. archiver may be nil.
func NewService(
	repo Repository,
	archiver storage.Archiver,
	validator *validation.Validator,
	config Config,
	logger *logrus.Logger,
) Service {
	if config.DefaultLanguage == "" {
		config.DefaultLanguage = subtitles.AutoLanguage
	}
	return &service{
		repo:      repo,
		archiver:  archiver,
		validator: validator,
		config:    config,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *service) Process(ctx context.Context, req *models.TranscriptRequest) (*models.Transcript, error) {
	const op = "TranscriptService.Process"

	if req == nil {
		return nil, errors.InvalidInput(op, nil, "Request is required")
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	if s.config.MaxCandidates > 0 && len(req.Candidates) > s.config.MaxCandidates {
		return nil, errors.InvalidInput(op, nil,
			fmt.Sprintf("At most %d subtitle candidates are accepted", s.config.MaxCandidates))
	}

	t := &models.Transcript{
		ID:      uuid.New().String(),
		URL:     strings.TrimSpace(req.URL),
		VideoID: strings.TrimSpace(req.VideoID),
	}

	if t.URL != "" {
		if err := s.validator.ValidateURL(t.URL); err != nil {
			return nil, err
		}
		if t.VideoID == "" {
			id, err := validation.ExtractVideoID(t.URL)
			if err != nil {
				return nil, err
			}
			t.VideoID = id
		}
	}

	selReq, err := s.selectionRequest(req)
	if err != nil {
		return nil, err
	}
	t.RequestedLanguage = selReq.Language

	logger := s.logger.WithFields(logrus.Fields{
		"operation":  op,
		"id":         t.ID,
		"video_id":   t.VideoID,
		"language":   selReq.Language,
		"candidates": len(req.Candidates),
	})

	if sel, ok := subtitles.Select(selReq, req.SubtitleCandidates()); ok {
		t.Selected = true
		t.Language = sel.Language
		t.Fallback = sel.Fallback
		t.Text = subtitles.Normalize(sel.Contents)
		if sel.Fallback {
			logger.WithField("selected", sel.Language).Info("Requested language unavailable, using fallback track")
		}
	} else {
		logger.Info("No subtitle candidates supplied")
	}

	if hasInfo(req.InfoJSON) {
		info, err := infojson.Parse(req.InfoJSON)
		if err != nil {
			return nil, errors.InvalidInput(op, err, "Invalid info_json")
		}
		t.Title = info.Title
		t.Comments = info.Comments
		if t.VideoID == "" {
			t.VideoID = info.ID
		}
	}

	t.CreatedAt = s.now().UTC()

	if err := s.repo.Save(ctx, t); err != nil {
		logger.WithError(err).Error("Failed to save transcript")
		return nil, err
	}

	s.archive(ctx, logger, t)

	logger.WithFields(logrus.Fields{
		"selected_language": t.Language,
		"fallback":          t.Fallback,
		"text_length":       len(t.Text),
	}).Info("Transcript processed")

	return t, nil
}

func (s *service) selectionRequest(req *models.TranscriptRequest) (subtitles.Request, error) {
	lang := strings.TrimSpace(req.Language)
	if lang == "" {
		lang = s.config.DefaultLanguage
	}
	if err := s.validator.ValidateLanguage(lang); err != nil {
		return subtitles.Request{}, err
	}

	priority := req.Priority
	if len(priority) == 0 {
		priority = s.config.Priority
	}
	for _, tag := range priority {
		if err := s.validator.ValidateLanguage(tag); err != nil {
			return subtitles.Request{}, err
		}
	}

	return subtitles.Request{Language: lang, Priority: priority}, nil
}

func (s *service) archive(ctx context.Context, logger *logrus.Entry, t *models.Transcript) {
	if s.archiver == nil {
		return
	}
	if err := s.archiver.ArchiveTranscript(ctx, t); err != nil {
		logger.WithError(err).Warn("Failed to archive transcript")
	}
}

func (s *service) Get(ctx context.Context, id string) (*models.Transcript, error) {
	const op = "TranscriptService.Get"

	if strings.TrimSpace(id) == "" {
		return nil, errors.InvalidInput(op, nil, "ID is required")
	}
	return s.repo.Find(ctx, id)
}

func (s *service) GetForVideo(ctx context.Context, videoID, id string) (*models.Transcript, error) {
	const op = "TranscriptService.GetForVideo"

	if strings.TrimSpace(videoID) == "" || strings.TrimSpace(id) == "" {
		return nil, errors.InvalidInput(op, nil, "Video ID and ID are required")
	}

	t, err := s.repo.Find(ctx, id)
	if err == nil {
		if t.VideoID != videoID {
			return nil, errors.NotFound(op, nil, "Transcript not found")
		}
		return t, nil
	}
	if !errors.IsNotFound(err) || s.archiver == nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"operation": op,
		"video_id":  videoID,
		"id":        id,
	}).Debug("Transcript not in database, checking archive")

	return s.archiver.FetchTranscript(ctx, videoID, id)
}

func (s *service) ListByVideo(ctx context.Context, videoID string) ([]*models.Transcript, error) {
	const op = "TranscriptService.ListByVideo"

	if strings.TrimSpace(videoID) == "" {
		return nil, errors.InvalidInput(op, nil, "Video ID is required")
	}
	return s.repo.FindByVideoID(ctx, videoID)
}

func (s *service) Delete(ctx context.Context, id string) error {
	const op = "TranscriptService.Delete"

	if strings.TrimSpace(id) == "" {
		return errors.InvalidInput(op, nil, "ID is required")
	}
	return s.repo.Delete(ctx, id)
}

func hasInfo(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}
