package api

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nijaru/yt-transcript/middleware"
	"github.com/nijaru/yt-transcript/models"
	"github.com/nijaru/yt-transcript/services/transcript"
	"github.com/nijaru/yt-transcript/subtitles"
	"github.com/nijaru/yt-transcript/validation"
)

type TranscriptHandler struct {
	service      transcript.Service
	validator    *validation.Validator
	maxBodyBytes int64
}

func NewTranscriptHandler(service transcript.Service, validator *validation.Validator, maxBodyBytes int64) *TranscriptHandler {
	return &TranscriptHandler{
		service:      service,
		validator:    validator,
		maxBodyBytes: maxBodyBytes,
	}
}

type listResponse struct {
	VideoID     string                       `json:"video_id"`
	Count       int                          `json:"count"`
	Transcripts []*models.TranscriptResponse `json:"transcripts"`
}

// HandleCreate handles POST /api/v1/transcripts
func (h *TranscriptHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := h.validator.ValidateRequest(r, validation.RequestValidationOpts{
		MaxContentLength: h.maxBodyBytes,
		AllowedMethods:   []string{http.MethodPost},
		RequireJSON:      true,
	}); err != nil {
		respondError(w, r, err)
		return
	}

	var req models.TranscriptRequest
	if err := readJSON(w, r, h.maxBodyBytes, &req); err != nil {
		respondError(w, r, err)
		return
	}

	middleware.GetLogger(r.Context()).WithFields(logrus.Fields{
		"video_id":   req.VideoID,
		"language":   req.Language,
		"candidates": len(req.Candidates),
	}).Debug("Received transcript request")

	t, err := h.service.Process(r.Context(), &req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, models.NewTranscriptResponse(t))
}

// HandleGet handles GET /api/v1/transcripts/{id}
func (h *TranscriptHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	t, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, models.NewTranscriptResponse(t))
}

// HandleDelete handles DELETE /api/v1/transcripts/{id}
func (h *TranscriptHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]string{"id": id})
}

// HandleListByVideo handles GET /api/v1/videos/{videoID}/transcripts
func (h *TranscriptHandler) HandleListByVideo(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("videoID")

	list, err := h.service.ListByVideo(r.Context(), videoID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	out := listResponse{
		VideoID:     videoID,
		Count:       len(list),
		Transcripts: make([]*models.TranscriptResponse, 0, len(list)),
	}
	for _, t := range list {
		out.Transcripts = append(out.Transcripts, models.NewTranscriptResponse(t))
	}
	respondJSON(w, r, http.StatusOK, out)
}

// HandleGetForVideo handles GET /api/v1/videos/{videoID}/transcripts/{id}
func (h *TranscriptHandler) HandleGetForVideo(w http.ResponseWriter, r *http.Request) {
	t, err := h.service.GetForVideo(r.Context(), r.PathValue("videoID"), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, models.NewTranscriptResponse(t))
}

// HandleNormalize handles POST /api/v1/normalize. The body is raw SRT.
func (h *TranscriptHandler) HandleNormalize(w http.ResponseWriter, r *http.Request) {
	if err := h.validator.ValidateRequest(r, validation.RequestValidationOpts{
		MaxContentLength: h.maxBodyBytes,
	}); err != nil {
		respondError(w, r, err)
		return
	}

	body, err := readBody(w, r, h.maxBodyBytes)
	if err != nil {
		respondError(w, r, err)
		return
	}

	text := subtitles.Normalize(string(body))
	lines := 0
	if text != "" {
		lines = strings.Count(text, "\n") + 1
	}

	respondJSON(w, r, http.StatusOK, models.NormalizeResponse{Text: text, Lines: lines})
}
