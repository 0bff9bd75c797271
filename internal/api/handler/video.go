package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/briiitelord/midnightLaundry/internal/domain/model"
	"github.com/briiitelord/midnightLaundry/internal/domain/repository"
	"github.com/briiitelord/midnightLaundry/internal/usecase"
)

type VideoResponse struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	ContentRating     string  `json:"content_rating"`
	FileURL           string  `json:"file_url,omitempty"`
	PreviewURL        string  `json:"preview_url,omitempty"`
	PreviewBlurredURL string  `json:"preview_blurred_url,omitempty"`
	PreviewTimestamp  float64 `json:"preview_timestamp,omitempty"`
	PreviewStatus     string  `json:"preview_status,omitempty"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

type VideoListResponse struct {
	Items []VideoResponse `json:"items"`
}

// VideoHandler handles video catalog HTTP requests.
type VideoHandler struct {
	svc usecase.VideoService
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(svc usecase.VideoService) *VideoHandler {
	return &VideoHandler{svc: svc}
}

// List handles GET /v1/videos
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	videos, err := h.svc.ListVideos(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	resp := VideoListResponse{Items: make([]VideoResponse, 0, len(videos))}
	for _, v := range videos {
		resp.Items = append(resp.Items, toVideoResponse(v))
	}

	JSON(w, http.StatusOK, resp)
}

// Get handles GET /v1/videos/{id}
func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_video_id", "Video ID must be a valid UUID")
		return
	}

	video, err := h.svc.GetVideo(r.Context(), videoID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toVideoResponse(video))
}

// TriggerPreview handles POST /v1/videos/{id}/preview
func (h *VideoHandler) TriggerPreview(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_video_id", "Video ID must be a valid UUID")
		return
	}

	if err := h.svc.TriggerPreview(r.Context(), videoID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

func (h *VideoHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrVideoNotFound):
		Error(w, http.StatusNotFound, "video_not_found", "Video not found")
	case errors.Is(err, model.ErrMissingSourceFile):
		Error(w, http.StatusUnprocessableEntity, "missing_source_file", "Video has no uploaded source file")
	case errors.Is(err, model.ErrInvalidContentRating):
		Error(w, http.StatusUnprocessableEntity, "invalid_content_rating", "Content rating must be sfw or nsfw")
	case errors.Is(err, usecase.ErrPreviewInProgress):
		Error(w, http.StatusConflict, "preview_in_progress", "A preview run is already pending for this video")
	case errors.Is(err, model.ErrInvalidPreviewTransition):
		Error(w, http.StatusConflict, "invalid_preview_state", "Preview cannot be started from the current status")
	default:
		Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}

func toVideoResponse(v *model.Video) VideoResponse {
	return VideoResponse{
		ID:                v.ID.String(),
		Title:             v.Title,
		ContentRating:     v.ContentRating.String(),
		FileURL:           v.FileURL,
		PreviewURL:        v.PreviewURL,
		PreviewBlurredURL: v.PreviewBlurredURL,
		PreviewTimestamp:  v.PreviewTimestamp,
		PreviewStatus:     v.PreviewStatus.String(),
		CreatedAt:         v.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:         v.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
