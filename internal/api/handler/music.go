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

type MusicResponse struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Category      string `json:"category"`
	FileURL       string `json:"file_url,omitempty"`
	PreviewURL    string `json:"preview_url,omitempty"`
	PreviewStatus string `json:"preview_status,omitempty"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

type MusicListResponse struct {
	Items []MusicResponse `json:"items"`
}

// MusicHandler handles music catalog HTTP requests.
type MusicHandler struct {
	svc usecase.MusicService
}

// NewMusicHandler creates a new MusicHandler.
func NewMusicHandler(svc usecase.MusicService) *MusicHandler {
	return &MusicHandler{svc: svc}
}

// List handles GET /v1/music
func (h *MusicHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListMusic(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	resp := MusicListResponse{Items: make([]MusicResponse, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, toMusicResponse(item))
	}

	JSON(w, http.StatusOK, resp)
}

// Get handles GET /v1/music/{id}
func (h *MusicHandler) Get(w http.ResponseWriter, r *http.Request) {
	musicID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_music_id", "Music ID must be a valid UUID")
		return
	}

	item, err := h.svc.GetMusic(r.Context(), musicID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toMusicResponse(item))
}

// TriggerPreview handles POST /v1/music/{id}/preview
func (h *MusicHandler) TriggerPreview(w http.ResponseWriter, r *http.Request) {
	musicID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_music_id", "Music ID must be a valid UUID")
		return
	}

	if err := h.svc.TriggerPreview(r.Context(), musicID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

func (h *MusicHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrMusicNotFound):
		Error(w, http.StatusNotFound, "music_not_found", "Music item not found")
	case errors.Is(err, model.ErrMissingSourceFile):
		Error(w, http.StatusUnprocessableEntity, "missing_source_file", "Music item has no uploaded source file")
	case errors.Is(err, usecase.ErrPreviewInProgress):
		Error(w, http.StatusConflict, "preview_in_progress", "A preview run is already pending for this item")
	case errors.Is(err, model.ErrInvalidPreviewTransition):
		Error(w, http.StatusConflict, "invalid_preview_state", "Preview cannot be started from the current status")
	default:
		Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}

func toMusicResponse(m *model.MusicItem) MusicResponse {
	return MusicResponse{
		ID:            m.ID.String(),
		Title:         m.Title,
		Category:      m.Category,
		FileURL:       m.FileURL,
		PreviewURL:    m.PreviewURL,
		PreviewStatus: m.PreviewStatus.String(),
		CreatedAt:     m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:     m.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
