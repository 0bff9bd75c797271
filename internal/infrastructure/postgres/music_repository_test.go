package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"

	"github.com/briiitelord/midnightLaundry/internal/domain/model"
	"github.com/briiitelord/midnightLaundry/internal/domain/repository"
)

func TestMusicRepository_GetByID(t *testing.T) {
	now := time.Now()
	musicID := uuid.New()

	tests := []struct {
		name    string
		id      uuid.UUID
		mockFn  func(mock pgxmock.PgxPoolIface)
		want    *model.MusicItem
		wantErr error
	}{
		{
			name: "successful retrieval",
			id:   musicID,
			mockFn: func(mock pgxmock.PgxPoolIface) {
				fileURL := "https://cdn.example.com/music/track.mp3"
				rows := pgxmock.NewRows([]string{
					"id", "title", "category", "file_url", "preview_url", "preview_status", "created_at", "updated_at",
				}).AddRow(
					musicID, "Night Drive", "synthwave", &fileURL, nil, nil, now, now,
				)
				mock.ExpectQuery("SELECT .* FROM music_items WHERE id").
					WithArgs(musicID).
					WillReturnRows(rows)
			},
			want: &model.MusicItem{
				ID:       musicID,
				Title:    "Night Drive",
				Category: "synthwave",
				FileURL:  "https://cdn.example.com/music/track.mp3",
			},
			wantErr: nil,
		},
		{
			name: "music item not found",
			id:   musicID,
			mockFn: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT .* FROM music_items WHERE id").
					WithArgs(musicID).
					WillReturnError(pgx.ErrNoRows)
			},
			want:    nil,
			wantErr: repository.ErrMusicNotFound,
		},
		{
			name: "with ready preview",
			id:   musicID,
			mockFn: func(mock pgxmock.PgxPoolIface) {
				fileURL := "https://cdn.example.com/music/track.mp3"
				previewURL := "https://cdn.example.com/music_previews/synthwave/track-preview-22s.wav"
				status := "ready"
				rows := pgxmock.NewRows([]string{
					"id", "title", "category", "file_url", "preview_url", "preview_status", "created_at", "updated_at",
				}).AddRow(
					musicID, "Night Drive", "synthwave", &fileURL, &previewURL, &status, now, now,
				)
				mock.ExpectQuery("SELECT .* FROM music_items WHERE id").
					WithArgs(musicID).
					WillReturnRows(rows)
			},
			want: &model.MusicItem{
				ID:            musicID,
				Title:         "Night Drive",
				Category:      "synthwave",
				FileURL:       "https://cdn.example.com/music/track.mp3",
				PreviewURL:    "https://cdn.example.com/music_previews/synthwave/track-preview-22s.wav",
				PreviewStatus: model.PreviewStatusReady,
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			if err != nil {
				t.Fatalf("failed to create mock: %v", err)
			}
			defer mock.Close()

			tt.mockFn(mock)

			repo := NewMusicRepository(mock)
			got, err := repo.GetByID(context.Background(), tt.id)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("GetByID() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Errorf("GetByID() unexpected error = %v", err)
				return
			}

			if got.ID != tt.want.ID ||
				got.Title != tt.want.Title ||
				got.Category != tt.want.Category ||
				got.FileURL != tt.want.FileURL ||
				got.PreviewURL != tt.want.PreviewURL ||
				got.PreviewStatus != tt.want.PreviewStatus {
				t.Errorf("GetByID() = %+v, want %+v", got, tt.want)
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unfulfilled expectations: %v", err)
			}
		})
	}
}

func TestMusicRepository_List(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		mockFn  func(mock pgxmock.PgxPoolIface)
		want    int
		wantErr bool
	}{
		{
			name: "returns multiple items",
			mockFn: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{
					"id", "title", "category", "file_url", "preview_url", "preview_status", "created_at", "updated_at",
				}).
					AddRow(uuid.New(), "Track 1", "lofi", nil, nil, nil, now, now).
					AddRow(uuid.New(), "Track 2", "ambient", nil, nil, nil, now, now)
				mock.ExpectQuery("SELECT .* FROM music_items").
					WillReturnRows(rows)
			},
			want:    2,
			wantErr: false,
		},
		{
			name: "returns empty slice when no items",
			mockFn: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{
					"id", "title", "category", "file_url", "preview_url", "preview_status", "created_at", "updated_at",
				})
				mock.ExpectQuery("SELECT .* FROM music_items").
					WillReturnRows(rows)
			},
			want:    0,
			wantErr: false,
		},
		{
			name: "query error",
			mockFn: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT .* FROM music_items").
					WillReturnError(errors.New("connection refused"))
			},
			want:    0,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			if err != nil {
				t.Fatalf("failed to create mock: %v", err)
			}
			defer mock.Close()

			tt.mockFn(mock)

			repo := NewMusicRepository(mock)
			got, err := repo.List(context.Background())

			if (err != nil) != tt.wantErr {
				t.Errorf("List() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if len(got) != tt.want {
				t.Errorf("List() returned %d items, want %d", len(got), tt.want)
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unfulfilled expectations: %v", err)
			}
		})
	}
}

func TestMusicRepository_UpdatePreviewStatus(t *testing.T) {
	musicID := uuid.New()

	tests := []struct {
		name    string
		id      uuid.UUID
		status  model.PreviewStatus
		mockFn  func(mock pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name:   "successful status update",
			id:     musicID,
			status: model.PreviewStatusPending,
			mockFn: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec("UPDATE music_items").
					WithArgs(musicID, pgxmock.AnyArg(), pgxmock.AnyArg()).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			wantErr: nil,
		},
		{
			name:   "music item not found",
			id:     musicID,
			status: model.PreviewStatusFailed,
			mockFn: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec("UPDATE music_items").
					WithArgs(musicID, pgxmock.AnyArg(), pgxmock.AnyArg()).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			wantErr: repository.ErrMusicNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			if err != nil {
				t.Fatalf("failed to create mock: %v", err)
			}
			defer mock.Close()

			tt.mockFn(mock)

			repo := NewMusicRepository(mock)
			err = repo.UpdatePreviewStatus(context.Background(), tt.id, tt.status)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("UpdatePreviewStatus() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Errorf("UpdatePreviewStatus() unexpected error = %v", err)
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unfulfilled expectations: %v", err)
			}
		})
	}
}

func TestMusicRepository_SetPreviewReady(t *testing.T) {
	musicID := uuid.New()
	previewURL := "https://cdn.example.com/music_previews/lofi/track-preview-22s.wav"

	tests := []struct {
		name    string
		mockFn  func(mock pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name: "successful preview ready",
			mockFn: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec("UPDATE music_items").
					WithArgs(musicID, previewURL, "ready", pgxmock.AnyArg()).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			wantErr: nil,
		},
		{
			name: "music item not found",
			mockFn: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec("UPDATE music_items").
					WithArgs(musicID, previewURL, "ready", pgxmock.AnyArg()).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			wantErr: repository.ErrMusicNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			if err != nil {
				t.Fatalf("failed to create mock: %v", err)
			}
			defer mock.Close()

			tt.mockFn(mock)

			repo := NewMusicRepository(mock)
			err = repo.SetPreviewReady(context.Background(), musicID, previewURL)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("SetPreviewReady() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Errorf("SetPreviewReady() unexpected error = %v", err)
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unfulfilled expectations: %v", err)
			}
		})
	}
}
