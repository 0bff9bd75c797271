package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/briiitelord/midnightLaundry/internal/domain/model"
	"github.com/briiitelord/midnightLaundry/internal/domain/repository"
)

// DBTX is an interface that abstracts pgxpool.Pool and pgx.Tx for testability.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// MusicRepository implements repository.MusicRepository using PostgreSQL.
type MusicRepository struct {
	db DBTX
}

// Compile-time verification that MusicRepository implements repository.MusicRepository.
var _ repository.MusicRepository = (*MusicRepository)(nil)

// NewMusicRepository creates a new MusicRepository instance.
func NewMusicRepository(db DBTX) *MusicRepository {
	return &MusicRepository{db: db}
}

// GetByID retrieves a music item by its unique identifier.
func (r *MusicRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.MusicItem, error) {
	const query = `
		SELECT id, title, category, file_url, preview_url, preview_status, created_at, updated_at
		FROM music_items
		WHERE id = $1
	`

	item, err := scanMusicItem(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrMusicNotFound
		}
		return nil, fmt.Errorf("failed to get music item by ID: %w", err)
	}

	return item, nil
}

// List retrieves all music items, newest first.
func (r *MusicRepository) List(ctx context.Context) ([]*model.MusicItem, error) {
	const query = `
		SELECT id, title, category, file_url, preview_url, preview_status, created_at, updated_at
		FROM music_items
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query music items: %w", err)
	}
	defer rows.Close()

	var items []*model.MusicItem
	for rows.Next() {
		item, err := scanMusicItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan music item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating music items: %w", err)
	}

	return items, nil
}

// UpdatePreviewStatus updates only the preview status field.
func (r *MusicRepository) UpdatePreviewStatus(ctx context.Context, id uuid.UUID, status model.PreviewStatus) error {
	const query = `
		UPDATE music_items
		SET preview_status = $2, updated_at = $3
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id, nullString(status.String()), time.Now())
	if err != nil {
		return fmt.Errorf("failed to update music preview status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrMusicNotFound
	}

	return nil
}

// SetPreviewReady stores the generated preview URL and marks the item ready.
func (r *MusicRepository) SetPreviewReady(ctx context.Context, id uuid.UUID, previewURL string) error {
	const query = `
		UPDATE music_items
		SET preview_url = $2, preview_status = $3, updated_at = $4
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id, previewURL, model.PreviewStatusReady.String(), time.Now())
	if err != nil {
		return fmt.Errorf("failed to set music preview ready: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrMusicNotFound
	}

	return nil
}

// scanMusicItem scans a single row into a MusicItem model.
func scanMusicItem(row pgx.Row) (*model.MusicItem, error) {
	var (
		item       model.MusicItem
		fileURL    *string
		previewURL *string
		status     *string
	)

	err := row.Scan(
		&item.ID,
		&item.Title,
		&item.Category,
		&fileURL,
		&previewURL,
		&status,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if fileURL != nil {
		item.FileURL = *fileURL
	}
	if previewURL != nil {
		item.PreviewURL = *previewURL
	}
	if status != nil {
		item.PreviewStatus = model.PreviewStatus(*status)
	}

	return &item, nil
}

// nullString returns nil for empty strings, otherwise returns a pointer to the string.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
