package repository

import (
	"context"

	"github.com/google/uuid"
)

// TaskKind identifies which pipeline a preview task belongs to.
type TaskKind string

const (
	TaskKindAudio TaskKind = "audio"
	TaskKindVideo TaskKind = "video"
)

// PreviewTask represents a preview generation job message.
type PreviewTask struct {
	Kind       TaskKind  `json:"kind"`
	ItemID     uuid.UUID `json:"item_id"`
	RetryCount int       `json:"retry_count"`
}

// MessageQueue defines the interface for message queue operations.
// Implementations should be provided by the infrastructure layer (e.g., RabbitMQ).
type MessageQueue interface {
	// PublishPreviewTask sends a preview generation task to the queue.
	// Used by the API server to trigger async preview generation.
	PublishPreviewTask(ctx context.Context, task PreviewTask) error

	// ConsumePreviewTasks starts consuming preview tasks from the queue.
	// The handler function is called for each received task.
	// Used by the worker service; returns when the context is cancelled.
	ConsumePreviewTasks(ctx context.Context, handler func(task PreviewTask) error) error

	// Close gracefully closes the connection to the message queue.
	Close() error
}
