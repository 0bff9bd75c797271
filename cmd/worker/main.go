package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/briiitelord/midnightLaundry/internal/audio"
	"github.com/briiitelord/midnightLaundry/internal/config"
	"github.com/briiitelord/midnightLaundry/internal/domain/repository"
	"github.com/briiitelord/midnightLaundry/internal/fetch"
	"github.com/briiitelord/midnightLaundry/internal/infrastructure/cache"
	"github.com/briiitelord/midnightLaundry/internal/infrastructure/postgres"
	"github.com/briiitelord/midnightLaundry/internal/infrastructure/queue"
	"github.com/briiitelord/midnightLaundry/internal/infrastructure/storage"
	"github.com/briiitelord/midnightLaundry/internal/usecase"
	"github.com/briiitelord/midnightLaundry/internal/videoframe"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Initialize infrastructure clients
	pgClient, err := postgres.NewClient(ctx, postgres.DefaultClientConfig(cfg.Database.DSN()))
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer pgClient.Close()
	logger.Info("connected to PostgreSQL")

	storageClient, err := storage.NewClient(ctx, storage.ClientConfig{
		Endpoint:       cfg.MinIO.Endpoint,
		PublicEndpoint: cfg.MinIO.PublicEndpoint,
		AccessKey:      cfg.MinIO.AccessKey,
		SecretKey:      cfg.MinIO.SecretKey,
		Buckets:        []string{cfg.Preview.MusicBucket, cfg.Preview.VideoBucket},
		UseSSL:         cfg.MinIO.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to MinIO: %w", err)
	}
	logger.Info("connected to MinIO")

	queueClient, err := queue.NewClient(ctx, queue.DefaultClientConfig(cfg.RabbitMQ.URL()))
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	defer queueClient.Close()
	logger.Info("connected to RabbitMQ")

	// Redis client for invalidating cached video metadata after updates
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	logger.Info("connected to Redis")

	// Initialize repositories and preview pipelines
	musicRepo := postgres.NewMusicRepository(pgClient.Pool())
	videoRepo := postgres.NewVideoRepository(pgClient.Pool())
	videoCache := cache.NewRedisVideoCache(redisClient)

	fetcher := fetch.NewHTTPFetcher(fetch.DefaultHTTPClientConfig())
	audioPreview := usecase.NewAudioPreviewService(
		fetcher,
		audio.NewFormatDecoder(),
		storageClient,
		usecase.AudioPreviewServiceConfig{
			DurationSeconds: cfg.Preview.AudioDurationSeconds,
			Bucket:          cfg.Preview.MusicBucket,
		},
	)

	sampler := videoframe.NewFFmpegSampler(videoframe.FFmpegConfig{
		FFmpegPath:  cfg.Preview.FFmpegPath,
		FFprobePath: cfg.Preview.FFprobePath,
	})
	videoPreview := usecase.NewVideoPreviewService(
		sampler,
		storageClient,
		usecase.VideoPreviewServiceConfig{
			MaxFrameWidth: cfg.Preview.MaxFrameWidth,
			JPEGQuality:   cfg.Preview.JPEGQuality,
			Bucket:        cfg.Preview.VideoBucket,
		},
	)

	taskSvc := usecase.NewPreviewTaskService(
		musicRepo,
		videoRepo,
		audioPreview,
		videoPreview,
		videoCache,
		usecase.PreviewTaskServiceConfig{
			MaxRetries:  cfg.Worker.MaxRetries,
			TaskTimeout: cfg.Worker.TaskTimeout,
		},
	)

	// Setup signal handling for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// WaitGroup to track in-flight tasks
	var wg sync.WaitGroup

	// Start consuming messages in a goroutine
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting worker, consuming preview tasks")
		err := queueClient.ConsumePreviewTasks(ctx, func(task repository.PreviewTask) error {
			wg.Add(1)
			defer wg.Done()

			logger.Info("processing task",
				slog.String("kind", string(task.Kind)),
				slog.String("item_id", task.ItemID.String()),
				slog.Int("retry_count", task.RetryCount),
			)

			if err := taskSvc.ProcessTask(ctx, task); err != nil {
				logger.Error("task processing failed",
					slog.String("kind", string(task.Kind)),
					slog.String("item_id", task.ItemID.String()),
					slog.Int("retry_count", task.RetryCount),
					slog.String("error", err.Error()),
				)
				return err
			}

			logger.Info("task completed",
				slog.String("kind", string(task.Kind)),
				slog.String("item_id", task.ItemID.String()),
			)
			return nil
		})
		if err != nil && ctx.Err() == nil {
			errCh <- fmt.Errorf("consumer error: %w", err)
		}
	}()

	// Wait for shutdown signal or error
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down worker", slog.String("signal", sig.String()))
	}

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Worker.ShutdownTimeout)
	defer shutdownCancel()

	// Cancel the main context to stop consuming new messages
	cancel()

	// Wait for in-flight tasks to complete (or timeout)
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("all in-flight tasks completed")
	case <-shutdownCtx.Done():
		logger.Warn("shutdown timeout exceeded, some tasks may not have completed")
	}

	logger.Info("worker stopped")
	return nil
}
