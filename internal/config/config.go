package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server   ServerConfig
	Worker   WorkerConfig
	Database DatabaseConfig
	MinIO    MinIOConfig
	RabbitMQ RabbitMQConfig
	Redis    RedisConfig
	Preview  PreviewConfig
}

type ServerConfig struct {
	Port            int           `envconfig:"API_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"API_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"API_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"API_SHUTDOWN_TIMEOUT" default:"10s"`
}

type WorkerConfig struct {
	MaxRetries      int           `envconfig:"WORKER_MAX_RETRIES" default:"3"`
	TaskTimeout     time.Duration `envconfig:"WORKER_TASK_TIMEOUT" default:"5m"`
	ShutdownTimeout time.Duration `envconfig:"WORKER_SHUTDOWN_TIMEOUT" default:"30s"`
}

type DatabaseConfig struct {
	Host     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	Port     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER" default:"laundry"`
	Password string `envconfig:"POSTGRES_PASSWORD" default:"laundry"`
	DBName   string `envconfig:"POSTGRES_DB" default:"laundry"`
	SSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

type MinIOConfig struct {
	Endpoint string `envconfig:"MINIO_ENDPOINT" default:"localhost:9000"`
	// PublicEndpoint, when set, is used to build the public URLs handed back
	// to the admin UI (e.g. a CDN hostname in front of the buckets).
	PublicEndpoint string `envconfig:"MINIO_PUBLIC_ENDPOINT" default:""`
	AccessKey      string `envconfig:"MINIO_ACCESS_KEY" default:"minioadmin"`
	SecretKey      string `envconfig:"MINIO_SECRET_KEY" default:"minioadmin"`
	UseSSL         bool   `envconfig:"MINIO_USE_SSL" default:"false"`
}

type RabbitMQConfig struct {
	Host     string `envconfig:"RABBITMQ_HOST" default:"localhost"`
	Port     int    `envconfig:"RABBITMQ_PORT" default:"5672"`
	User     string `envconfig:"RABBITMQ_USER" default:"laundry"`
	Password string `envconfig:"RABBITMQ_PASSWORD" default:"laundry"`
	VHost    string `envconfig:"RABBITMQ_VHOST" default:"/"`
}

func (c RabbitMQConfig) URL() string {
	return fmt.Sprintf(
		"amqp://%s:%s@%s:%d%s",
		c.User, c.Password, c.Host, c.Port, c.VHost,
	)
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// PreviewConfig tunes the preview pipelines. Bucket names and path layout are
// part of the storage contract with the public site, so changing them means
// regenerating every preview.
type PreviewConfig struct {
	AudioDurationSeconds float64 `envconfig:"PREVIEW_AUDIO_DURATION_SECONDS" default:"22"`
	MaxFrameWidth        int     `envconfig:"PREVIEW_MAX_FRAME_WIDTH" default:"640"`
	JPEGQuality          int     `envconfig:"PREVIEW_JPEG_QUALITY" default:"82"`
	MusicBucket          string  `envconfig:"PREVIEW_MUSIC_BUCKET" default:"music_previews"`
	VideoBucket          string  `envconfig:"PREVIEW_VIDEO_BUCKET" default:"video_previews"`
	FFmpegPath           string  `envconfig:"PREVIEW_FFMPEG_PATH" default:"ffmpeg"`
	FFprobePath          string  `envconfig:"PREVIEW_FFPROBE_PATH" default:"ffprobe"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
