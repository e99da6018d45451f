package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath      = "config.yaml"
	defaultAPIBaseURL      = "https://josdev1215.pythonanywhere.com"
	defaultAPITimeout      = 60 * time.Second
	defaultPollInterval    = 5 * time.Second
	defaultFFmpegPath      = "ffmpeg"
	defaultCRF             = 23
	defaultPreset          = "medium"
	defaultAudioBitrate    = "128k"
	defaultThumbnailOffset = "00:00:01"
	defaultPublicIDPrefix  = "startpost"
	defaultStorage         = StorageLocal
	defaultOutputDir       = "./output"
	defaultPublicURLBase   = "https://storage.googleapis.com"
	defaultWebhookTimeout  = 30 * time.Second
)

const (
	StorageLocal = "local"
	StorageGCS   = "gcs"
)

type Config struct {
	GitHubEventPath string

	API        APIConfig        `yaml:"api"`
	Polling    PollingConfig    `yaml:"polling"`
	Processing ProcessingConfig `yaml:"processing"`
	GCS        GCSConfig        `yaml:"gcs"`
	Webhook    WebhookConfig    `yaml:"webhook"`
}

type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type PollingConfig struct {
	Interval time.Duration `yaml:"interval"`
}

type ProcessingConfig struct {
	WorkDir         string `yaml:"work_dir"`
	FFmpegPath      string `yaml:"ffmpeg_path"`
	CRF             int    `yaml:"crf"`
	Preset          string `yaml:"preset"`
	AudioBitrate    string `yaml:"audio_bitrate"`
	ThumbnailOffset string `yaml:"thumbnail_offset"`
	PublicIDPrefix  string `yaml:"public_id_prefix"`
	Storage         string `yaml:"storage"` // "local" or "gcs"
	OutputDir       string `yaml:"output_dir"`
}

type GCSConfig struct {
	Bucket          string `yaml:"bucket"`
	CredentialsFile string `yaml:"credentials_file"`
	PublicURLBase   string `yaml:"public_url_base"`
}

type WebhookConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		GitHubEventPath: os.Getenv("GITHUB_EVENT_PATH"),
	}

	loadYAMLConfig(cfg, getEnvOrDefault("STARTPOST_CONFIG", defaultConfigPath))
	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	return cfg
}

func loadYAMLConfig(cfg *Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Debug("No config file found, using defaults", "path", path)
		return
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		slog.Error("Failed to parse config file", "path", path, "error", err)
	}
}

func applyEnvOverrides(cfg *Config) {
	cfg.API.BaseURL = getEnvOrDefault("STARTPOST_API_URL", cfg.API.BaseURL)
	cfg.Webhook.BaseURL = getEnvOrDefault("PYTHONANYWHERE_API_URL", cfg.Webhook.BaseURL)
	cfg.GCS.Bucket = getEnvOrDefault("GCS_BUCKET", cfg.GCS.Bucket)
	cfg.GCS.CredentialsFile = getEnvOrDefault("GOOGLE_APPLICATION_CREDENTIALS", cfg.GCS.CredentialsFile)
}

func applyDefaults(cfg *Config) {
	applyAPIDefaults(cfg)
	applyPollingDefaults(cfg)
	applyProcessingDefaults(cfg)
	applyGCSDefaults(cfg)
	applyWebhookDefaults(cfg)
}

func applyAPIDefaults(cfg *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = defaultAPIBaseURL
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = defaultAPITimeout
	}
}

func applyPollingDefaults(cfg *Config) {
	if cfg.Polling.Interval <= 0 {
		cfg.Polling.Interval = defaultPollInterval
	}
}

func applyProcessingDefaults(cfg *Config) {
	if cfg.Processing.WorkDir == "" {
		cfg.Processing.WorkDir = os.TempDir()
	}
	if cfg.Processing.FFmpegPath == "" {
		cfg.Processing.FFmpegPath = defaultFFmpegPath
	}
	if cfg.Processing.CRF == 0 {
		cfg.Processing.CRF = defaultCRF
	}
	if cfg.Processing.Preset == "" {
		cfg.Processing.Preset = defaultPreset
	}
	if cfg.Processing.AudioBitrate == "" {
		cfg.Processing.AudioBitrate = defaultAudioBitrate
	}
	if cfg.Processing.ThumbnailOffset == "" {
		cfg.Processing.ThumbnailOffset = defaultThumbnailOffset
	}
	if cfg.Processing.PublicIDPrefix == "" {
		cfg.Processing.PublicIDPrefix = defaultPublicIDPrefix
	}
	if cfg.Processing.Storage == "" {
		cfg.Processing.Storage = defaultStorage
	}
	if cfg.Processing.OutputDir == "" {
		cfg.Processing.OutputDir = defaultOutputDir
	}
}

func applyGCSDefaults(cfg *Config) {
	if cfg.GCS.PublicURLBase == "" {
		cfg.GCS.PublicURLBase = defaultPublicURLBase
	}
}

func applyWebhookDefaults(cfg *Config) {
	if cfg.Webhook.BaseURL == "" {
		cfg.Webhook.BaseURL = cfg.API.BaseURL
	}
	if cfg.Webhook.Timeout == 0 {
		cfg.Webhook.Timeout = defaultWebhookTimeout
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
