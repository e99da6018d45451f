package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"startpost/internal/processor"
	"startpost/internal/storage"
	"startpost/internal/transcode"
	"startpost/internal/webhook"
	"startpost/pkg/config"
)

var processEventPath string

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Render and publish the formats of an uploaded video",
	Long: `Process a dispatch event: download the source video, render vertical, horizontal
and square versions with thumbnails, publish them, and notify the backend.`,
	Args: cobra.NoArgs,
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVarP(&processEventPath, "event", "e", "", "Dispatch event JSON (default $GITHUB_EVENT_PATH)")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := config.Load()

	eventPath := processEventPath
	if eventPath == "" {
		eventPath = cfg.GitHubEventPath
	}

	job, err := processor.LoadEvent(eventPath)
	if err != nil {
		return err
	}

	publisher, closePublisher, err := buildPublisher(ctx, cfg)
	if err != nil {
		return err
	}
	defer closePublisher()

	proc := processor.New(processor.Options{
		Renderer: transcode.NewTranscoder(transcode.Options{
			FFmpegPath:      cfg.Processing.FFmpegPath,
			CRF:             cfg.Processing.CRF,
			Preset:          cfg.Processing.Preset,
			AudioBitrate:    cfg.Processing.AudioBitrate,
			ThumbnailOffset: cfg.Processing.ThumbnailOffset,
		}),
		Publisher:      publisher,
		Notifier:       webhook.NewNotifier(cfg.Webhook.BaseURL, cfg.Webhook.Timeout),
		WorkDir:        cfg.Processing.WorkDir,
		PublicIDPrefix: cfg.Processing.PublicIDPrefix,
	})

	slog.Info("Processing video", "video_id", job.VideoID, "title", job.Title, "storage", cfg.Processing.Storage)

	report, err := proc.Run(ctx, job)
	if err != nil {
		return err
	}

	fmt.Println(successStyle.Render("✓ Processing complete, backend notified"))
	for _, v := range report.Versions {
		fmt.Printf("  %s %s\n", titleStyle.Render(v.Format), infoStyle.Render(v.URL))
	}

	return nil
}

func buildPublisher(ctx context.Context, cfg *config.Config) (storage.Publisher, func(), error) {
	switch cfg.Processing.Storage {
	case config.StorageGCS:
		gcs, err := storage.NewGCSStorage(ctx, storage.GCSOptions{
			Bucket:          cfg.GCS.Bucket,
			CredentialsFile: cfg.GCS.CredentialsFile,
			PublicURLBase:   cfg.GCS.PublicURLBase,
		})
		if err != nil {
			return nil, nil, err
		}
		return gcs, func() { _ = gcs.Close() }, nil
	case config.StorageLocal:
		return storage.NewLocalStorage(cfg.Processing.OutputDir), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage %q (want %q or %q)", cfg.Processing.Storage, config.StorageLocal, config.StorageGCS)
	}
}
