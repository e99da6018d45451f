package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"startpost/internal/videoservice"
	"startpost/pkg/config"
)

var (
	verbose bool
	noInput bool
)

var rootCmd = &cobra.Command{
	Use:   "startpost",
	Short: "Upload videos and optimize their SEO",
	Long: `Startpost talks to the StartPost backend: upload videos, follow their
processing, request SEO suggestions, and run the rendition worker.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noInput, "no-input", false, "Never prompt or animate; for scripts and CI")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		setupLogger()
	}
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func setupLogger() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}

func newVideoClient(cfg *config.Config) *videoservice.Client {
	return videoservice.NewClient(videoservice.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	})
}
