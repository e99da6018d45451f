package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"startpost/internal/videoservice"
	"startpost/pkg/config"
)

var pollInterval time.Duration

var pollCmd = &cobra.Command{
	Use:   "poll <video-id>",
	Short: "Follow a video's processing until it completes",
	Long:  `Check the video's status on a fixed interval until the backend reports it processed. Ctrl-C stops polling.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPoll,
}

func init() {
	pollCmd.Flags().DurationVarP(&pollInterval, "interval", "i", 0, "Polling interval (default from config)")
	rootCmd.AddCommand(pollCmd)
}

func runPoll(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	interval := pollInterval
	if interval == 0 {
		interval = cfg.Polling.Interval
	}

	return followProcessing(cmd, newVideoClient(cfg), args[0], interval)
}

func followProcessing(cmd *cobra.Command, client *videoservice.Client, videoID string, interval time.Duration) error {
	slog.Info("Polling processing status", "video_id", videoID, "interval", interval)

	var last videoservice.Result
	poller := client.PollProcessingStatus(cmd.Context(), videoID, func(result videoservice.Result) {
		last = result
		fmt.Printf("%s %s %s\n",
			time.Now().Format(time.TimeOnly),
			titleStyle.Render(videoID),
			renderStatus(result.VideoStatus()),
		)
	}, videoservice.PollOptions{Interval: interval})

	<-poller.Done()

	if last.IsProcessed() {
		fmt.Println(successStyle.Render("✓ Processing complete"))
		return nil
	}

	fmt.Println(warnStyle.Render("Polling stopped before processing finished"))
	return cmd.Context().Err()
}
