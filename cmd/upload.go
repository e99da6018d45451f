package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"startpost/internal/videoservice"
	"startpost/pkg/config"
)

var (
	uploadTitle       string
	uploadDescription string
	uploadPoll        bool
	uploadInterval    time.Duration
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a video to the backend",
	Long:  `Upload a video file with its title and description. Use --poll to follow processing afterwards.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runUpload,
}

func init() {
	uploadCmd.Flags().StringVarP(&uploadTitle, "title", "t", "", "Video title (prompted when empty)")
	uploadCmd.Flags().StringVarP(&uploadDescription, "description", "d", "", "Video description")
	uploadCmd.Flags().BoolVarP(&uploadPoll, "poll", "p", false, "Poll processing status after upload")
	uploadCmd.Flags().DurationVar(&uploadInterval, "interval", 0, "Polling interval (default from config)")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	path := args[0]

	if err := promptUploadDetails(path); err != nil {
		return err
	}

	cfg := config.Load()
	client := newVideoClient(cfg)
	ctx := cmd.Context()

	var result videoservice.Result
	err := runWithSpinner("Uploading "+filepath.Base(path), func() error {
		var uploadErr error
		result, uploadErr = client.UploadFile(ctx, path, uploadTitle, uploadDescription)
		return uploadErr
	})
	if err != nil {
		return err
	}

	videoID := result.VideoID()
	fmt.Println(titleStyle.Render("Uploaded ") + infoStyle.Render(videoID))
	if verbose {
		_ = printJSON(result)
	}

	if !uploadPoll {
		return nil
	}
	if videoID == "" {
		return errors.New("backend response has no video id to poll")
	}

	interval := uploadInterval
	if interval == 0 {
		interval = cfg.Polling.Interval
	}
	return followProcessing(cmd, client, videoID, interval)
}

func promptUploadDetails(path string) error {
	if uploadTitle != "" {
		return nil
	}
	if noInput {
		return errors.New("--title is required with --no-input")
	}

	uploadTitle = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&uploadTitle).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("title cannot be empty")
					}
					return nil
				}),
			huh.NewText().
				Title("Description").
				Value(&uploadDescription),
		),
	).Run()
}
