package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"startpost/pkg/config"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status <video-id>",
	Short: "Show a video's processing status",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Print the full backend response")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	client := newVideoClient(config.Load())

	result, err := client.CheckVideoStatus(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if statusJSON {
		return printJSON(result)
	}

	fmt.Printf("%s %s\n", titleStyle.Render(args[0]), renderStatus(result.VideoStatus()))
	return nil
}
