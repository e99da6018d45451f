package cmd

import (
	"github.com/spf13/cobra"

	"startpost/internal/videoservice"
	"startpost/pkg/config"
)

var (
	seoContent  string
	seoPlatform string
	seoKeywords []string
)

var seoCmd = &cobra.Command{
	Use:   "seo",
	Short: "Request SEO optimization for content",
	Long:  `Send content to the backend SEO optimizer for a target platform and print its suggestions.`,
	Args:  cobra.NoArgs,
	RunE:  runSEO,
}

func init() {
	seoCmd.Flags().StringVarP(&seoContent, "content", "c", "", "Content to optimize")
	seoCmd.Flags().StringVarP(&seoPlatform, "platform", "p", "", "Target platform (e.g. youtube, tiktok, instagram)")
	seoCmd.Flags().StringSliceVarP(&seoKeywords, "keyword", "k", nil, "Keyword to emphasize (repeatable)")
	_ = seoCmd.MarkFlagRequired("content")
	_ = seoCmd.MarkFlagRequired("platform")
	rootCmd.AddCommand(seoCmd)
}

func runSEO(cmd *cobra.Command, args []string) error {
	client := newVideoClient(config.Load())

	var result videoservice.Result
	err := runWithSpinner("Optimizing for "+seoPlatform, func() error {
		var seoErr error
		result, seoErr = client.OptimizeSEO(cmd.Context(), videoservice.SEORequest{
			Content:  seoContent,
			Platform: seoPlatform,
			Keywords: seoKeywords,
		})
		return seoErr
	})
	if err != nil {
		return err
	}

	return printJSON(result)
}
