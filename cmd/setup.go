package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"startpost/internal/videoservice"
	"startpost/pkg/config"
)

const envFile = ".env"

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard for Startpost",
	Long:  `Check tools, create directories, and write the .env file used by the other commands.`,
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

type setupAnswers struct {
	APIURL          string
	WebhookURL      string
	Storage         string
	Bucket          string
	CredentialsFile string
}

func runSetup(cmd *cobra.Command, args []string) error {
	if noInput {
		return fmt.Errorf("setup is interactive and cannot run with --no-input")
	}

	fmt.Println(titleStyle.Render("Startpost Setup"))

	steps := []struct {
		name string
		fn   func() error
	}{
		{"Checking tools", checkTools},
		{"Creating directories", createDirectories},
		{"Configuring environment", configureEnv},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}

	return nil
}

func checkTools() error {
	if commandExists("ffmpeg") {
		fmt.Println(successStyle.Render("✓ ffmpeg found"))
		return nil
	}
	fmt.Println(warnStyle.Render("ffmpeg not found - `startpost process` needs it, install from https://ffmpeg.org"))
	return nil
}

func createDirectories() error {
	dir := config.Load().Processing.OutputDir
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	fmt.Println(successStyle.Render("✓ Created " + dir))
	return nil
}

func configureEnv() error {
	if _, err := os.Stat(envFile); err == nil {
		var overwrite bool
		if err := huh.NewConfirm().
			Title("Found existing .env file").
			Description("Overwrite?").
			Value(&overwrite).
			Run(); err != nil {
			return err
		}
		if !overwrite {
			fmt.Println(infoStyle.Render("Kept existing .env"))
			return nil
		}
	}

	answers := setupAnswers{
		APIURL:  videoservice.DefaultBaseURL,
		Storage: config.StorageLocal,
	}

	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Backend URL").
				Value(&answers.APIURL).
				Validate(required("Backend URL")),
			huh.NewInput().
				Title("Webhook URL").
				Description("Where the worker reports finished renditions (empty = backend URL)").
				Value(&answers.WebhookURL),
			huh.NewSelect[string]().
				Title("Rendition storage").
				Options(
					huh.NewOption("Local directory", config.StorageLocal),
					huh.NewOption("Google Cloud Storage", config.StorageGCS),
				).
				Value(&answers.Storage),
		),
	).Run(); err != nil {
		return err
	}

	if answers.Storage == config.StorageGCS {
		if err := configureGCS(&answers); err != nil {
			return err
		}
	}

	return writeEnvFile(envFromAnswers(answers))
}

func configureGCS(answers *setupAnswers) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("GCS bucket").
				Value(&answers.Bucket).
				Validate(required("Bucket")),
			huh.NewInput().
				Title("Service account JSON").
				Description("Leave empty to use application default credentials").
				Value(&answers.CredentialsFile),
		),
	).Run()
}

func envFromAnswers(a setupAnswers) map[string]string {
	env := map[string]string{
		"STARTPOST_API_URL":              strings.TrimSpace(a.APIURL),
		"PYTHONANYWHERE_API_URL":         strings.TrimSpace(a.WebhookURL),
		"GCS_BUCKET":                     strings.TrimSpace(a.Bucket),
		"GOOGLE_APPLICATION_CREDENTIALS": strings.TrimSpace(a.CredentialsFile),
	}

	for key, val := range env {
		if val == "" {
			delete(env, key)
		}
	}
	return env
}

func writeEnvFile(env map[string]string) error {
	if err := godotenv.Write(env, envFile); err != nil {
		return fmt.Errorf("write %s: %w", envFile, err)
	}

	fmt.Println(successStyle.Render("✓ Created .env file"))
	printNextSteps()
	return nil
}

func printNextSteps() {
	fmt.Println()
	fmt.Println(titleStyle.Render("Next steps:"))
	fmt.Println("  1. Set processing.storage in config.yaml if you chose GCS")
	fmt.Println("  2. Run: startpost upload ./my-video.mp4 --poll")
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
