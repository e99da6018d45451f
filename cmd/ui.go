package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"

	"startpost/internal/videoservice"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

func runWithSpinner(title string, fn func() error) error {
	if noInput {
		return fn()
	}

	var err error
	_ = spinner.New().
		Title(title).
		Action(func() { err = fn() }).
		Run()
	if err != nil {
		return err
	}
	fmt.Println(successStyle.Render("✓ " + title))
	return nil
}

func renderStatus(status string) string {
	switch status {
	case videoservice.StatusProcessed:
		return successStyle.Render(status)
	case "":
		return warnStyle.Render("unknown")
	default:
		return infoStyle.Render(status)
	}
}

func printJSON(result videoservice.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("format result: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
