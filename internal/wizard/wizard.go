// Package wizard provides the interactive form behind `mlreport init`.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/evalforge/mlreport/internal/projectconfig"
)

// Answers holds the raw values collected by the form before they are folded
// into a project config.
type Answers struct {
	Threshold  string
	OutputDir  string
	ReportName string
	Formats    []string
	AccountURL string
	Container  string
	Prefix     string
}

// Run collects report settings interactively and returns the resulting
// project config.
func Run(in io.Reader, out io.Writer) (*projectconfig.ProjectConfig, error) {
	answers := Answers{
		Threshold:  strconv.FormatFloat(projectconfig.DefaultThreshold, 'g', -1, 64),
		OutputDir:  projectconfig.DefaultOutputDir,
		ReportName: projectconfig.DefaultReportName,
		Formats:    append([]string(nil), projectconfig.DefaultFormats...),
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Classification threshold").
				Description("Scores at or above this value count as the positive class").
				Placeholder("0.5").
				Value(&answers.Threshold).
				Validate(ValidateThreshold),
			huh.NewInput().
				Title("Output directory").
				Description("Where rendered reports and plots are written").
				Placeholder(projectconfig.DefaultOutputDir).
				Value(&answers.OutputDir).
				Validate(requireValue("output directory")),
			huh.NewInput().
				Title("Report name").
				Description("Base file name for the rendered report files").
				Placeholder(projectconfig.DefaultReportName).
				Value(&answers.ReportName).
				Validate(requireValue("report name")),
			huh.NewMultiSelect[string]().
				Title("Output formats").
				Options(
					huh.NewOption("Markdown", "markdown").Selected(true),
					huh.NewOption("HTML", "html").Selected(true),
					huh.NewOption("JSON", "json").Selected(true),
				).
				Value(&answers.Formats),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Azure storage account URL").
				Description("Leave blank to skip publish configuration").
				Placeholder("https://myaccount.blob.core.windows.net/").
				Value(&answers.AccountURL),
			huh.NewInput().
				Title("Blob container").
				Placeholder("reports").
				Value(&answers.Container),
			huh.NewInput().
				Title("Blob name prefix").
				Placeholder("experiments/run-1").
				Value(&answers.Prefix),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	return BuildConfig(answers)
}

// BuildConfig folds the collected answers onto the default project config.
func BuildConfig(answers Answers) (*projectconfig.ProjectConfig, error) {
	if err := ValidateThreshold(answers.Threshold); err != nil {
		return nil, err
	}
	threshold, _ := strconv.ParseFloat(strings.TrimSpace(answers.Threshold), 64)

	cfg := projectconfig.New()
	*cfg.Threshold = threshold
	if dir := strings.TrimSpace(answers.OutputDir); dir != "" {
		cfg.Output.Dir = dir
	}
	if name := strings.TrimSpace(answers.ReportName); name != "" {
		cfg.Output.Name = name
	}
	if len(answers.Formats) > 0 {
		cfg.Output.Formats = answers.Formats
	}

	cfg.Publish.AccountURL = strings.TrimSpace(answers.AccountURL)
	cfg.Publish.Container = strings.TrimSpace(answers.Container)
	cfg.Publish.Prefix = strings.TrimSpace(answers.Prefix)
	if cfg.Publish.AccountURL != "" && cfg.Publish.Container == "" {
		return nil, fmt.Errorf("a container is required when an account URL is set")
	}

	return cfg, nil
}

// ValidateThreshold checks that s parses as a float in [0, 1].
func ValidateThreshold(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("threshold must be a number")
	}
	if v < 0 || v > 1 {
		return fmt.Errorf("threshold must be between 0 and 1")
	}
	return nil
}

func requireValue(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}
