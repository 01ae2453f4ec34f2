// Package projectconfig provides the ProjectConfig struct and loader for
// .mlreport.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the project configuration file looked up from the
// working directory.
const ConfigFileName = ".mlreport.yaml"

// Default values for project configuration. These are the single source of
// truth — New() references them and no other code should duplicate them.
const (
	DefaultThreshold  = 0.5
	DefaultOutputDir  = "report_metrics"
	DefaultReportName = "report_metrics"

	DefaultPlotWidth  = 12.0
	DefaultPlotHeight = 10.0
	DefaultPlotBins   = 10

	DefaultBootstrapConfidence = 0.95
)

// DefaultFormats are the report formats written when none are configured.
var DefaultFormats = []string{"markdown", "html", "json"}

// OutputConfig holds report destination settings.
type OutputConfig struct {
	Dir     string   `yaml:"dir,omitempty"`
	Name    string   `yaml:"name,omitempty"`
	Formats []string `yaml:"formats,omitempty"`
}

// PlotsConfig holds figure settings. Overrides are loose per-plot parameter
// maps keyed by plot name.
type PlotsConfig struct {
	Enabled   *bool                     `yaml:"enabled,omitempty"`
	Width     float64                   `yaml:"width,omitempty"`
	Height    float64                   `yaml:"height,omitempty"`
	Bins      int                       `yaml:"bins,omitempty"`
	Overrides map[string]map[string]any `yaml:"overrides,omitempty"`
}

// PublishConfig holds the Azure Blob Storage destination for published
// reports.
type PublishConfig struct {
	AccountURL string `yaml:"account_url,omitempty"`
	Container  string `yaml:"container,omitempty"`
	Prefix     string `yaml:"prefix,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .mlreport.yaml.
type ProjectConfig struct {
	Threshold *float64      `yaml:"threshold,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
	Plots     PlotsConfig   `yaml:"plots,omitempty"`
	Publish   PublishConfig `yaml:"publish,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Threshold: floatPtr(DefaultThreshold),
		Output: OutputConfig{
			Dir:     DefaultOutputDir,
			Name:    DefaultReportName,
			Formats: append([]string(nil), DefaultFormats...),
		},
		Plots: PlotsConfig{
			Enabled: boolPtr(true),
			Width:   DefaultPlotWidth,
			Height:  DefaultPlotHeight,
			Bins:    DefaultPlotBins,
		},
	}
}

// Load finds .mlreport.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // no file found → return defaults
		}
		return nil, fmt.Errorf("loading %s: %w", ConfigFileName, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigFileName, err)
	}

	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// Save writes the configuration to <dir>/.mlreport.yaml.
func (c *ProjectConfig) Save(dir string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", ConfigFileName, err)
	}
	return os.WriteFile(filepath.Join(dir, ConfigFileName), data, 0644)
}

// findConfigFile walks up from dir looking for .mlreport.yaml (max 10
// levels). Returns os.ErrNotExist if no config file is found. Propagates
// real I/O errors (e.g. permission denied) instead of silently swallowing
// them.
func findConfigFile(dir string) ([]byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, ConfigFileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Threshold != nil {
		dst.Threshold = src.Threshold
	}

	if src.Output.Dir != "" {
		dst.Output.Dir = src.Output.Dir
	}
	if src.Output.Name != "" {
		dst.Output.Name = src.Output.Name
	}
	if len(src.Output.Formats) > 0 {
		dst.Output.Formats = src.Output.Formats
	}

	if src.Plots.Enabled != nil {
		dst.Plots.Enabled = src.Plots.Enabled
	}
	if src.Plots.Width > 0 {
		dst.Plots.Width = src.Plots.Width
	}
	if src.Plots.Height > 0 {
		dst.Plots.Height = src.Plots.Height
	}
	if src.Plots.Bins > 0 {
		dst.Plots.Bins = src.Plots.Bins
	}
	if len(src.Plots.Overrides) > 0 {
		dst.Plots.Overrides = src.Plots.Overrides
	}

	if src.Publish.AccountURL != "" {
		dst.Publish.AccountURL = src.Publish.AccountURL
	}
	if src.Publish.Container != "" {
		dst.Publish.Container = src.Publish.Container
	}
	if src.Publish.Prefix != "" {
		dst.Publish.Prefix = src.Publish.Prefix
	}
}

func boolPtr(b bool) *bool { return &b }

func floatPtr(f float64) *float64 { return &f }
