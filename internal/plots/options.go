package plots

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Default plot dimensions in inches, matching the original report figures.
const (
	DefaultWidthInches  = 12.0
	DefaultHeightInches = 10.0
	DefaultBins         = 10
)

// Override adjusts a single named plot. Unset fields fall back to Options.
type Override struct {
	Title  string  `mapstructure:"title"`
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
}

// Options controls plot rendering for one report.
type Options struct {
	Width     float64 // inches
	Height    float64 // inches
	Bins      int     // histogram/calibration bin count
	Threshold float64 // decision threshold for the confusion matrix
	Overrides map[string]Override
}

// DefaultOptions returns the standard figure options.
func DefaultOptions() Options {
	return Options{
		Width:     DefaultWidthInches,
		Height:    DefaultHeightInches,
		Bins:      DefaultBins,
		Threshold: 0.5,
	}
}

// size returns the (width, height) for the named plot, applying any override.
func (o Options) size(name string) (float64, float64) {
	w, h := o.Width, o.Height
	if ov, ok := o.Overrides[name]; ok {
		if ov.Width > 0 {
			w = ov.Width
		}
		if ov.Height > 0 {
			h = ov.Height
		}
	}
	if w <= 0 {
		w = DefaultWidthInches
	}
	if h <= 0 {
		h = DefaultHeightInches
	}
	return w, h
}

// title returns the title for the named plot, preferring an override.
func (o Options) title(name, fallback string) string {
	if ov, ok := o.Overrides[name]; ok && ov.Title != "" {
		return ov.Title
	}
	return fallback
}

// DecodeOverrides converts loose per-plot config maps (as parsed from
// .mlreport.yaml) into typed overrides.
func DecodeOverrides(raw map[string]map[string]any) (map[string]Override, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[string]Override, len(raw))
	for name, params := range raw {
		var ov Override
		if err := mapstructure.Decode(params, &ov); err != nil {
			return nil, fmt.Errorf("plots: override %q: %w", name, err)
		}
		out[name] = ov
	}
	return out, nil
}
