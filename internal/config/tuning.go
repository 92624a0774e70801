package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// This is the single source of truth for all default tuning values.
const DefaultConfigPath = "config/tuning.defaults.json"

// TuningConfig represents the root configuration for tuning parameters.
// The same JSON schema is used for the defaults file and for per-run
// override files passed on the command line.
type TuningConfig struct {
	// Projection params
	MaxProjectionDistance *float64 `json:"max_projection_distance,omitempty"` // metres
	SearchBack            *int     `json:"search_back,omitempty"`
	SearchAhead           *int     `json:"search_ahead,omitempty"`
	WeightScale           *float64 `json:"weight_scale,omitempty"` // metres

	// Resampling params
	ResampleInterval *string `json:"resample_interval,omitempty"` // duration string like "1s"

	// Elevation smoothing params
	MedianWindow *int `json:"median_window,omitempty"`
	SmoothWindow *int `json:"smooth_window,omitempty"`
	SmoothOrder  *int `json:"smooth_order,omitempty"`

	// Dataset params
	WindowSize   *int  `json:"window_size,omitempty"` // seconds
	StepSize     *int  `json:"step_size,omitempty"`   // seconds
	UseElevation *bool `json:"use_elevation,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
// Use LoadTuningConfig to load actual values from the defaults file.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
// Fields omitted from the JSON file retain their default values, so
// partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	// Validate the config file path.
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse JSON into empty config. The Get* methods provide fallback
	// defaults for any fields not specified in the JSON.
	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical tuning defaults from DefaultConfigPath.
// It searches for the file in the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *TuningConfig {
	// Try paths from current dir up to repo root
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *TuningConfig) Validate() error {
	if c.MaxProjectionDistance != nil && *c.MaxProjectionDistance <= 0 {
		return fmt.Errorf("max_projection_distance must be positive, got %f", *c.MaxProjectionDistance)
	}
	if c.SearchBack != nil && *c.SearchBack < 0 {
		return fmt.Errorf("search_back must be non-negative, got %d", *c.SearchBack)
	}
	if c.SearchAhead != nil && *c.SearchAhead < 0 {
		return fmt.Errorf("search_ahead must be non-negative, got %d", *c.SearchAhead)
	}
	if c.WeightScale != nil && *c.WeightScale <= 0 {
		return fmt.Errorf("weight_scale must be positive, got %f", *c.WeightScale)
	}

	// Validate ResampleInterval can be parsed if set
	if c.ResampleInterval != nil && *c.ResampleInterval != "" {
		d, err := time.ParseDuration(*c.ResampleInterval)
		if err != nil {
			return fmt.Errorf("invalid resample_interval '%s': %w", *c.ResampleInterval, err)
		}
		if d <= 0 {
			return fmt.Errorf("resample_interval must be positive, got %s", d)
		}
	}

	// Smoothing windows must be odd so the filter is centred.
	if c.MedianWindow != nil && (*c.MedianWindow < 1 || *c.MedianWindow%2 == 0) {
		return fmt.Errorf("median_window must be a positive odd number, got %d", *c.MedianWindow)
	}
	if c.SmoothWindow != nil && (*c.SmoothWindow < 1 || *c.SmoothWindow%2 == 0) {
		return fmt.Errorf("smooth_window must be a positive odd number, got %d", *c.SmoothWindow)
	}
	if c.SmoothOrder != nil && *c.SmoothOrder < 1 {
		return fmt.Errorf("smooth_order must be positive, got %d", *c.SmoothOrder)
	}

	if c.WindowSize != nil && *c.WindowSize < 1 {
		return fmt.Errorf("window_size must be positive, got %d", *c.WindowSize)
	}
	if c.StepSize != nil && *c.StepSize < 1 {
		return fmt.Errorf("step_size must be positive, got %d", *c.StepSize)
	}

	return nil
}

// GetMaxProjectionDistance returns the max_projection_distance value or the default.
func (c *TuningConfig) GetMaxProjectionDistance() float64 {
	if c.MaxProjectionDistance == nil {
		return 30.0 // default: metres
	}
	return *c.MaxProjectionDistance
}

// GetSearchBack returns the search_back value or the default.
func (c *TuningConfig) GetSearchBack() int {
	if c.SearchBack == nil {
		return 20
	}
	return *c.SearchBack
}

// GetSearchAhead returns the search_ahead value or the default.
func (c *TuningConfig) GetSearchAhead() int {
	if c.SearchAhead == nil {
		return 80
	}
	return *c.SearchAhead
}

// GetWeightScale returns the weight_scale value or the default.
func (c *TuningConfig) GetWeightScale() float64 {
	if c.WeightScale == nil {
		return 10.0
	}
	return *c.WeightScale
}

// GetResampleInterval parses and returns the ResampleInterval as a time.Duration.
func (c *TuningConfig) GetResampleInterval() time.Duration {
	if c.ResampleInterval == nil || *c.ResampleInterval == "" {
		return time.Second // default
	}
	d, err := time.ParseDuration(*c.ResampleInterval)
	if err != nil {
		return time.Second // default on parse error
	}
	return d
}

// GetMedianWindow returns the median_window value or the default.
func (c *TuningConfig) GetMedianWindow() int {
	if c.MedianWindow == nil {
		return 5
	}
	return *c.MedianWindow
}

// GetSmoothWindow returns the smooth_window value or the default.
func (c *TuningConfig) GetSmoothWindow() int {
	if c.SmoothWindow == nil {
		return 7
	}
	return *c.SmoothWindow
}

// GetSmoothOrder returns the smooth_order value or the default.
func (c *TuningConfig) GetSmoothOrder() int {
	if c.SmoothOrder == nil {
		return 2
	}
	return *c.SmoothOrder
}

// GetWindowSize returns the window_size value or the default.
func (c *TuningConfig) GetWindowSize() int {
	if c.WindowSize == nil {
		return 3600 // default: one hour of 1 Hz samples
	}
	return *c.WindowSize
}

// GetStepSize returns the step_size value or the default.
func (c *TuningConfig) GetStepSize() int {
	if c.StepSize == nil {
		return 1800
	}
	return *c.StepSize
}

// GetUseElevation returns the use_elevation value or the default.
func (c *TuningConfig) GetUseElevation() bool {
	if c.UseElevation == nil {
		return true
	}
	return *c.UseElevation
}
