package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"rrm-mesh-tools/internal/rrm"
)

// Config holds all configurable paths, batch settings and decode tuning.
type Config struct {
	InputDir  string `json:"input_dir" toml:"input_dir"`
	OutputDir string `json:"output_dir" toml:"output_dir"`

	// TextureFormat is the batch texture output: png, webp, bmp or copy.
	TextureFormat string `json:"texture_format" toml:"texture_format"`
	Workers       int    `json:"workers" toml:"workers"`
	Watch         bool   `json:"watch" toml:"watch"`

	// DropDegenerate also filters zero-area triangles on the UV path.
	DropDegenerate bool `json:"drop_degenerate" toml:"drop_degenerate"`

	// Limits overrides the heuristic decode constants. Zero fields keep
	// their defaults, so a config file may override just one.
	Limits LimitsConfig `json:"limits" toml:"limits"`
}

// LimitsConfig mirrors rrm.Limits for the config file. The constants are
// empirically tuned; exposing them here lets new format revisions be handled
// without a code change.
type LimitsConfig struct {
	IndexSentinel uint32  `json:"index_sentinel" toml:"index_sentinel"`
	FloatMax      float64 `json:"float_max" toml:"float_max"`
	RunScoreMax   float64 `json:"run_score_max" toml:"run_score_max"`
	UVBound       float64 `json:"uv_bound" toml:"uv_bound"`
	MergeEpsilon  float64 `json:"merge_epsilon" toml:"merge_epsilon"`
}

// Load reads a JSON or TOML config file, picked by extension.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	InputDir      string
	OutputDir     string
	TextureFormat string
	Workers       int
}

// Resolve applies CLI-flag overrides and fills remaining empty fields with
// defaults. The Input/Output directory defaults match the original tooling.
func (c *Config) Resolve(flags Flags) {
	if flags.InputDir != "" {
		c.InputDir = flags.InputDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.TextureFormat != "" {
		c.TextureFormat = flags.TextureFormat
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.InputDir == "" {
		c.InputDir = "Input"
	}
	if c.OutputDir == "" {
		c.OutputDir = "Output"
	}
	if c.TextureFormat == "" {
		c.TextureFormat = "png"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// DecodeOptions maps the config onto decode options, keeping defaults for
// any limit left at zero.
func (c *Config) DecodeOptions() rrm.Options {
	opts := rrm.DefaultOptions()
	opts.DropDegenerate = c.DropDegenerate

	if c.Limits.IndexSentinel > 0 {
		opts.Limits.IndexSentinel = c.Limits.IndexSentinel
	}
	if c.Limits.FloatMax > 0 {
		opts.Limits.FloatMax = c.Limits.FloatMax
	}
	if c.Limits.RunScoreMax > 0 {
		opts.Limits.RunScoreMax = c.Limits.RunScoreMax
	}
	if c.Limits.UVBound > 0 {
		opts.Limits.UVBound = c.Limits.UVBound
	}
	if c.Limits.MergeEpsilon > 0 {
		opts.Limits.MergeEpsilon = float32(c.Limits.MergeEpsilon)
	}
	return opts
}
