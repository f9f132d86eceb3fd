package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
)

// Config holds all configurable paths and import settings.
type Config struct {
	// Paths
	TextureDir string `json:"texture_dir"`
	OutputDir  string `json:"output_dir"`

	// Import options
	Scale         float64 `json:"scale"`
	UpAxis        string  `json:"up_axis"` // "as-stored" or "y-up"
	GroupIntoOne  *bool   `json:"group_into_one,omitempty"`
	ContainerName string  `json:"container_name"`
	CreateParent  *bool   `json:"create_parent,omitempty"`
	ParentName    string  `json:"parent_name"`

	// Output settings
	Binary      bool `json:"glb"`
	Preview     bool `json:"preview"`
	PreviewSize int  `json:"preview_size"`
	Supersample int  `json:"supersample"`
	Workers     int  `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	TextureDir    string
	OutputDir     string
	Scale         float64
	UpAxis        string
	ContainerName string
	ParentName    string
	Workers       int
}

// Resolve applies CLI overrides and fills any remaining empty fields with
// defaults matching the historical importer.
func (c *Config) Resolve(flags Flags) {
	if flags.TextureDir != "" {
		c.TextureDir = flags.TextureDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Scale > 0 {
		c.Scale = flags.Scale
	}
	if flags.UpAxis != "" {
		c.UpAxis = flags.UpAxis
	}
	if flags.ContainerName != "" {
		c.ContainerName = flags.ContainerName
	}
	if flags.ParentName != "" {
		c.ParentName = flags.ParentName
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.OutputDir == "" {
		c.OutputDir = "geo-export"
	}
	if c.Scale <= 0 {
		c.Scale = 1.0
	}
	if c.UpAxis == "" {
		c.UpAxis = "as-stored"
	}
	if c.ContainerName == "" {
		c.ContainerName = "I76_GEO_Batch"
	}
	if c.ParentName == "" {
		c.ParentName = "I76_GEO_Parts"
	}
	if c.PreviewSize <= 0 {
		c.PreviewSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Grouped reports the group-into-one-container option (default true).
func (c *Config) Grouped() bool {
	if c.GroupIntoOne == nil {
		return true
	}
	return *c.GroupIntoOne
}

// Parented reports the create-parent-node option (default true).
func (c *Config) Parented() bool {
	if c.CreateParent == nil {
		return true
	}
	return *c.CreateParent
}
