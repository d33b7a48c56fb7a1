package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds the engine configuration.
type Config struct {
	Seed       int64 `json:"seed"`
	ChunkSize  int   `json:"chunk_size"`  // horizontal chunk extent in blocks
	Height     int   `json:"height"`      // world height in blocks
	SeaLevel   int   `json:"sea_level"`   // water fills up to this height
	LoadRadius int   `json:"load_radius"` // chunk load radius around the viewer
	Hysteresis int   `json:"hysteresis"`  // extra radius kept resident before eviction
	Workers    int   `json:"workers"`     // generation worker count (0 = NumCPU)
	QueueDepth int   `json:"queue_depth"` // finished results buffered between frames

	DataDir string `json:"data_dir"` // asset cache location
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ChunkSize:  16,
		Height:     128,
		SeaLevel:   40,
		LoadRadius: 8,
		Hysteresis: 2,
		QueueDepth: 64,
		DataDir:    "data",
	}
}

// Load reads a JSON config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["chunk-size"] {
		cfg.ChunkSize = fromFile.ChunkSize
	}
	if !explicitFlags["height"] {
		cfg.Height = fromFile.Height
	}
	if !explicitFlags["sea-level"] {
		cfg.SeaLevel = fromFile.SeaLevel
	}
	if !explicitFlags["load-radius"] {
		cfg.LoadRadius = fromFile.LoadRadius
	}
	if !explicitFlags["hysteresis"] {
		cfg.Hysteresis = fromFile.Hysteresis
	}
	if !explicitFlags["workers"] {
		cfg.Workers = fromFile.Workers
	}
	if !explicitFlags["queue-depth"] {
		cfg.QueueDepth = fromFile.QueueDepth
	}
	if !explicitFlags["data-dir"] {
		cfg.DataDir = fromFile.DataDir
	}
}

// Validate rejects configurations the engine cannot run with.
func (c *Config) Validate() error {
	if c.ChunkSize < 1 {
		return fmt.Errorf("config: chunk_size must be positive, got %d", c.ChunkSize)
	}
	if c.Height < 32 {
		return fmt.Errorf("config: height must be at least 32, got %d", c.Height)
	}
	if c.SeaLevel < 1 || c.SeaLevel >= c.Height {
		return fmt.Errorf("config: sea_level %d outside (0, %d)", c.SeaLevel, c.Height)
	}
	if c.LoadRadius < 1 {
		return fmt.Errorf("config: load_radius must be positive, got %d", c.LoadRadius)
	}
	if c.Hysteresis < 0 {
		return fmt.Errorf("config: hysteresis must be non-negative, got %d", c.Hysteresis)
	}
	if c.QueueDepth < 1 {
		return fmt.Errorf("config: queue_depth must be positive, got %d", c.QueueDepth)
	}
	return nil
}
