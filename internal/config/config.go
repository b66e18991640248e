package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileName is the name of the project configuration file
const FileName = "arrgh.json"

// Config represents the arrgh.json configuration file
type Config struct {
	Name    string                 `json:"name"`
	Data    string                 `json:"data"`
	Format  string                 `json:"format,omitempty"`
	Output  string                 `json:"output"`
	Queries map[string]QueryConfig `json:"queries,omitempty"`
	Watch   WatchConfig            `json:"watch"`
}

// QueryConfig is a named query stored in the configuration
type QueryConfig struct {
	Where    []string `json:"where,omitempty"`
	OrderBy  []string `json:"orderBy,omitempty"`
	Select   []string `json:"select,omitempty"`
	Distinct bool     `json:"distinct,omitempty"`
	Limit    int      `json:"limit,omitempty"`
}

// WatchConfig contains watch mode configuration
type WatchConfig struct {
	Debounce string `json:"debounce"`
}

// LoadConfig loads arrgh.json from the current directory or a parent directory
func LoadConfig() (*Config, string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get current directory: %w", err)
	}

	return loadConfigFromDir(dir)
}

// LoadConfigFromPath loads the configuration from a specific path
func LoadConfigFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

// Default returns a configuration named name with every default applied
func Default(name string) *Config {
	config := &Config{Name: name}
	config.applyDefaults()
	return config
}

func (c *Config) applyDefaults() {
	if c.Data == "" {
		c.Data = "./data.json"
	}
	if c.Output == "" {
		c.Output = "json"
	}
	if c.Watch.Debounce == "" {
		c.Watch.Debounce = "200ms"
	}
	if c.Queries == nil {
		c.Queries = make(map[string]QueryConfig)
	}
}

// Query returns the named query
func (c *Config) Query(name string) (QueryConfig, error) {
	q, ok := c.Queries[name]
	if !ok {
		return QueryConfig{}, fmt.Errorf("query %q not found in %s", name, FileName)
	}
	return q, nil
}

// DataPath resolves the data file relative to the project directory
func (c *Config) DataPath(projectDir string) string {
	if filepath.IsAbs(c.Data) {
		return c.Data
	}
	return filepath.Join(projectDir, c.Data)
}

// DebounceDuration parses the watch debounce interval
func (c *Config) DebounceDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 0, fmt.Errorf("invalid watch debounce %q: %w", c.Watch.Debounce, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid watch debounce %q: must not be negative", c.Watch.Debounce)
	}
	return d, nil
}

// Marshal encodes the configuration as indented JSON
func (c *Config) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return append(data, '\n'), nil
}

// Save writes the configuration to path
func (c *Config) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// loadConfigFromDir searches for arrgh.json in the given directory and its parents
func loadConfigFromDir(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		configPath := filepath.Join(dir, FileName)
		if _, err := os.Stat(configPath); err == nil {
			config, err := LoadConfigFromPath(configPath)
			if err != nil {
				return nil, "", err
			}
			return config, dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	return nil, "", fmt.Errorf("no %s found in %s or any parent directory", FileName, startDir)
}
