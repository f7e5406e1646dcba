package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config models kaizen.yml: workstation-level settings constructed once at
// process start and handed to the collaborators that need them. The
// persistence core takes none of it.
type Config struct {
	Company struct {
		Name string `yaml:"name"`
	} `yaml:"company"`
	Paths struct {
		Exports string `yaml:"exports"`
		Backups string `yaml:"backups"`
	} `yaml:"paths"`
}

// Default returns the default settings, with export and backup directories
// under the user's Documents folder.
func Default() *Config {
	var cfg Config
	cfg.Company.Name = "Your Company"
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	cfg.Paths.Exports = filepath.Join(home, "Documents", "KaizenBlitz", "Exports")
	cfg.Paths.Backups = filepath.Join(home, "Documents", "KaizenBlitz", "Backups")
	return &cfg
}

// Path returns the config file path for a workspace.
func Path(workspace string) string {
	if workspace == "" {
		workspace = "."
	}
	return filepath.Join(workspace, "kaizen.yml")
}

// Load reads config from the workspace, falling back to defaults when the
// file does not exist.
func Load(workspace string) (*Config, error) {
	data, err := os.ReadFile(Path(workspace))
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return FromYAML(data)
}

// FromYAML parses and validates config from raw YAML bytes. Unset fields keep
// their defaults.
func FromYAML(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures the config meets required structure.
func (c *Config) Validate() error {
	if c.Company.Name == "" {
		return fmt.Errorf("company.name is required")
	}
	if c.Paths.Exports == "" {
		return fmt.Errorf("paths.exports is required")
	}
	if c.Paths.Backups == "" {
		return fmt.Errorf("paths.backups is required")
	}
	return nil
}

// EnsureDirectories creates the export and backup directories if missing.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.Exports, c.Paths.Backups} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}
