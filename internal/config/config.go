package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	APIBaseURL string `yaml:"api_base_url"`
	Language   string `yaml:"language"` // "en" or "fr"
	Theme      string `yaml:"theme"`
}

// Load loads configuration from a .env file, the config file, and
// environment variables. Environment variables take precedence over
// config file values.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		APIBaseURL: "http://localhost:8000",
		Language:   "en",
	}

	if err := cfg.loadFromFile(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	cfg.loadFromEnv()

	return cfg, nil
}

func (c *Config) loadFromFile() error {
	configPath := getConfigPath()
	if configPath == "" {
		return os.ErrNotExist
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, c)
}

func (c *Config) loadFromEnv() {
	if url := os.Getenv("DATASCOPE_API_URL"); url != "" {
		c.APIBaseURL = url
	}
	if lang := os.Getenv("DATASCOPE_LANG"); lang != "" {
		c.Language = lang
	}
	if theme := os.Getenv("DATASCOPE_THEME"); theme != "" {
		c.Theme = theme
	}
}

// getConfigPath returns the path to the config file
// Priority: $DATASCOPE_CONFIG > ~/.config/datascope/config.yaml
func getConfigPath() string {
	if configPath := os.Getenv("DATASCOPE_CONFIG"); configPath != "" {
		return configPath
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "datascope", "config.yaml")
}

func GetConfigDir() (string, error) {
	configPath := getConfigPath()
	if configPath == "" {
		return "", fmt.Errorf("cannot determine config path")
	}
	return filepath.Dir(configPath), nil
}

// EnsureConfigDir ensures the config directory exists
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}

	return configDir, nil
}

// SaveExampleConfig creates an example config file
func SaveExampleConfig() error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		return nil // Already exists, don't overwrite
	}

	example := `# DataScope Configuration

# Base URL of the DataScope backend
api_base_url: "http://localhost:8000"

# Interface language ("en" or "fr")
language: "en"

# Optional: Color theme (default, catppuccin, dracula, nord, gruvbox)
theme: "default"
`

	return os.WriteFile(configPath, []byte(example), 0600)
}

func (c *Config) Save() error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.yaml")

	// Load existing config to preserve any hand-edited fields
	existing := &Config{APIBaseURL: "http://localhost:8000", Language: "en"}
	if data, err := os.ReadFile(configPath); err == nil {
		yaml.Unmarshal(data, existing)
	}

	existing.Language = c.Language
	existing.Theme = c.Theme
	if c.APIBaseURL != "" {
		existing.APIBaseURL = c.APIBaseURL
	}

	data, err := yaml.Marshal(existing)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte("# DataScope Configuration\n\n")
	return os.WriteFile(configPath, append(header, data...), 0600)
}
