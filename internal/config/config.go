package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the unified application configuration
type Config struct {
	RepoPath   string   `yaml:"repo_path"`
	SourceFile string   `yaml:"source_file"`
	OutputFile string   `yaml:"output_file"`
	Sections   []string `yaml:"sections"`
}

// Settings represents the config file structure
type Settings struct {
	RepoPath   string   `yaml:"repo_path,omitempty"`
	SourceFile string   `yaml:"source_file,omitempty"`
	OutputFile string   `yaml:"output_file,omitempty"`
	Sections   []string `yaml:"sections,omitempty"`
}

// CLIFlags holds parsed CLI flags
type CLIFlags struct {
	RepoPath   string
	SourceFile string
	OutputFile string
	Sections   []string
}

// Load loads configuration with priority: CLI flags > env vars > config file > default
func Load(flags CLIFlags) (*Config, error) {
	cfg := &Config{
		SourceFile: "README.md",
		OutputFile: "README_CHRONOLOGICAL.md",
	}

	// Try loading config file first for base values
	configPath, err := getConfigPath()
	if err == nil {
		if fileConfig, err := loadConfigFile(configPath); err == nil {
			if fileConfig.RepoPath != "" {
				cfg.RepoPath = expandPath(fileConfig.RepoPath)
			}
			if fileConfig.SourceFile != "" {
				cfg.SourceFile = fileConfig.SourceFile
			}
			if fileConfig.OutputFile != "" {
				cfg.OutputFile = fileConfig.OutputFile
			}
			if len(fileConfig.Sections) > 0 {
				cfg.Sections = fileConfig.Sections
			}
		}
	}

	// Priority 2: Environment variables override config file
	if envRepo := os.Getenv("CHRONOLIST_REPO"); envRepo != "" {
		cfg.RepoPath = expandPath(envRepo)
	}
	if envSource := os.Getenv("CHRONOLIST_SOURCE"); envSource != "" {
		cfg.SourceFile = envSource
	}
	if envOutput := os.Getenv("CHRONOLIST_OUTPUT"); envOutput != "" {
		cfg.OutputFile = envOutput
	}

	// Priority 1: CLI flags override everything
	if flags.RepoPath != "" {
		cfg.RepoPath = expandPath(flags.RepoPath)
	}
	if flags.SourceFile != "" {
		cfg.SourceFile = flags.SourceFile
	}
	if flags.OutputFile != "" {
		cfg.OutputFile = flags.OutputFile
	}
	if len(flags.Sections) > 0 {
		cfg.Sections = flags.Sections
	}

	return cfg, nil
}

// SourcePath returns the absolute path to the tracked document
func (c *Config) SourcePath() string {
	return filepath.Join(c.RepoPath, c.SourceFile)
}

// OutputPath returns the absolute path of the generated document
func (c *Config) OutputPath() string {
	return filepath.Join(c.RepoPath, c.OutputFile)
}

// getConfigPath returns the path to the configuration file
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "chronolist", "config.yaml"), nil
}

// loadConfigFile loads configuration from the settings file
func loadConfigFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// EnsureConfigFile creates the config file with defaults if it doesn't exist
func EnsureConfigFile() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	settings := Settings{
		SourceFile: "README.md",
		OutputFile: "README_CHRONOLOGICAL.md",
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// ParseCommaSeparated splits a comma-separated string into a slice
func ParseCommaSeparated(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// ExpandPath expands a leading ~/ to the user's home directory.
func ExpandPath(path string) string {
	return expandPath(path)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
