package main

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const defaultConfigDir = ".transcript-extractor/"

const minChunkLength = 1

//go:embed config/settings.yaml
var defaultSettings string

//go:embed config/videos.yaml
var defaultVideos string

// TranscriptAPISettings configures the external captioning service.
type TranscriptAPISettings struct {
	URL            string `yaml:"url"`
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	CacheDir       string `yaml:"cache_dir"`
}

// Settings represents the YAML configuration structure
type Settings struct {
	OutputDirectory string                `yaml:"output_directory"`
	Formats         []string              `yaml:"formats"`
	TranscriptAPI   TranscriptAPISettings `yaml:"transcript_api"`
	Training        struct {
		MaxChunkLength int `yaml:"max_chunk_length"`
	} `yaml:"training"`
}

// defaultSettingsValues returns the built-in settings used when no settings
// file exists on disk.
func defaultSettingsValues() *Settings {
	settings := &Settings{
		OutputDirectory: "transcripts",
		Formats:         []string{string(FormatJSON)},
		TranscriptAPI: TranscriptAPISettings{
			URL:      "https://www.youtube-transcript.io/api/transcripts",
			CacheDir: filepath.Join(".cache", "youtube"),
		},
	}
	settings.Training.MaxChunkLength = defaultMaxChunkLength
	return settings
}

// loadSettings loads settings from a YAML file with fallback to defaults
func loadSettings(settingsPath string) (*Settings, error) {
	data, err := os.ReadFile(settingsPath)
	if err != nil {
		// Return default settings if file doesn't exist
		return defaultSettingsValues(), nil
	}

	return parseSettings(data)
}

// loadSettingsRequired loads settings from a YAML file, failing if the file
// doesn't exist
func loadSettingsRequired(settingsPath string) (*Settings, error) {
	data, err := os.ReadFile(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("reading settings file %s: %w", settingsPath, err)
	}

	return parseSettings(data)
}

func parseSettings(data []byte) (*Settings, error) {
	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("parsing settings YAML: %w", err)
	}

	if settings.Training.MaxChunkLength < minChunkLength {
		log.Printf("Warning: training.max_chunk_length is %d, defaulting to %d", settings.Training.MaxChunkLength, defaultMaxChunkLength)
		settings.Training.MaxChunkLength = defaultMaxChunkLength
	}
	if settings.OutputDirectory == "" {
		settings.OutputDirectory = "transcripts"
	}
	if len(settings.Formats) == 0 {
		settings.Formats = []string{string(FormatJSON)}
	}
	if settings.TranscriptAPI.URL == "" {
		settings.TranscriptAPI.URL = defaultSettingsValues().TranscriptAPI.URL
	}

	return &settings, nil
}

// getConfigPath returns the path to a config file in the dot directory
func getConfigPath(filename string) string {
	return filepath.Join(defaultConfigDir, filename)
}

// ensureConfigExists creates the config directory and writes the default
// settings and videos files on first run
func ensureConfigExists() error {
	if err := os.MkdirAll(defaultConfigDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	defaults := map[string]string{
		"settings.yaml": defaultSettings,
		"videos.yaml":   defaultVideos,
	}
	for filename, content := range defaults {
		path := getConfigPath(filename)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", filename, err)
			}
		}
	}

	return nil
}
