package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	settingsPath string
	formatFlag   string
	outputName   string
	outputDir    string
	apiKey       string
	addURL       string
	trainingMode bool
	chunkLength  int
)

var rootCmd = &cobra.Command{
	Use:   "transcript-extractor [videos-file]",
	Short: "Bulk YouTube transcript extraction and reformatting",
	Long: `A tool for extracting YouTube video transcripts in bulk and exporting them
as JSON, plain text, or CSV, with optional fixed-size chunking for AI
training data.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, using system environment variables")
		}

		if err := ensureConfigExists(); err != nil {
			log.Fatalf("Failed to prepare config directory: %v", err)
		}

		// Get videos file path
		videosFile := getConfigPath("videos.yaml")
		if len(args) > 0 {
			videosFile = args[0]
		}

		if addURL != "" {
			if err := addURLToList(videosFile, addURL); err != nil {
				log.Fatalf("Failed to add URL: %v", err)
			}
			log.Printf("Added %s to %s", addURL, videosFile)
			return
		}

		// Load settings with override
		var settings *Settings
		var err error
		if settingsPath != "" {
			// Explicit settings file must exist
			settings, err = loadSettingsRequired(settingsPath)
			if err != nil {
				log.Fatalf("Critical error: settings file missing: %s - %v", settingsPath, err)
			}
		} else {
			settings, err = loadSettings(getConfigPath("settings.yaml"))
			if err != nil {
				log.Fatalf("Failed to load settings: %v", err)
			}
		}

		// Flag and environment overrides
		if outputDir != "" {
			settings.OutputDirectory = outputDir
		}
		if apiKey == "" {
			apiKey = os.Getenv("YOUTUBE_TRANSCRIPT_API_KEY")
		}
		if apiKey != "" {
			settings.TranscriptAPI.APIKey = apiKey
		}
		if chunkLength > 0 {
			settings.Training.MaxChunkLength = chunkLength
		}

		urls, err := loadURLList(videosFile)
		if err != nil {
			log.Fatalf("Failed to load video URLs: %v", err)
		}
		if len(urls) == 0 {
			log.Fatalf("No video URLs found in %s", videosFile)
		}

		log.Printf("Processing %d videos...", len(urls))
		extractor := NewTranscriptExtractor(settings, nil)
		batch := extractor.ExtractAll(urls)

		succeeded := 0
		for _, key := range batch.Keys() {
			if record, _ := batch.Get(key); record.Success() {
				succeeded++
			}
		}
		log.Printf("Done: %d succeeded, %d failed", succeeded, batch.Len()-succeeded)

		formats := settings.Formats
		if formatFlag != "" {
			formats = []string{formatFlag}
		}

		exporter := NewExporter(settings.OutputDirectory, nil)
		for _, format := range formats {
			if _, err := exporter.Save(batch, ExportFormat(format), outputName); err != nil {
				log.Fatalf("Export failed: %v", err)
			}
		}

		if trainingMode {
			preparer, err := NewTrainingPreparer(settings.Training.MaxChunkLength)
			if err != nil {
				log.Fatalf("Invalid training configuration: %v", err)
			}
			chunks := preparer.PrepareForTraining(batch)
			path := filepath.Join(settings.OutputDirectory, outputName+".jsonl")
			if err := preparer.SaveTrainingData(chunks, path); err != nil {
				log.Fatalf("Failed to save training data: %v", err)
			}
			log.Printf("Prepared %d training chunks: %s", len(chunks), path)
		}
	},
}

func init() {
	rootCmd.Flags().StringVar(&settingsPath, "settings", "", "Path to settings YAML file")
	rootCmd.Flags().StringVar(&formatFlag, "format", "", "Export a single format (json, txt, csv) instead of the configured list")
	rootCmd.Flags().StringVar(&outputName, "out", "transcripts", "Base name of the output files")
	rootCmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for output files")
	rootCmd.Flags().StringVar(&apiKey, "api-key", "", "Captioning service API key")
	rootCmd.Flags().StringVar(&addURL, "add", "", "Add a video URL to the videos file and exit")
	rootCmd.Flags().BoolVar(&trainingMode, "training", false, "Also write chunked training data as JSON Lines")
	rootCmd.Flags().IntVar(&chunkLength, "chunk-length", 0, "Maximum training chunk length in characters")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
