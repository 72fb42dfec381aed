package config

import (
	"os"
	"strconv"
)

// ApplyEnv overlays environment variables on a settings document. The host
// calls godotenv.Load before this, so a .env file next to the binary works
// too. Only fields that make sense per deployment (paths, sheet, format,
// parallelism) are overridable; merge wiring stays in the settings document.
func (s *Settings) ApplyEnv() {
	s.InputFolder = getEnvOrDefault("GOCOMBINE_INPUT_FOLDER", s.InputFolder)
	s.OutputFolder = getEnvOrDefault("GOCOMBINE_OUTPUT_FOLDER", s.OutputFolder)
	s.OutputFilename = getEnvOrDefault("GOCOMBINE_OUTPUT_FILENAME", s.OutputFilename)
	s.OutputFormat = getEnvOrDefault("GOCOMBINE_OUTPUT_FORMAT", s.OutputFormat)
	s.SheetName = getEnvOrDefault("GOCOMBINE_SHEET_NAME", s.SheetName)
	s.Workers = getEnvIntOrDefault("GOCOMBINE_WORKERS", s.Workers)
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvIntOrDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
