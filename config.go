package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type config struct {
	Provider       string        `validate:"oneof=gemini openai anthropic ollama"`
	Model          string        `validate:"omitempty,max=200"`
	Temperature    float64       `validate:"gte=0,lte=2"`
	RequestTimeout time.Duration `validate:"gt=0"`
	LogLevel       string        `validate:"oneof=debug info warn error"`
	DataDir        string        `validate:"required"`
	ExportDir      string        `validate:"required"`
	ProfilePath    string

	GeminiAPIKey    string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	OllamaHost      string
}

const (
	defaultProvider       = "gemini"
	defaultTemperature    = 0.7
	defaultRequestTimeout = 60 * time.Second
)

var configValidator = validator.New()

// loadConfig reads an optional .env file and then the environment.
func loadConfig() (config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config{}, fmt.Errorf("error loading .env: %w", err)
	}

	dataDir := getenv("ZABAAN_DATA_DIR", "")
	if dataDir == "" {
		cfgDir, err := os.UserConfigDir()
		if err != nil {
			return config{}, fmt.Errorf("error getting user config dir: %w", err)
		}
		dataDir = filepath.Join(cfgDir, "zabaan")
	}

	cfg := config{
		Provider:       strings.ToLower(getenv("ZABAAN_PROVIDER", defaultProvider)),
		Model:          getenv("ZABAAN_MODEL", ""),
		Temperature:    getenvFloat("ZABAAN_TEMPERATURE", defaultTemperature),
		RequestTimeout: time.Duration(getenvInt("ZABAAN_REQUEST_TIMEOUT", int(defaultRequestTimeout/time.Second))) * time.Second,
		LogLevel:       strings.ToLower(getenv("ZABAAN_LOG_LEVEL", "info")),
		DataDir:        dataDir,
		ExportDir:      getenv("ZABAAN_EXPORT_DIR", "."),
		ProfilePath:    getenv("ZABAAN_PROFILE", ""),

		GeminiAPIKey:    getenv("GEMINI_API_KEY", getenv("GOOGLE_API_KEY", "")),
		OpenAIAPIKey:    getenv("OPENAI_API_KEY", ""),
		AnthropicAPIKey: getenv("ANTHROPIC_API_KEY", ""),
		OllamaHost:      getenv("OLLAMA_HOST", ""),
	}

	if err := configValidator.Struct(cfg); err != nil {
		return config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c config) logLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// defaultModelSetting is used until a model setting is saved from the options view.
func (c config) defaultModelSetting() modelSetting {
	return modelSetting{
		Provider:    providerDisplayName(c.Provider),
		Model:       c.Model,
		Temperature: c.Temperature,
	}
}

func providerDisplayName(provider string) string {
	switch strings.ToLower(provider) {
	case "openai":
		return providerOpenAI
	case "anthropic":
		return providerAnthropic
	case "ollama":
		return providerOllama
	}
	return providerGemini
}

func getenv(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func getenvInt(name string, fallback int) int {
	value := os.Getenv(name)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvFloat(name string, fallback float64) float64 {
	value := os.Getenv(name)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
