//-------------------------------------------------------------------------
//
// AyurGPT Server
//
// Portions copyright (c) 2025 - 2026, the AyurGPT authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Environment variable names for API keys.
const (
	EnvGroqAPIKey   = "GROQ_API_KEY"
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
)

// Default API key file paths (relative to home directory).
const (
	DefaultGroqKeyFile   = ".groq-api-key"
	DefaultOpenAIKeyFile = ".openai-api-key"
)

// LoadedKeys holds all loaded API keys.
type LoadedKeys struct {
	Groq   string
	OpenAI string
}

// APIKeyLoader handles loading API keys from configured paths, environment
// variables, or default file locations.
type APIKeyLoader struct {
	config APIKeysConfig
}

// NewAPIKeyLoader creates a new API key loader with the given configuration.
func NewAPIKeyLoader(cfg APIKeysConfig) *APIKeyLoader {
	return &APIKeyLoader{config: cfg}
}

// LoadGroqKey loads the Groq API key.
func (l *APIKeyLoader) LoadGroqKey() (string, error) {
	return l.loadKey(l.config.Groq, EnvGroqAPIKey, DefaultGroqKeyFile, "Groq")
}

// LoadOpenAIKey loads the OpenAI API key.
func (l *APIKeyLoader) LoadOpenAIKey() (string, error) {
	return l.loadKey(l.config.OpenAI, EnvOpenAIAPIKey, DefaultOpenAIKeyFile, "OpenAI")
}

// loadKey loads an API key with the following priority:
// 1. Configured file path (if specified in config)
// 2. Environment variable
// 3. Default file location (~/.provider-api-key)
func (l *APIKeyLoader) loadKey(
	configPath, envVar, defaultFile, providerName string,
) (string, error) {
	// Priority 1: Configured file path
	if configPath != "" {
		path := expandPath(configPath)
		return readKeyFile(path, providerName)
	}

	// Priority 2: Environment variable
	if key := os.Getenv(envVar); key != "" {
		return key, nil
	}

	// Priority 3: Default file location
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	path := filepath.Join(homeDir, defaultFile)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", fmt.Errorf(
			"%s API key not found: set %s environment variable or create %s",
			providerName, envVar, path)
	}

	return readKeyFile(path, providerName)
}

// readKeyFile reads an API key from a file.
func readKeyFile(path, providerName string) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", fmt.Errorf("%s API key file not found: %s", providerName, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s API key: %w", providerName, err)
	}

	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", fmt.Errorf("%s API key file is empty: %s", providerName, path)
	}

	return key, nil
}

// LoadRequiredKeys loads only the API keys the configured providers need.
// Ollama runs locally and requires no key.
func (l *APIKeyLoader) LoadRequiredKeys(cfg *Config) (*LoadedKeys, error) {
	keys := &LoadedKeys{}
	needed := map[string]bool{
		strings.ToLower(cfg.Embedding.Provider):  true,
		strings.ToLower(cfg.Generation.Provider): true,
	}

	if needed["groq"] {
		key, err := l.LoadGroqKey()
		if err != nil {
			return nil, err
		}
		keys.Groq = key
	}

	if needed["openai"] {
		key, err := l.LoadOpenAIKey()
		if err != nil {
			return nil, err
		}
		keys.OpenAI = key
	}

	return keys, nil
}
