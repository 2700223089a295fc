//-------------------------------------------------------------------------
//
// AyurGPT Server
//
// Portions copyright (c) 2025, the AyurGPT authors
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

// expandPath expands ~ to the user's home directory.
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

// ValidationError represents a single configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}

	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration for errors and returns all validation
// errors found.
func (c *Config) Validate() error {
	var errs ValidationErrors

	errs = append(errs, c.validateServer()...)
	errs = append(errs, c.validateIndex()...)
	errs = append(errs, c.validatePassages()...)
	errs = append(errs, c.validateDatabase()...)
	errs = append(errs, c.validateLLMs()...)
	errs = append(errs, c.validateRetrieval()...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// validateServer validates server configuration.
func (c *Config) validateServer() ValidationErrors {
	var errs ValidationErrors

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, ValidationError{
			Field:   "server.port",
			Message: "must be between 1 and 65535",
		})
	}

	if c.Server.TLS.Enabled {
		if c.Server.TLS.CertFile == "" {
			errs = append(errs, ValidationError{
				Field:   "server.tls.cert_file",
				Message: "required when TLS is enabled",
			})
		} else if _, err := os.Stat(expandPath(c.Server.TLS.CertFile)); err != nil {
			errs = append(errs, ValidationError{
				Field:   "server.tls.cert_file",
				Message: fmt.Sprintf("file not found: %s", c.Server.TLS.CertFile),
			})
		}

		if c.Server.TLS.KeyFile == "" {
			errs = append(errs, ValidationError{
				Field:   "server.tls.key_file",
				Message: "required when TLS is enabled",
			})
		} else if _, err := os.Stat(expandPath(c.Server.TLS.KeyFile)); err != nil {
			errs = append(errs, ValidationError{
				Field:   "server.tls.key_file",
				Message: fmt.Sprintf("file not found: %s", c.Server.TLS.KeyFile),
			})
		}
	}

	return errs
}

// validateIndex validates the vector index configuration.
func (c *Config) validateIndex() ValidationErrors {
	var errs ValidationErrors

	if c.Index.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "index.host",
			Message: "required",
		})
	}

	if c.Index.Port < 1 || c.Index.Port > 65535 {
		errs = append(errs, ValidationError{
			Field:   "index.port",
			Message: "must be between 1 and 65535",
		})
	}

	if c.Index.Collection == "" {
		errs = append(errs, ValidationError{
			Field:   "index.collection",
			Message: "required",
		})
	}

	validMetrics := map[string]bool{"L2": true, "IP": true, "COSINE": true}
	if !validMetrics[c.Index.MetricType] {
		errs = append(errs, ValidationError{
			Field:   "index.metric_type",
			Message: "must be one of: L2, IP, COSINE",
		})
	}

	if c.Index.Nprobe < 1 {
		errs = append(errs, ValidationError{
			Field:   "index.nprobe",
			Message: "must be positive",
		})
	}

	return errs
}

// validatePassages validates the passage store configuration.
func (c *Config) validatePassages() ValidationErrors {
	var errs ValidationErrors

	if c.Passages.Path == "" {
		errs = append(errs, ValidationError{
			Field:   "passages.path",
			Message: "required",
		})
	}

	return errs
}

// validateDatabase validates database configuration.
func (c *Config) validateDatabase() ValidationErrors {
	var errs ValidationErrors

	if c.Database.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "database.host",
			Message: "required",
		})
	}

	if c.Database.Database == "" {
		errs = append(errs, ValidationError{
			Field:   "database.database",
			Message: "required",
		})
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		errs = append(errs, ValidationError{
			Field:   "database.port",
			Message: "must be between 1 and 65535",
		})
	}

	validSSLModes := map[string]bool{
		"disable":     true,
		"allow":       true,
		"prefer":      true,
		"require":     true,
		"verify-ca":   true,
		"verify-full": true,
	}
	if c.Database.SSLMode != "" && !validSSLModes[c.Database.SSLMode] {
		errs = append(errs, ValidationError{
			Field:   "database.ssl_mode",
			Message: "must be one of: disable, allow, prefer, require, verify-ca, verify-full",
		})
	}

	return errs
}

// validateLLMs validates the embedding and generation provider settings.
func (c *Config) validateLLMs() ValidationErrors {
	var errs ValidationErrors

	errs = append(errs, validateProvider("embedding", c.Embedding.Provider,
		[]string{"ollama", "openai"})...)
	if c.Embedding.Model == "" {
		errs = append(errs, ValidationError{
			Field:   "embedding.model",
			Message: "required",
		})
	}
	if c.Embedding.Dimensions < 1 {
		errs = append(errs, ValidationError{
			Field:   "embedding.dimensions",
			Message: "must be positive",
		})
	}

	errs = append(errs, validateProvider("generation", c.Generation.Provider,
		[]string{"groq", "openai", "ollama"})...)
	if c.Generation.Model == "" {
		errs = append(errs, ValidationError{
			Field:   "generation.model",
			Message: "required",
		})
	}
	if c.Generation.Temperature < 0 || c.Generation.Temperature > 2 {
		errs = append(errs, ValidationError{
			Field:   "generation.temperature",
			Message: "must be between 0 and 2",
		})
	}
	if c.Generation.TopP <= 0 || c.Generation.TopP > 1 {
		errs = append(errs, ValidationError{
			Field:   "generation.top_p",
			Message: "must be in (0, 1]",
		})
	}
	if c.Generation.MaxTokens < 1 {
		errs = append(errs, ValidationError{
			Field:   "generation.max_tokens",
			Message: "must be positive",
		})
	}

	return errs
}

// validateRetrieval validates retrieval settings.
func (c *Config) validateRetrieval() ValidationErrors {
	var errs ValidationErrors

	if c.Retrieval.TopK < 1 {
		errs = append(errs, ValidationError{
			Field:   "retrieval.top_k",
			Message: "must be positive",
		})
	}

	if c.Retrieval.ContextBudget < 0 {
		errs = append(errs, ValidationError{
			Field:   "retrieval.context_budget",
			Message: "must be non-negative",
		})
	}

	return errs
}

// validateProvider checks a provider name against the allowed set.
func validateProvider(prefix, provider string, valid []string) ValidationErrors {
	var errs ValidationErrors

	if provider == "" {
		errs = append(errs, ValidationError{
			Field:   prefix + ".provider",
			Message: "required",
		})
		return errs
	}

	name := strings.ToLower(provider)
	for _, v := range valid {
		if name == v {
			return nil
		}
	}

	errs = append(errs, ValidationError{
		Field:   prefix + ".provider",
		Message: fmt.Sprintf("must be one of: %s", strings.Join(valid, ", ")),
	})
	return errs
}
