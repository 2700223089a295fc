//-------------------------------------------------------------------------
//
// AyurGPT Server
//
// Portions copyright (c) 2025 - 2026, the AyurGPT authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration loading and validation for the
// AyurGPT Server.
package config

// Config is the root configuration structure for the server.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	APIKeys    APIKeysConfig    `yaml:"api_keys"`
	Index      IndexConfig      `yaml:"index"`
	Passages   PassagesConfig   `yaml:"passages"`
	Database   DatabaseConfig   `yaml:"database"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Generation GenerationConfig `yaml:"generation"`
	Retrieval  RetrievalConfig  `yaml:"retrieval"`
}

// APIKeysConfig contains paths to files containing API keys for LLM
// providers. If not specified, keys are loaded from environment variables or
// default file locations (~/.groq-api-key, ~/.openai-api-key).
type APIKeysConfig struct {
	Groq   string `yaml:"groq"`   // Path to file containing Groq API key
	OpenAI string `yaml:"openai"` // Path to file containing OpenAI API key
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	ListenAddress string     `yaml:"listen_address"`
	Port          int        `yaml:"port"`
	TLS           TLSConfig  `yaml:"tls"`
	CORS          CORSConfig `yaml:"cors"`
}

// CORSConfig contains CORS (Cross-Origin Resource Sharing) settings.
type CORSConfig struct {
	Enabled        bool     `yaml:"enabled"`
	AllowedOrigins []string `yaml:"allowed_origins"` // Origins to allow, or ["*"] for all
}

// TLSConfig contains TLS/HTTPS settings.
type TLSConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// IndexConfig contains settings for the vector index service.
type IndexConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	Collection     string `yaml:"collection"`
	MetricType     string `yaml:"metric_type"`
	Nprobe         int    `yaml:"nprobe"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// PassagesConfig contains settings for the passage text store.
type PassagesConfig struct {
	Path string `yaml:"path"` // SQLite database file holding the sentences table
}

// DatabaseConfig contains PostgreSQL connection settings for the chat
// history and user store.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`

	// Certificate-based authentication
	SSLCert   string `yaml:"ssl_cert"`
	SSLKey    string `yaml:"ssl_key"`
	SSLRootCA string `yaml:"ssl_root_ca"`
}

// EmbeddingConfig contains settings for the query embedding provider.
type EmbeddingConfig struct {
	Provider   string `yaml:"provider"`
	Model      string `yaml:"model"`
	BaseURL    string `yaml:"base_url"`
	Dimensions int    `yaml:"dimensions"`
}

// GenerationConfig contains settings for the completion provider and its
// fixed decoding parameters.
type GenerationConfig struct {
	Provider       string  `yaml:"provider"`
	Model          string  `yaml:"model"`
	BaseURL        string  `yaml:"base_url"`
	Temperature    float64 `yaml:"temperature"`
	MaxTokens      int     `yaml:"max_tokens"`
	TopP           float64 `yaml:"top_p"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
}

// RetrievalConfig contains settings for retrieval behavior.
type RetrievalConfig struct {
	TopK          int `yaml:"top_k"`
	ContextBudget int `yaml:"context_budget"` // Character budget for composed context
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddress: "0.0.0.0",
			Port:          8080,
			TLS: TLSConfig{
				Enabled: false,
			},
		},
		Index: IndexConfig{
			Host:           "127.0.0.1",
			Port:           19530,
			Collection:     "L2_minilm_rag",
			MetricType:     "L2",
			Nprobe:         10,
			TimeoutSeconds: 15,
		},
		Embedding: EmbeddingConfig{
			Provider:   "ollama",
			Model:      "all-minilm",
			Dimensions: 384,
		},
		Generation: GenerationConfig{
			Provider:       "groq",
			Model:          "llama3-70b-8192",
			Temperature:    0.2,
			MaxTokens:      1024,
			TopP:           1.0,
			TimeoutSeconds: 60,
		},
		Retrieval: RetrievalConfig{
			TopK:          40,
			ContextBudget: 24000,
		},
	}
}
