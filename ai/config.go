// Copyright 2025 Parthenon Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"os"
	"strings"
)

// DefaultVectorSize is the dimensionality of the default embedding model.
const DefaultVectorSize = 1536

// Config holds configuration for AI service providers.
type Config struct {
	// Host is the base URL for the OpenAI-compatible API.
	// Example: "https://api.openai.com/v1", "http://localhost:11434/v1"
	Host string

	// Token is the API token. Local OpenAI-compatible servers that do not
	// require authentication accept any non-empty value.
	Token string

	// ChatModel is the model identifier used for final answers.
	// Example: "gpt-4.1"
	ChatModel string

	// PlannerModel is the smaller model identifier used in JSON mode for
	// query decomposition, expansion, and summaries.
	// Example: "gpt-4.1-mini"
	PlannerModel string

	// EmbeddingModel is the model identifier used for text embeddings.
	// Example: "text-embedding-3-small"
	EmbeddingModel string

	// VectorSize is the dimensionality of the embedding vectors.
	// Must match the embedding model. Default: 1536.
	VectorSize int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the API host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithToken sets the API token.
func WithToken(token string) ConfigOption {
	return func(c *Config) {
		c.Token = token
	}
}

// WithChatModel sets the answering model identifier.
func WithChatModel(model string) ConfigOption {
	return func(c *Config) {
		c.ChatModel = model
	}
}

// WithPlannerModel sets the planning model identifier.
func WithPlannerModel(model string) ConfigOption {
	return func(c *Config) {
		c.PlannerModel = model
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithVectorSize sets the embedding dimensionality.
func WithVectorSize(size int) ConfigOption {
	return func(c *Config) {
		c.VectorSize = size
	}
}

// DefaultConfig returns a Config with defaults for the OpenAI API.
// The token is read from the OPENAI_API_KEY environment variable; "none" is
// used when unset so that unauthenticated local servers keep working.
func DefaultConfig() *Config {
	token := os.Getenv("OPENAI_API_KEY")
	if token == "" {
		token = "none"
	}
	return &Config{
		Host:           "https://api.openai.com/v1",
		Token:          token,
		ChatModel:      "gpt-4.1",
		PlannerModel:   "gpt-4.1-mini",
		EmbeddingModel: "text-embedding-3-small",
		VectorSize:     DefaultVectorSize,
	}
}

// NewConfig creates a Config with the default values and applies the provided
// options. This is the recommended way to create a Config with custom settings.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithHost("http://localhost:11434/v1"),
//	    ai.WithEmbeddingModel("embeddinggemma"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It adds the /v1 suffix to the host if missing, which is required by most
// OpenAI-compatible APIs (OpenAI, Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = strings.TrimSuffix(c.Host, "/")
		c.Host = c.Host + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.Token == "" {
		return errors.New("ai config: Token is required")
	}
	if c.ChatModel == "" {
		return errors.New("ai config: ChatModel is required")
	}
	if c.PlannerModel == "" {
		return errors.New("ai config: PlannerModel is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.VectorSize < 1 {
		return errors.New("ai config: VectorSize must be positive")
	}
	return nil
}
