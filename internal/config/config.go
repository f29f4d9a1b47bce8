package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port string `yaml:"port"`
}

type LLMConfig struct {
	APIKey         string `yaml:"api_key"`
	BaseURL        string `yaml:"base_url"`
	EmbeddingModel string `yaml:"embedding_model"`
	ChatModel      string `yaml:"chat_model"`
}

type YouTubeConfig struct {
	CaptionBaseURL string `yaml:"caption_base_url"`
	Language       string `yaml:"language"`
}

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	OpenAI  LLMConfig     `yaml:"openai"`
	YouTube YouTubeConfig `yaml:"youtube"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// applyDefaults fills unset fields, secrets preferring the environment.
func applyDefaults(cfg *Config) {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.OpenAI.APIKey = key
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8000"
	}
	if cfg.OpenAI.EmbeddingModel == "" {
		cfg.OpenAI.EmbeddingModel = "text-embedding-3-small"
	}
	if cfg.OpenAI.ChatModel == "" {
		cfg.OpenAI.ChatModel = "gpt-4o-mini"
	}
	if cfg.YouTube.CaptionBaseURL == "" {
		cfg.YouTube.CaptionBaseURL = "https://video.google.com/timedtext"
	}
	if cfg.YouTube.Language == "" {
		cfg.YouTube.Language = "en"
	}
}
