package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port string `toml:"port"`
}

type NLUConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
	// Prompt overrides the built-in classification prompt. It must contain a
	// single %s verb for the utterance.
	Prompt string `toml:"prompt"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type BadgerConfig struct {
	Path string `toml:"path"`
}

type StorageConfig struct {
	Backend  string         `toml:"backend"`
	Memgraph MemgraphConfig `toml:"memgraph"`
	Badger   BadgerConfig   `toml:"badger"`
}

type BotConfig struct {
	Welcome string `toml:"welcome"`
}

type Config struct {
	Server  ServerConfig  `toml:"server"`
	NLU     NLUConfig     `toml:"nlu"`
	Storage StorageConfig `toml:"storage"`
	Bot     BotConfig     `toml:"bot"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return &cfg, nil
}
