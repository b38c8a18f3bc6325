package main

import (
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	authfront "github.com/hsapp/go-authfront"
)

// AppConfig is the application configuration loaded from YAML. Missing keys
// keep their defaults, a missing file is not an error.
type AppConfig struct {
	Server  ServerConfig  `koanf:"server"`
	API     APIConfig     `koanf:"api"`
	Session SessionConfig `koanf:"session"`
}

type ServerConfig struct {
	Address string `koanf:"address"`
	Debug   bool   `koanf:"debug"`
}

type APIConfig struct {
	BaseURL        string `koanf:"base_url"`
	AuthScheme     string `koanf:"auth_scheme"`
	TimeoutSeconds int    `koanf:"timeout_seconds"`
}

type SessionConfig struct {
	// Driver selects where snapshots live: "file" or "sqlite".
	Driver string `koanf:"driver"`
	Key    string `koanf:"key"`
	Dir    string `koanf:"dir"`
	DSN    string `koanf:"dsn"`
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Address: ":8572",
		},
		API: APIConfig{
			BaseURL:        "http://localhost:8080",
			TimeoutSeconds: 15,
		},
		Session: SessionConfig{
			Driver: "file",
			Key:    authfront.DefaultStorageKey,
			Dir:    ".data",
			DSN:    "file:.data/authfront.db?cache=shared",
		},
	}
}

// LoadConfig reads the YAML file at path over the defaults.
func LoadConfig(path string) (*AppConfig, error) {
	cfg := defaultConfig()

	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// AuthConfig projects the app configuration onto the library config surface.
func (c *AppConfig) AuthConfig() authfront.SimpleConfig {
	return authfront.SimpleConfig{
		BaseURL:    c.API.BaseURL,
		AuthScheme: c.API.AuthScheme,
		StorageKey: c.Session.Key,
	}
}
