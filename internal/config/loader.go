package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	DefaultModelPath = "app/iris_model.gob"
	DefaultPort      = "8000"
)

// Config holds the API server's runtime parameters.
// Zero values mean "unspecified" and are filled from Default.
type Config struct {
	ModelPath   string   `json:"model_path" yaml:"model_path" toml:"model_path"`
	Port        string   `json:"port" yaml:"port" toml:"port"`
	APIKey      string   `json:"api_key" yaml:"api_key" toml:"api_key"`
	LogFile     string   `json:"log_file" yaml:"log_file" toml:"log_file"`
	LogLevel    string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
	GinMode     string   `json:"gin_mode" yaml:"gin_mode" toml:"gin_mode"`
}

func Default() Config {
	return Config{ModelPath: DefaultModelPath, Port: DefaultPort, LogLevel: "info"}
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// Merge returns base with every non-zero field of over applied on top.
func Merge(base, over Config) Config {
	if over.ModelPath != "" {
		base.ModelPath = over.ModelPath
	}
	if over.Port != "" {
		base.Port = over.Port
	}
	if over.APIKey != "" {
		base.APIKey = over.APIKey
	}
	if over.LogFile != "" {
		base.LogFile = over.LogFile
	}
	if over.LogLevel != "" {
		base.LogLevel = over.LogLevel
	}
	if len(over.CORSOrigins) > 0 {
		base.CORSOrigins = over.CORSOrigins
	}
	if over.GinMode != "" {
		base.GinMode = over.GinMode
	}
	return base
}

// FromEnv reads the environment variables the server understands.
func FromEnv(getenv func(string) string) Config {
	cfg := Config{
		ModelPath: getenv("MODEL_PATH"),
		Port:      getenv("PORT"),
		APIKey:    getenv("API_KEY"),
		LogFile:   getenv("LOG_FILE"),
		LogLevel:  getenv("LOG_LEVEL"),
		GinMode:   getenv("GIN_MODE"),
	}
	if v := getenv("CORS_ORIGINS"); v != "" {
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}
	return cfg
}

// Resolve layers defaults, the optional CONFIG_FILE and the environment, in
// that order. A .env file in the working directory is loaded first if present;
// it never overrides variables already set in the process.
func Resolve() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	cfg := Default()
	if p := os.Getenv("CONFIG_FILE"); p != "" {
		fileCfg, err := Load(p)
		if err != nil {
			return Config{}, fmt.Errorf("load %s: %w", p, err)
		}
		cfg = Merge(cfg, fileCfg)
	}
	return Merge(cfg, FromEnv(os.Getenv)), nil
}
