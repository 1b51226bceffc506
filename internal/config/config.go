package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env-default:"local"`
	HTTPServer `yaml:"http_server"`

	MaxUploadSizeMB int64  `yaml:"max_upload_size_mb" env-default:"32"`
	MaxDatasets     int    `yaml:"max_datasets" env-default:"4"`
	FrontendDir     string `yaml:"frontend_dir" env-default:"./frontend-dist"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:4001"`
	Timeout     time.Duration `yaml:"timeout"  env-default:"15s"`
	IdleTimeout time.Duration `yaml:"idle_timeout"  env-default:"60s"`
}

func (c Config) MaxUploadBytes() int64 {
	return c.MaxUploadSizeMB << 20
}

func MustConfig() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/local.yaml"
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return &cfg
}
