package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Backend struct {
		BaseURL              string  `yaml:"base_url" json:"base_url"`
		UploadTimeoutSeconds int     `yaml:"upload_timeout_seconds" json:"upload_timeout_seconds"`
		RequestsPerSecond    float64 `yaml:"requests_per_second" json:"requests_per_second"`
		Burst                int     `yaml:"burst" json:"burst"`
	} `yaml:"backend" json:"backend"`

	Capture struct {
		// RequireFields true blocks submission on blank price/description;
		// false is the single-tap quick mode with an auto-filled description.
		RequireFields      bool   `yaml:"require_fields" json:"require_fields"`
		DefaultDescription string `yaml:"default_description" json:"default_description"`
	} `yaml:"capture" json:"capture"`

	Deck struct {
		// HistoryOrder: "append" (carousel, server order, newest focused) or
		// "prepend" (list, newest first).
		HistoryOrder string `yaml:"history_order" json:"history_order"`
	} `yaml:"deck" json:"deck"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
