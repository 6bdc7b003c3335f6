package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the YAML file format. Every field is optional; flags override
// config, config overrides built-in defaults.
type Config struct {
	Guidelines          []string `yaml:"guidelines"`
	OutputDir           string   `yaml:"output_dir"`
	Save                bool     `yaml:"save_outputs"`
	TimeoutSeconds      int      `yaml:"timeout_seconds"`
	ProbeTimeoutSeconds int      `yaml:"probe_timeout_seconds"`
	UserAgent           string   `yaml:"user_agent"`
	Concurrency         int      `yaml:"concurrency"`
	HistoryDB           string   `yaml:"history_db"`

	FHIR  FHIR  `yaml:"fhir"`
	Hosts Hosts `yaml:"hosts"`
	OAuth OAuth `yaml:"oauth"`
}

type FHIR struct {
	BaseURL string `yaml:"base_url"`
	Demo    bool   `yaml:"demo"`
}

// Hosts overrides the hosting base URLs; normally only set in tests or when
// pointing at a mirror.
type Hosts struct {
	Build     string `yaml:"build"`
	Pages     string `yaml:"pages"`
	Canonical string `yaml:"canonical"`
	API       string `yaml:"api"`
	Repo      string `yaml:"repo"`
}

type OAuth struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURI  string `yaml:"redirect_uri"`
	Scope        string `yaml:"scope"`
}

func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
