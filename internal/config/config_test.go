package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"smart_scout/internal/config"
)

func TestLoad(t *testing.T) {
	raw := `
guidelines:
  - anc
  - immunizations
output_dir: reports
save_outputs: true
timeout_seconds: 15
concurrency: 3
history_db: history.db
fhir:
  base_url: http://fhir.example.test
  demo: true
hosts:
  build: http://localhost:9000
oauth:
  client_id: my-client
  scope: launch
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(raw), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(cfg.Guidelines) != 2 || cfg.Guidelines[1] != "immunizations" {
		t.Errorf("guidelines = %v", cfg.Guidelines)
	}
	if cfg.OutputDir != "reports" || !cfg.Save {
		t.Errorf("output = %q save = %t", cfg.OutputDir, cfg.Save)
	}
	if cfg.TimeoutSeconds != 15 || cfg.Concurrency != 3 {
		t.Errorf("timeout = %d concurrency = %d", cfg.TimeoutSeconds, cfg.Concurrency)
	}
	if cfg.FHIR.BaseURL != "http://fhir.example.test" || !cfg.FHIR.Demo {
		t.Errorf("fhir = %+v", cfg.FHIR)
	}
	if cfg.Hosts.Build != "http://localhost:9000" {
		t.Errorf("hosts = %+v", cfg.Hosts)
	}
	if cfg.OAuth.ClientID != "my-client" || cfg.OAuth.Scope != "launch" {
		t.Errorf("oauth = %+v", cfg.OAuth)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("guidelines: [unclosed"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := config.Config{
		Guidelines: []string{"anc"},
		Save:       true,
		HistoryDB:  "h.db",
	}
	cfg.FHIR.Demo = true

	data, err := config.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("write: %v", err)
	}
	loaded, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Guidelines) != 1 || !loaded.Save || loaded.HistoryDB != "h.db" || !loaded.FHIR.Demo {
		t.Errorf("round trip = %+v", loaded)
	}
}
