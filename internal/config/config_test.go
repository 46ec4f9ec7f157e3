package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	config := Default()

	if config.Color.BaseAngle != 60 {
		t.Errorf("expected BaseAngle 60, got %d", config.Color.BaseAngle)
	}
	if config.Color.WheelSteps != 6 {
		t.Errorf("expected WheelSteps 6, got %d", config.Color.WheelSteps)
	}
	if config.Store.Backend != "sqlite" {
		t.Errorf("expected Store.Backend 'sqlite', got '%s'", config.Store.Backend)
	}
	if config.Logging.Level != "info" {
		t.Errorf("expected Logging.Level 'info', got '%s'", config.Logging.Level)
	}
	if config.Backup.Retention.MaxCount != 10 {
		t.Errorf("expected Backup.Retention.MaxCount 10, got %d", config.Backup.Retention.MaxCount)
	}
	if !config.Backup.Retention.Distinct {
		t.Error("expected Backup.Retention.Distinct true")
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
color:
  base_angle: 36
  wheel_steps: 10

logging:
  level: debug

backup:
  retention:
    max_age: 30d
    distinct: false
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	config, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	want := &ChromaConfig{
		Color:   ColorConfig{BaseAngle: 36, WheelSteps: 10},
		Store:   StoreConfig{Backend: "sqlite"},
		Logging: LoggingConfig{Level: "debug"},
		Backup:  BackupConfig{Retention: RetentionConfig{MaxCount: 10, MaxAge: "30d"}},
	}
	if diff := cmp.Diff(want, config); diff != "" {
		t.Errorf("LoadFromFile() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFromFile_Errors(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := LoadFromFile(filepath.Join(tmpDir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	badPath := filepath.Join(tmpDir, "bad.yaml")
	if err := os.WriteFile(badPath, []byte("color: [unterminated"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if _, err := LoadFromFile(badPath); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoad_UsesHomeConfig(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)
	t.Setenv("USERPROFILE", tmpHome)

	dir := filepath.Join(tmpHome, ".chromaroot")
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("store:\n  backend: memory\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	config, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if config.Store.Backend != "memory" {
		t.Errorf("expected Store.Backend 'memory', got '%s'", config.Store.Backend)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CHROMAROOT_BASE_ANGLE", "90")
	t.Setenv("CHROMAROOT_WHEEL_STEPS", "4")
	t.Setenv("CHROMAROOT_STORE", "memory")
	t.Setenv("CHROMAROOT_LOG_LEVEL", "trace")

	config := Default()
	applyEnvOverrides(config)

	if config.Color.BaseAngle != 90 {
		t.Errorf("expected BaseAngle 90, got %d", config.Color.BaseAngle)
	}
	if config.Color.WheelSteps != 4 {
		t.Errorf("expected WheelSteps 4, got %d", config.Color.WheelSteps)
	}
	if config.Store.Backend != "memory" {
		t.Errorf("expected Store.Backend 'memory', got '%s'", config.Store.Backend)
	}
	if config.Logging.Level != "trace" {
		t.Errorf("expected Logging.Level 'trace', got '%s'", config.Logging.Level)
	}
}

func TestEnvOverrides_IgnoresBadNumbers(t *testing.T) {
	t.Setenv("CHROMAROOT_BASE_ANGLE", "sixty")

	config := Default()
	applyEnvOverrides(config)

	if config.Color.BaseAngle != 60 {
		t.Errorf("expected BaseAngle to stay 60, got %d", config.Color.BaseAngle)
	}
}

func TestLoadPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "chroma.yaml")
	if err := os.WriteFile(configPath, []byte("color:\n  base_angle: 45\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("CHROMAROOT_LOG_LEVEL", "debug")

	config, err := LoadPath(configPath)
	if err != nil {
		t.Fatalf("LoadPath failed: %v", err)
	}
	if config.Color.BaseAngle != 45 {
		t.Errorf("expected BaseAngle 45, got %d", config.Color.BaseAngle)
	}
	if config.Logging.Level != "debug" {
		t.Errorf("expected env override level 'debug', got '%s'", config.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ChromaConfig)
		wantErr bool
	}{
		{"defaults", func(*ChromaConfig) {}, false},
		{"negative base angle is fine", func(c *ChromaConfig) { c.Color.BaseAngle = -30 }, false},
		{"zero wheel steps", func(c *ChromaConfig) { c.Color.WheelSteps = 0 }, true},
		{"too many wheel steps", func(c *ChromaConfig) { c.Color.WheelSteps = 1000 }, true},
		{"unknown backend", func(c *ChromaConfig) { c.Store.Backend = "postgres" }, true},
		{"unknown level", func(c *ChromaConfig) { c.Logging.Level = "verbose" }, true},
		{"empty level", func(c *ChromaConfig) { c.Logging.Level = "" }, false},
		{"negative retention count", func(c *ChromaConfig) { c.Backup.Retention.MaxCount = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Default()
			tt.mutate(config)
			err := config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
