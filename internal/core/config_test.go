package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}
	return configPath
}

func TestLoadConfig_Success(t *testing.T) {
	configPath := writeConfig(t, `port: 8080
logLevel: debug
database:
  type: sqlite
  connectionString: ":memory:"
redis:
  address: "localhost:6379"
  db: 2
  ttl: 10m
thumbnail:
  scriptUrl: "https://render.example.org/thumb.php"
  maxWidth: 2048
`)

	config, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.Port != 8080 {
		t.Errorf("Expected port to be 8080, got %d", config.Port)
	}
	if config.Database.Type != "sqlite" || config.Database.ConnectionString != ":memory:" {
		t.Errorf("Unexpected database config %+v", config.Database)
	}
	if config.Redis.TTL != 10*time.Minute || config.Redis.DB != 2 {
		t.Errorf("Unexpected redis config %+v", config.Redis)
	}
	if config.Thumbnail.MaxWidth != 2048 {
		t.Errorf("Expected maxWidth 2048, got %d", config.Thumbnail.MaxWidth)
	}
	if config.Thumbnail.MaxUploadBytes != defaultMaxUploadBytes {
		t.Errorf("Expected default maxUploadBytes, got %d", config.Thumbnail.MaxUploadBytes)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	configPath := writeConfig(t, `port: 8080
database:
  type: sqlite
  connectionString: ":memory:"
`)

	config, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.LogLevel != "info" {
		t.Errorf("Expected default log level info, got %q", config.LogLevel)
	}
	if config.Redis.TTL != defaultCacheTTL {
		t.Errorf("Expected default TTL, got %v", config.Redis.TTL)
	}
	if config.Thumbnail.MaxWidth != defaultMaxWidth {
		t.Errorf("Expected default maxWidth, got %d", config.Thumbnail.MaxWidth)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	config, err := LoadConfig("/path/that/does/not/exist/config.yaml")
	if err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}
	if config != nil {
		t.Error("Expected config to be nil when file doesn't exist")
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "Malformed YAML", content: "port: [8080"},
		{name: "Missing port", content: "database:\n  type: sqlite\n  connectionString: x\n"},
		{name: "Unsupported database", content: "port: 80\ndatabase:\n  type: oracle\n  connectionString: x\n"},
		{name: "Bad script URL", content: "port: 80\ndatabase:\n  type: sqlite\n  connectionString: x\nthumbnail:\n  scriptUrl: not a url\n"},
		{name: "Bad log level", content: "port: 80\nlogLevel: loud\ndatabase:\n  type: sqlite\n  connectionString: x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tt.content)); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}
