package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("COMPGEN_CONFIG", "")
	t.Setenv("AI_MODEL", "")
	t.Setenv("OPENROUTER_BASE_URL", "")
	cfg := LoadConfig()
	if cfg.Model != "mistralai/mixtral-8x7b-instruct" {
		t.Errorf("unexpected default model: %q", cfg.Model)
	}
	if cfg.OpenRouterBaseURL != "https://openrouter.ai/api/v1" {
		t.Errorf("unexpected default base url: %q", cfg.OpenRouterBaseURL)
	}
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("COMPGEN_CONFIG", "")
	t.Setenv("JWT_SECRET", "shh")
	t.Setenv("OPENROUTER_API_KEY", "sk-test")
	cfg := LoadConfig()
	if cfg.JWTSecret != "shh" {
		t.Errorf("expected env jwt secret, got %q", cfg.JWTSecret)
	}
	if cfg.OpenRouterAPIKey != "sk-test" {
		t.Errorf("expected env api key, got %q", cfg.OpenRouterAPIKey)
	}
}

func TestLoadConfigYAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compgen.yaml")
	data := "model: openai/gpt-4o\ndb_name: compgen_test\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	t.Setenv("COMPGEN_CONFIG", path)
	t.Setenv("AI_MODEL", "env-model")
	t.Setenv("DB_HOST", "db.internal")
	cfg := LoadConfig()
	if cfg.Model != "openai/gpt-4o" {
		t.Errorf("yaml should win over env, got %q", cfg.Model)
	}
	if cfg.DBName != "compgen_test" {
		t.Errorf("yaml db_name not applied, got %q", cfg.DBName)
	}
	if cfg.DBHost != "db.internal" {
		t.Errorf("env fields outside the overlay must survive, got %q", cfg.DBHost)
	}
}
