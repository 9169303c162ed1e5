package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	vars := []string{
		"BUNGIE_API_KEY", "DCLI_STORE_DIR", "DCLI_MANIFEST_PATH", "DCLI_LOG_LEVEL",
		"DCLI_LOG_FILE_PATH", "FIX_CORRUPT_DATA", "PORT", "DCLI_FETCH_CHUNK_AMOUNT",
	}
	for _, v := range vars {
		old, had := os.LookupEnv(v)
		os.Unsetenv(v)
		t.Cleanup(func() {
			if had {
				os.Setenv(v, old)
			}
		})
	}
}

func TestNewEnvConfigDefaults(t *testing.T) {
	clearConfigEnv(t)

	config := NewEnvConfig()
	if config.Port != "8080" {
		t.Errorf("Port = %q, want %q", config.Port, "8080")
	}
	if config.FetchChunkAmount != 50 {
		t.Errorf("FetchChunkAmount = %d, want 50", config.FetchChunkAmount)
	}
	if config.StoreDir == "" {
		t.Error("StoreDir should fall back to the working directory")
	}
}

func TestNewEnvConfigHonorsFetchChunkAmountOverride(t *testing.T) {
	clearConfigEnv(t)
	os.Setenv("DCLI_FETCH_CHUNK_AMOUNT", "25")

	config := NewEnvConfig()
	if config.FetchChunkAmount != 25 {
		t.Errorf("FetchChunkAmount = %d, want 25", config.FetchChunkAmount)
	}
}

func TestNewEnvConfigIgnoresInvalidFetchChunkAmount(t *testing.T) {
	clearConfigEnv(t)
	os.Setenv("DCLI_FETCH_CHUNK_AMOUNT", "not-a-number")

	config := NewEnvConfig()
	if config.FetchChunkAmount != 50 {
		t.Errorf("FetchChunkAmount = %d, want 50 (default retained on parse error)", config.FetchChunkAmount)
	}
}

func TestLoadConfigAppliesJSONOverride(t *testing.T) {
	clearConfigEnv(t)
	os.Setenv("BUNGIE_API_KEY", "env-key")

	override := filepath.Join(t.TempDir(), "config.json")
	body, _ := json.Marshal(map[string]interface{}{
		"port":     "9090",
		"log_level": "DEBUG",
	})
	if err := os.WriteFile(override, body, 0o600); err != nil {
		t.Fatalf("writing override file: %v", err)
	}

	config := loadConfig(override)
	if config.Port != "9090" {
		t.Errorf("Port = %q, want %q", config.Port, "9090")
	}
	if config.LogLevel != "DEBUG" {
		t.Errorf("LogLevel = %q, want %q", config.LogLevel, "DEBUG")
	}
	if config.BungieAPIKey != "env-key" {
		t.Errorf("BungieAPIKey = %q, want the env-derived value to survive the override", config.BungieAPIKey)
	}
}

func TestLoadConfigMissingFileFallsBackToEnv(t *testing.T) {
	clearConfigEnv(t)
	os.Setenv("PORT", "7070")

	config := loadConfig(filepath.Join(t.TempDir(), "missing.json"))
	if config.Port != "7070" {
		t.Errorf("Port = %q, want %q (missing override file must not be fatal)", config.Port, "7070")
	}
}
