package main

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/kpango/glg"
)

// EnvConfig specifies all of the configuration that needs to be setup on
// different hosts or for different environments. This includes things like
// log level, the fetch chunk size, and where the store and manifest files
// live on disk. FetchChunkAmount (default 50, DCLI_FETCH_CHUNK_AMOUNT) is
// read but not passed to the engine: the fetch phase always uses
// bungie.PGCRRequestChunkAmount, and the request deadline is not configurable.
type EnvConfig struct {
	BungieAPIKey      string `json:"bungie_api_key"`
	StoreDir          string `json:"store_dir"`
	ManifestPath      string `json:"manifest_path"`
	LogLevel          string `json:"log_level"`
	LogFilePath       string `json:"log_file_path"`
	FixCorruptData    bool   `json:"fix_corrupt_data"`
	Port              string `json:"port"`
	FetchChunkAmount  int    `json:"fetch_chunk_amount"`
}

// NewEnvConfig creates a default instance of the EnvConfig struct, reading
// every field from the environment.
func NewEnvConfig() *EnvConfig {
	config := &EnvConfig{
		BungieAPIKey:     os.Getenv("BUNGIE_API_KEY"),
		StoreDir:         os.Getenv("DCLI_STORE_DIR"),
		ManifestPath:     os.Getenv("DCLI_MANIFEST_PATH"),
		LogLevel:         os.Getenv("DCLI_LOG_LEVEL"),
		LogFilePath:      os.Getenv("DCLI_LOG_FILE_PATH"),
		FixCorruptData:   strings.EqualFold(os.Getenv("FIX_CORRUPT_DATA"), "true"),
		Port:             os.Getenv("PORT"),
		FetchChunkAmount: 50,
	}

	if config.StoreDir == "" {
		if wd, err := os.Getwd(); err == nil {
			config.StoreDir = wd
		}
	}
	if config.Port == "" {
		config.Port = "8080"
	}
	if n, err := strconv.Atoi(os.Getenv("DCLI_FETCH_CHUNK_AMOUNT")); err == nil && n > 0 {
		config.FetchChunkAmount = n
	}

	return config
}

// loadConfig starts from the environment then applies a JSON override file,
// if one is specified, for local/dev runs.
func loadConfig(path string) *EnvConfig {
	config := NewEnvConfig()
	if path == "" {
		return config
	}

	in, err := os.Open(path)
	if err != nil {
		glg.Errorf("failed opening config override file: %s", err.Error())
		return config
	}
	defer in.Close()

	if err := json.NewDecoder(in).Decode(config); err != nil {
		glg.Errorf("failed deserializing config override JSON: %s", err.Error())
	}

	return config
}
