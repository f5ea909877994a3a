package server

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the HTTP server configuration.
type Config struct {
	// ListenAddr is the host:port the server binds to.
	ListenAddr string `yaml:"listen_addr"`

	// CORSOrigins lists allowed Origin header values. "*" allows any.
	CORSOrigins []string `yaml:"cors_origins"`

	// MaxUploadBytes caps /process-image request bodies.
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`

	// DBPath overrides the default event database location.
	DBPath string `yaml:"db_path"`

	// OCRAPIKey authenticates against the OCR.space API. When empty,
	// /process-image answers 503.
	OCRAPIKey string `yaml:"ocr_api_key"`
}

// DefaultConfig returns a Config with the stock settings: port 8000, any
// origin, 5 MiB uploads.
func DefaultConfig() Config {
	return Config{
		ListenAddr:     ":8000",
		CORSOrigins:    []string{"*"},
		MaxUploadBytes: 5 << 20,
	}
}

// ConfigFromEnv builds a Config from GEOCHAT_* environment variables,
// falling back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if a := os.Getenv("GEOCHAT_LISTEN_ADDR"); a != "" {
		cfg.ListenAddr = a
	}
	if o := os.Getenv("GEOCHAT_CORS_ORIGINS"); o != "" {
		cfg.CORSOrigins = splitList(o)
	}
	if v := os.Getenv("GEOCHAT_MAX_UPLOAD_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.MaxUploadBytes = n
		}
	}
	if d := os.Getenv("GEOCHAT_DB"); d != "" {
		cfg.DBPath = d
	}
	if k := os.Getenv("GEOCHAT_OCR_API_KEY"); k != "" {
		cfg.OCRAPIKey = k
	}

	return cfg
}

// LoadConfigFile overlays a YAML config file on the environment
// configuration. Fields absent from the file keep their env or default
// values.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := ConfigFromEnv()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
