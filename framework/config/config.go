package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the central typed configuration struct.
// Embed or extend it in your app's own AppConfig.
type Config struct {
	App    AppConfig
	Log    LogConfig
	Upload UploadConfig
}

type AppConfig struct {
	Name  string
	Env   string // local | production | testing
	Debug bool
	URL   string
	Port  string
}

type LogConfig struct {
	Level  string // trace | debug | info | warn | error
	Pretty bool
}

// UploadConfig bounds multipart intake. MaxBytes is the per-file ceiling
// enforced at parse time; files over it are recorded as oversize and never
// touch disk.
type UploadConfig struct {
	TmpDir    string
	MaxBytes  int64
	MaxMemory int64
}

// Load reads .env (if present) and populates a Config from environment variables.
// Call once at bootstrap: cfg := config.Load()
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	return &Config{
		App: AppConfig{
			Name:  env("APP_NAME", "GoUploads"),
			Env:   env("APP_ENV", "local"),
			Debug: envBool("APP_DEBUG", true),
			URL:   env("APP_URL", "http://localhost"),
			Port:  env("APP_PORT", "8000"),
		},
		Log: LogConfig{
			Level:  env("LOG_LEVEL", "info"),
			Pretty: envBool("LOG_PRETTY", true),
		},
		Upload: UploadConfig{
			TmpDir:    env("UPLOAD_TMP_DIR", os.TempDir()),
			MaxBytes:  envInt64("UPLOAD_MAX_BYTES", 0),
			MaxMemory: envInt64("UPLOAD_MAX_MEMORY", 32<<20),
		},
	}
}

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	return envBool(key, defaultVal)
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return i
}
