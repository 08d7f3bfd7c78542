package startup

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"event-media/internal/logging"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// Config holds all application configuration
type Config struct {
	Port        string
	DatabaseDir string

	// Object store
	StoreEndpoint  string
	StoreAccessKey string
	StoreSecretKey string
	StoreBucket    string
	StoreRegion    string
	StoreUseSSL    bool
	StorePublicURL string

	// Pipeline tuning
	MediaPrefix      string
	PageSize         int
	TargetFrameCount int
	FaceThumbSize    int

	// Derived paths
	FaceDBPath string
}

// LoadConfig loads and validates configuration from environment variables
func LoadConfig() (*Config, error) {
	logging.Info("------------------------------------------------------------")
	logging.Info("event-media %s (%s) starting", Version, Commit)
	logging.Info("------------------------------------------------------------")

	config := &Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseDir:    getEnv("DATABASE_DIR", "/database"),
		StoreEndpoint:  getEnv("STORE_ENDPOINT", ""),
		StoreAccessKey: getEnv("STORE_ACCESS_KEY", ""),
		StoreSecretKey: getEnv("STORE_SECRET_KEY", ""),
		StoreBucket:    getEnv("STORE_BUCKET", "event-media"),
		StoreRegion:    getEnv("STORE_REGION", ""),
		StoreUseSSL:    getEnvBool("STORE_USE_SSL", true),
		StorePublicURL: getEnv("STORE_PUBLIC_URL", ""),

		MediaPrefix:      getEnv("MEDIA_PREFIX", "events"),
		PageSize:         getEnvInt("PAGE_SIZE", 20),
		TargetFrameCount: getEnvInt("TARGET_FRAME_COUNT", 10),
		FaceThumbSize:    getEnvInt("FACE_THUMB_SIZE", 96),
	}

	if config.StoreEndpoint == "" {
		return nil, fmt.Errorf("STORE_ENDPOINT is required")
	}
	if config.StoreAccessKey == "" || config.StoreSecretKey == "" {
		return nil, fmt.Errorf("STORE_ACCESS_KEY and STORE_SECRET_KEY are required")
	}
	if config.PageSize < 1 {
		logging.Warn("Invalid PAGE_SIZE, using default: 20")
		config.PageSize = 20
	}
	if config.TargetFrameCount < 1 {
		logging.Warn("Invalid TARGET_FRAME_COUNT, using default: 10")
		config.TargetFrameCount = 10
	}

	databaseDir, err := filepath.Abs(config.DatabaseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database directory path: %w", err)
	}
	config.DatabaseDir = databaseDir
	config.FaceDBPath = filepath.Join(databaseDir, "faces.db")

	if err := ensureDirectory(databaseDir); err != nil {
		return nil, fmt.Errorf("database directory error: %w", err)
	}
	if err := testWriteAccess(databaseDir); err != nil {
		return nil, fmt.Errorf("database directory is not writable: %w", err)
	}

	logging.Info("  PORT:               %s", config.Port)
	logging.Info("  DATABASE_DIR:       %s", config.DatabaseDir)
	logging.Info("  STORE_ENDPOINT:     %s", config.StoreEndpoint)
	logging.Info("  STORE_BUCKET:       %s", config.StoreBucket)
	logging.Info("  STORE_USE_SSL:      %v", config.StoreUseSSL)
	logging.Info("  MEDIA_PREFIX:       %s", config.MediaPrefix)
	logging.Info("  PAGE_SIZE:          %d", config.PageSize)
	logging.Info("  TARGET_FRAME_COUNT: %d", config.TargetFrameCount)
	logging.Info("  FACE_THUMB_SIZE:    %d", config.FaceThumbSize)
	logging.Info("  LOG_LEVEL:          %s", logging.GetLevel())

	return config, nil
}

// LogFatal logs a fatal error and exits
func LogFatal(format string, args ...interface{}) {
	logging.Fatal(format, args...)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logging.Warn("Invalid boolean for %s: %q, using %v", key, value, fallback)
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		logging.Warn("Invalid integer for %s: %q, using %d", key, value, fallback)
		return fallback
	}
	return parsed
}

func ensureDirectory(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return os.MkdirAll(path, 0755)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s exists but is not a directory", path)
	}
	return nil
}

func testWriteAccess(dir string) error {
	probe := filepath.Join(dir, ".write-test")
	if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
		return err
	}
	return os.Remove(probe)
}
