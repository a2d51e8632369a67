package update

import (
	"os"
	"strings"

	"github.com/sandeepkv93/recurcal/internal/schedule"
)

type RuntimeConfig struct {
	ConfigPath   string
	LogFile      string
	LogLevel     string
	WeekStart    string
	StrictBounds bool
	ExportPath   string
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		ConfigPath: "recurcal.yaml",
		LogLevel:   "info",
		ExportPath: "recurcal.ics",
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("RECURCAL_CONFIG"); ok {
		cfg.ConfigPath = v
	}
	if v, ok := getEnvString("RECURCAL_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvString("RECURCAL_LOG_LEVEL"); ok {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := getEnvString("RECURCAL_WEEK_START"); ok {
		cfg.WeekStart = strings.ToLower(v)
	}
	if v, ok := getEnvBool("RECURCAL_STRICT_BOUNDS"); ok {
		cfg.StrictBounds = v
	}
	if v, ok := getEnvString("RECURCAL_EXPORT_PATH"); ok {
		cfg.ExportPath = v
	}
	return cfg
}

// ApplyTo overlays the process settings on a schedule config. A week start
// from the environment outranks the file; strict bounds can only be turned
// on.
func (rc RuntimeConfig) ApplyTo(cfg schedule.Config) schedule.Config {
	if rc.WeekStart != "" {
		cfg.WeekStart = rc.WeekStart
	}
	if rc.StrictBounds {
		cfg.StrictBounds = true
	}
	return cfg
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
