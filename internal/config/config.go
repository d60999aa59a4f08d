package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const appName = "contexttasks"

type Config struct {
	DBPath         string `mapstructure:"db_path"`
	Timezone       string `mapstructure:"timezone"`
	ToastSeconds   int    `mapstructure:"toast_seconds"`
	RecheckSeconds int    `mapstructure:"recheck_seconds"`
	MarkdownStyle  string `mapstructure:"markdown_style"`
	DebugLog       string `mapstructure:"debug_log"`

	Location *time.Location `mapstructure:"-"`
}

func DefaultConfig() Config {
	return Config{
		DBPath:         defaultDBPath(),
		Timezone:       "Local",
		ToastSeconds:   2,
		RecheckSeconds: 60,
		MarkdownStyle:  "dark",
		Location:       time.Local,
	}
}

func (c Config) ToastDuration() time.Duration {
	return time.Duration(c.ToastSeconds) * time.Second
}

func (c Config) RecheckInterval() time.Duration {
	return time.Duration(c.RecheckSeconds) * time.Second
}

// Load layers the optional YAML file, a .env file and CONTEXTTASKS_*
// environment variables over the defaults, in that order.
func Load() (Config, error) {
	cfg := DefaultConfig()
	if err := loadFile(FilePath(), &cfg); err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("config: read %s: %w", FilePath(), err)
	}
	_ = godotenv.Load()
	cfg = FromEnv(cfg)
	return cfg.resolve(), nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return err
	}
	return v.Unmarshal(cfg)
}

func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("CONTEXTTASKS_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("CONTEXTTASKS_TIMEZONE"); ok {
		cfg.Timezone = v
	}
	if v, ok := getEnvInt("CONTEXTTASKS_TOAST_SECONDS"); ok && v > 0 {
		cfg.ToastSeconds = v
	}
	if v, ok := getEnvInt("CONTEXTTASKS_RECHECK_SECONDS"); ok && v > 0 {
		cfg.RecheckSeconds = v
	}
	if v, ok := getEnvString("CONTEXTTASKS_MARKDOWN_STYLE"); ok {
		cfg.MarkdownStyle = v
	}
	if v, ok := getEnvString("CONTEXTTASKS_DEBUG_LOG"); ok {
		cfg.DebugLog = v
	} else if debug, ok := getEnvBool("CONTEXTTASKS_DEBUG"); ok && debug {
		cfg.DebugLog = appName + "-debug.log"
	}
	return cfg
}

func (c Config) resolve() Config {
	out := c
	loc, err := time.LoadLocation(out.Timezone)
	if err != nil {
		log.Printf("config: invalid timezone %q, defaulting to system local: %v", out.Timezone, err)
		loc = time.Local
	}
	out.Location = loc
	if out.ToastSeconds <= 0 {
		out.ToastSeconds = 2
	}
	if out.RecheckSeconds <= 0 {
		out.RecheckSeconds = 60
	}
	if strings.TrimSpace(out.DBPath) == "" {
		out.DBPath = defaultDBPath()
	}
	return out
}

// FilePath is $XDG_CONFIG_HOME/contexttasks/config.yaml, falling back to
// ~/.config.
func FilePath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".", appName, "config.yaml")
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appName, "config.yaml")
}

func defaultDBPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return appName + ".db"
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, appName, appName+".db")
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvInt(name string) (int, bool) {
	raw, ok := getEnvString(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw, ok := getEnvString(name)
	if !ok {
		return false, false
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
