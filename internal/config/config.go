package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	ContentPath string        `mapstructure:"path"`
	Start       string        `mapstructure:"start"`
	Files       []string      `mapstructure:"files"`
	Theme       string        `mapstructure:"theme"`
	NavWidth    int           `mapstructure:"nav_width"`
	TOCWidth    int           `mapstructure:"toc_width"`
	SpyMargin   int           `mapstructure:"spy_margin"`
	ColorAccent string        `mapstructure:"color_accent"`
	ColorCode   string        `mapstructure:"color_code"`
	ColorBorder string        `mapstructure:"color_border"`
	ColorDim    string        `mapstructure:"color_dim"`
	Watch       bool          `mapstructure:"watch"`
	CacheSize   int           `mapstructure:"cache_size"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	LogFile     string        `mapstructure:"log_file"`
	Editor      string        `mapstructure:"editor"`
}

// C is the global config instance
var C Config

// Init initializes configuration with viper
func Init() error {
	// A .env next to the content is optional
	_ = godotenv.Load()

	viper.SetDefault("path", ".")
	viper.SetDefault("start", "getting-started")
	viper.SetDefault("files", []string{})
	viper.SetDefault("theme", "dark")
	viper.SetDefault("nav_width", 28) // Section list column
	viper.SetDefault("toc_width", 30) // Table of contents column
	viper.SetDefault("spy_margin", 2) // Lines below the top that still count as "in view"

	// Empty colors keep the theme's palette
	viper.SetDefault("color_accent", "")
	viper.SetDefault("color_code", "")
	viper.SetDefault("color_border", "")
	viper.SetDefault("color_dim", "")

	viper.SetDefault("watch", false)
	viper.SetDefault("cache_size", 64)
	viper.SetDefault("http_timeout", 10*time.Second)
	viper.SetDefault("log_file", "")
	viper.SetDefault("editor", "")

	viper.SetConfigName("docmd")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "docmd"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("DOCMD")
	viper.AutomaticEnv()

	// Try to read config, but don't fail if not found or malformed
	_ = viper.ReadInConfig()

	return viper.Unmarshal(&C)
}

// GetPath returns the content location with tilde expansion.
// URLs are returned unchanged.
func GetPath() string {
	return expandTilde(viper.GetString("path"))
}

// expandTilde expands ~ to the user's home directory
func expandTilde(path string) string {
	if len(path) == 0 {
		return path
	}
	if path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetStart returns the preferred first section id
func GetStart() string {
	return viper.GetString("start")
}

// GetFiles returns the fixed document list, empty for directory discovery
func GetFiles() []string {
	return viper.GetStringSlice("files")
}

// GetTheme returns "dark" or "light"
func GetTheme() string {
	if viper.GetString("theme") == "light" {
		return "light"
	}
	return "dark"
}

// GetNavWidth returns the section list width
func GetNavWidth() int {
	return viper.GetInt("nav_width")
}

// GetTOCWidth returns the table of contents width
func GetTOCWidth() int {
	return viper.GetInt("toc_width")
}

// GetSpyMargin returns how many lines below the viewport top a heading may
// sit and still be the active one
func GetSpyMargin() int {
	return viper.GetInt("spy_margin")
}

// GetColorAccent returns the color for active entries and headings
func GetColorAccent() string {
	return viper.GetString("color_accent")
}

// GetColorCode returns the color for code spans and blocks
func GetColorCode() string {
	return viper.GetString("color_code")
}

// GetColorBorder returns the color for borders and dividers
func GetColorBorder() string {
	return viper.GetString("color_border")
}

// GetColorDim returns the color for muted text
func GetColorDim() string {
	return viper.GetString("color_dim")
}

// GetWatch returns whether local content is watched for changes
func GetWatch() bool {
	return viper.GetBool("watch")
}

// GetCacheSize returns the number of documents kept in memory
func GetCacheSize() int {
	if n := viper.GetInt("cache_size"); n > 0 {
		return n
	}
	return 1
}

// GetHTTPTimeout returns the timeout for remote fetches
func GetHTTPTimeout() time.Duration {
	return viper.GetDuration("http_timeout")
}

// GetLogFile returns the debug log path, empty to disable logging
func GetLogFile() string {
	return expandTilde(viper.GetString("log_file"))
}

// GetEditor returns the editor command, falling back to $EDITOR
func GetEditor() string {
	if editor := viper.GetString("editor"); editor != "" {
		return editor
	}
	return os.Getenv("EDITOR")
}

// SetPath sets path at runtime
func SetPath(path string) {
	viper.Set("path", path)
	C.ContentPath = path
}

// SetTheme sets the theme at runtime
func SetTheme(theme string) {
	viper.Set("theme", theme)
	C.Theme = theme
}
