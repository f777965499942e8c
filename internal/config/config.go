package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultChatName     = "chat name"
	DefaultConcurrency  = 10
	DefaultMessageLimit = 500
	DefaultDialogLimit  = 100
	DefaultDownloadDir  = "telegram_arw_downloads"
	DefaultFilePattern  = `DS.*\.ARW$`
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "console"
	DefaultEnvFile      = ".env"
)

// Config is the immutable run configuration. Build it with Load.
type Config struct {
	APIID   int
	APIHash string
	Phone   string

	ChatName     string
	Concurrency  int
	MessageLimit int
	DialogLimit  int
	DownloadDir  string
	FilePattern  string
	SessionFile  string

	LogLevel  string
	LogFormat string
}

// Load resolves the configuration from command-line args, the process
// environment and an optional dotenv file, in that order of precedence.
func Load(args []string) (Config, error) {
	fs := pflag.NewFlagSet("tgfetch", pflag.ContinueOnError)
	fs.String("env-file", DefaultEnvFile, "dotenv file with APP_ID, APP_HASH, PHONE_NUMBER, ...")
	fs.String("chat", DefaultChatName, "substring of the conversation name")
	fs.Int("concurrency", DefaultConcurrency, "maximum simultaneous downloads per window")
	fs.Int("limit", DefaultMessageLimit, "number of recent messages to scan")
	fs.String("dir", DefaultDownloadDir, "destination directory")
	fs.String("pattern", DefaultFilePattern, "case-insensitive filename regular expression")
	fs.String("log-level", DefaultLogLevel, "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetDefault("chat_name", DefaultChatName)
	v.SetDefault("concurrency_limit", DefaultConcurrency)
	v.SetDefault("message_limit", DefaultMessageLimit)
	v.SetDefault("dialog_limit", DefaultDialogLimit)
	v.SetDefault("download_dir", DefaultDownloadDir)
	v.SetDefault("file_pattern", DefaultFilePattern)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_format", DefaultLogFormat)

	envFile, _ := fs.GetString("env-file")
	if err := readEnvFile(v, envFile); err != nil {
		return Config{}, err
	}
	v.AutomaticEnv()

	bindings := map[string]string{
		"chat_name":         "chat",
		"concurrency_limit": "concurrency",
		"message_limit":     "limit",
		"download_dir":      "dir",
		"file_pattern":      "pattern",
		"log_level":         "log-level",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return Config{}, fmt.Errorf("binding flag %s: %w", flag, err)
		}
	}

	cfg := Config{
		APIHash:     strings.TrimSpace(v.GetString("app_hash")),
		Phone:       strings.TrimSpace(v.GetString("phone_number")),
		ChatName:    v.GetString("chat_name"),
		DownloadDir: v.GetString("download_dir"),
		FilePattern: v.GetString("file_pattern"),
		SessionFile: v.GetString("session_file"),
		LogLevel:    strings.ToLower(v.GetString("log_level")),
		LogFormat:   strings.ToLower(v.GetString("log_format")),
	}

	var err error
	if cfg.APIID, err = requiredInt(v, "app_id"); err != nil {
		return Config{}, err
	}
	if cfg.Concurrency, err = intValue(v, "concurrency_limit"); err != nil {
		return Config{}, err
	}
	if cfg.MessageLimit, err = intValue(v, "message_limit"); err != nil {
		return Config{}, err
	}
	if cfg.DialogLimit, err = intValue(v, "dialog_limit"); err != nil {
		return Config{}, err
	}

	if cfg.SessionFile == "" {
		dir, err := dataDirectory()
		if err != nil {
			return Config{}, fmt.Errorf("failed to determine data directory: %w", err)
		}
		cfg.SessionFile = filepath.Join(dir, "session.json")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid or missing setting.
func (c Config) Validate() error {
	if c.APIID <= 0 {
		return errors.New("APP_ID must be a positive integer")
	}
	if c.APIHash == "" {
		return errors.New("APP_HASH is required")
	}
	if c.Phone == "" {
		return errors.New("PHONE_NUMBER is required")
	}
	if strings.TrimSpace(c.ChatName) == "" {
		return errors.New("CHAT_NAME must not be empty")
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("CONCURRENCY_LIMIT must be positive, got %d", c.Concurrency)
	}
	if c.MessageLimit <= 0 {
		return fmt.Errorf("MESSAGE_LIMIT must be positive, got %d", c.MessageLimit)
	}
	if c.DialogLimit <= 0 {
		return fmt.Errorf("DIALOG_LIMIT must be positive, got %d", c.DialogLimit)
	}
	if c.DownloadDir == "" {
		return errors.New("DOWNLOAD_DIR must not be empty")
	}
	if _, err := regexp.Compile("(?i)" + c.FilePattern); err != nil {
		return fmt.Errorf("FILE_PATTERN is not a valid expression: %w", err)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be console or json, got %q", c.LogFormat)
	}
	return nil
}

func readEnvFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == DefaultEnvFile && (errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound)) {
			return nil
		}
		return fmt.Errorf("reading env file %s: %w", path, err)
	}
	return nil
}

func requiredInt(v *viper.Viper, key string) (int, error) {
	name := strings.ToUpper(key)
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", name, err)
	}
	return n, nil
}

func intValue(v *viper.Viper, key string) (int, error) {
	raw := strings.TrimSpace(v.GetString(key))
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", strings.ToUpper(key), err)
	}
	return n, nil
}

func dataDirectory() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "tgfetch"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "tgfetch"), nil
}
