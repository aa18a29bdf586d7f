package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Search  SearchConfig  `mapstructure:"search"`
	Storage StorageConfig `mapstructure:"storage"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
	Proxy   ProxyConfig   `mapstructure:"proxy"`
}

// APIConfig holds movie database access configuration
type APIConfig struct {
	BaseURL  string `mapstructure:"base_url"`  // OMDb endpoint
	Key      string `mapstructure:"key"`       // OMDb API key (direct mode)
	ProxyURL string `mapstructure:"proxy_url"` // Credential proxy endpoint (proxy mode, no key on the client)
}

// SearchConfig holds search behaviour
type SearchConfig struct {
	MinQueryLength int           `mapstructure:"min_query_length"`
	Debounce       time.Duration `mapstructure:"debounce"`
}

// StorageConfig holds local persistence configuration
type StorageConfig struct {
	Path string `mapstructure:"path"` // BoltDB file; empty = memory only
}

// UIConfig holds UI configuration
type UIConfig struct {
	Title       string   `mapstructure:"title"`        // Window title when no movie is open
	MaxRating   int      `mapstructure:"max_rating"`   // Stars on the rating control
	Browser     string   `mapstructure:"browser"`      // Command used to open movie pages, empty for system default
	BrowserArgs []string `mapstructure:"browser_args"` // Extra arguments for the browser
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// ProxyConfig holds the credential proxy server configuration
type ProxyConfig struct {
	Listen          string        `mapstructure:"listen"`
	UpstreamTimeout time.Duration `mapstructure:"upstream_timeout"`
	OTLPEndpoint    string        `mapstructure:"otlp_endpoint"` // host:port of an OTLP/gRPC collector, empty disables tracing export
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "https://www.omdbapi.com/",
		},
		Search: SearchConfig{
			MinQueryLength: 3,
			Debounce:       time.Second,
		},
		Storage: StorageConfig{
			Path: filepath.Join(defaultDataPath(), "popcorn.db"),
		},
		UI: UIConfig{
			Title:     "popcorn",
			MaxRating: 10,
		},
		Logging: LoggingConfig{
			File:       filepath.Join(defaultDataPath(), "popcorn.log"),
			Level:      "INFO",
			MaxSizeMB:  5,
			MaxBackups: 3,
		},
		Proxy: ProxyConfig{
			Listen:          ":8085",
			UpstreamTimeout: 15 * time.Second,
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "popcorn")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "popcorn")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "popcorn")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "popcorn")
	}
}

// LoadConfig loads configuration from file and environment.
// An explicit path overrides the default search locations.
func LoadConfig(path string) (*Config, error) {
	return loadConfig(viper.GetViper(), path)
}

func loadConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()
	setDefaults(v, cfg)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides (POPCORN_API_KEY, POPCORN_SEARCH_DEBOUNCE, ...)
	v.SetEnvPrefix("POPCORN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it during Unmarshal
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("api.base_url", cfg.API.BaseURL)
	v.SetDefault("api.key", cfg.API.Key)
	v.SetDefault("api.proxy_url", cfg.API.ProxyURL)
	v.SetDefault("search.min_query_length", cfg.Search.MinQueryLength)
	v.SetDefault("search.debounce", cfg.Search.Debounce)
	v.SetDefault("storage.path", cfg.Storage.Path)
	v.SetDefault("ui.title", cfg.UI.Title)
	v.SetDefault("ui.max_rating", cfg.UI.MaxRating)
	v.SetDefault("ui.browser", cfg.UI.Browser)
	v.SetDefault("ui.browser_args", cfg.UI.BrowserArgs)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.max_size_mb", cfg.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", cfg.Logging.MaxBackups)
	v.SetDefault("proxy.listen", cfg.Proxy.Listen)
	v.SetDefault("proxy.upstream_timeout", cfg.Proxy.UpstreamTimeout)
	v.SetDefault("proxy.otlp_endpoint", cfg.Proxy.OTLPEndpoint)
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	return saveConfig(viper.GetViper(), cfg, defaultConfigPath())
}

func saveConfig(v *viper.Viper, cfg *Config, configPath string) error {
	// Ensure config directory exists
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.key", cfg.API.Key)
	v.Set("api.proxy_url", cfg.API.ProxyURL)

	v.Set("search.min_query_length", cfg.Search.MinQueryLength)
	v.Set("search.debounce", cfg.Search.Debounce.String())

	v.Set("storage.path", cfg.Storage.Path)

	v.Set("ui.title", cfg.UI.Title)
	v.Set("ui.max_rating", cfg.UI.MaxRating)
	v.Set("ui.browser", cfg.UI.Browser)
	v.Set("ui.browser_args", cfg.UI.BrowserArgs)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)
	v.Set("logging.max_size_mb", cfg.Logging.MaxSizeMB)
	v.Set("logging.max_backups", cfg.Logging.MaxBackups)

	v.Set("proxy.listen", cfg.Proxy.Listen)
	v.Set("proxy.upstream_timeout", cfg.Proxy.UpstreamTimeout.String())
	v.Set("proxy.otlp_endpoint", cfg.Proxy.OTLPEndpoint)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if the client can reach the movie API,
// either with its own key or through a proxy
func (c *Config) IsConfigured() bool {
	return c.API.Key != "" || c.API.ProxyURL != ""
}

// Validate checks values the rest of the program relies on
func (c *Config) Validate() error {
	if c.Search.MinQueryLength < 0 {
		return fmt.Errorf("search.min_query_length must not be negative")
	}
	if c.Search.Debounce < 0 {
		return fmt.Errorf("search.debounce must not be negative")
	}
	if c.UI.MaxRating < 1 || c.UI.MaxRating > 10 {
		return fmt.Errorf("ui.max_rating must be between 1 and 10")
	}
	return nil
}

// ConfigFilePath returns the path SaveConfig writes to
func ConfigFilePath() string {
	return filepath.Join(defaultConfigPath(), "config.yaml")
}
