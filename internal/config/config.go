package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. TICKETTIX_API_BASE.
const EnvPrefix = "TICKETTIX"

const fileName = ".tickettix.yaml"

// Defaults.
const (
	DefaultAPIBase  = "http://localhost:50061"
	DefaultPageSize = 12
	DefaultTimeout  = 15 * time.Second
	DefaultRPS      = 10.0
	DefaultBurst    = 10
	DefaultLogLevel = "info"
	DefaultLogFile  = "debug.log"
)

// Config holds the application configuration.
type Config struct {
	// APIBase is the root URL of the ticket service.
	APIBase string `yaml:"api_base"`
	// PageSize is the number of events per browse page.
	PageSize int `yaml:"page_size"`
	// Timeout bounds every request.
	Timeout time.Duration `yaml:"timeout"`
	// RPS and Burst rate-limit outgoing requests.
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
	// RetryMax is the number of retries for reads. 0 disables retrying.
	RetryMax int    `yaml:"retry_max"`
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
	// Debug routes logs to LogFile.
	Debug bool `yaml:"debug,omitempty"`
	// Verbose keeps long log messages intact.
	Verbose bool `yaml:"verbose,omitempty"`

	// Path is the file the configuration was read from.
	Path string `yaml:"-"`
}

// Default returns an in-memory default configuration.
func Default() Config {
	return Config{
		APIBase:  DefaultAPIBase,
		PageSize: DefaultPageSize,
		Timeout:  DefaultTimeout,
		RPS:      DefaultRPS,
		Burst:    DefaultBurst,
		RetryMax: 0,
		LogLevel: DefaultLogLevel,
		LogFile:  DefaultLogFile,
	}
}

// Normalize repairs zero or invalid values so partially filled files still work.
func (c *Config) Normalize() {
	c.APIBase = strings.TrimRight(strings.TrimSpace(c.APIBase), "/")
	if c.APIBase == "" {
		c.APIBase = DefaultAPIBase
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RPS <= 0 {
		c.RPS = DefaultRPS
	}
	if c.Burst <= 0 {
		c.Burst = DefaultBurst
	}
	if c.RetryMax < 0 {
		c.RetryMax = 0
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
		c.LogLevel = strings.ToLower(c.LogLevel)
	default:
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFile == "" {
		c.LogFile = DefaultLogFile
	}
}

// DefaultPath returns ~/.tickettix.yaml, or the file name in the working
// directory when the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return fileName
	}
	return filepath.Join(home, fileName)
}

// Flag names registered by BindFlags.
const (
	FlagConfig   = "config"
	FlagAPIBase  = "api-base"
	FlagPageSize = "page-size"
	FlagTimeout  = "timeout"
	FlagRPS      = "rps"
	FlagBurst    = "burst"
	FlagRetryMax = "retry-max"
	FlagLogLevel = "log-level"
	FlagLogFile  = "log-file"
	FlagDebug    = "debug"
	FlagVerbose  = "verbose"
)

// BindFlags declares the configuration flags on fs.
func BindFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String(FlagConfig, "", "config file (default is $HOME/"+fileName+")")
	fs.String(FlagAPIBase, d.APIBase, "ticket service base URL")
	fs.Int(FlagPageSize, d.PageSize, "events per page")
	fs.Duration(FlagTimeout, d.Timeout, "per-request timeout")
	fs.Float64(FlagRPS, d.RPS, "requests per second")
	fs.Int(FlagBurst, d.Burst, "request burst")
	fs.Int(FlagRetryMax, d.RetryMax, "retries for failed reads (0 = none)")
	fs.String(FlagLogLevel, d.LogLevel, "log level: debug|info|warn|error")
	fs.String(FlagLogFile, d.LogFile, "log file used with --debug")
	fs.Bool(FlagDebug, false, "write logs to the log file")
	fs.Bool(FlagVerbose, false, "do not truncate long log messages")
}

// keys maps viper keys to the flags that override them.
var keys = map[string]string{
	"api_base":  FlagAPIBase,
	"page_size": FlagPageSize,
	"timeout":   FlagTimeout,
	"rps":       FlagRPS,
	"burst":     FlagBurst,
	"retry_max": FlagRetryMax,
	"log_level": FlagLogLevel,
	"log_file":  FlagLogFile,
	"debug":     FlagDebug,
	"verbose":   FlagVerbose,
}

// Load resolves the configuration. Precedence, highest first: flags that were
// set, TICKETTIX_* environment, .env.local and .env, the YAML file, defaults.
// An empty path selects the --config flag or DefaultPath. A missing file is
// not an error. fs may be nil.
func Load(path string, fs *pflag.FlagSet) (Config, error) {
	loadEnvFiles()

	v := viper.New()
	d := Default()
	v.SetDefault("api_base", d.APIBase)
	v.SetDefault("page_size", d.PageSize)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("rps", d.RPS)
	v.SetDefault("burst", d.Burst)
	v.SetDefault("retry_max", d.RetryMax)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("debug", false)
	v.SetDefault("verbose", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if path == "" {
			if f := fs.Lookup(FlagConfig); f != nil {
				path = f.Value.String()
			}
		}
		for key, flag := range keys {
			if f := fs.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", flag, err)
				}
			}
		}
	}
	if path == "" {
		path = DefaultPath()
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Config{
		APIBase:  v.GetString("api_base"),
		PageSize: v.GetInt("page_size"),
		Timeout:  v.GetDuration("timeout"),
		RPS:      v.GetFloat64("rps"),
		Burst:    v.GetInt("burst"),
		RetryMax: v.GetInt("retry_max"),
		LogLevel: v.GetString("log_level"),
		LogFile:  v.GetString("log_file"),
		Debug:    v.GetBool("debug") || os.Getenv("DEBUG") != "",
		Verbose:  v.GetBool("verbose"),
		Path:     path,
	}
	cfg.Normalize()
	return cfg, nil
}

func isNotExist(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf) || errors.Is(err, fs.ErrNotExist)
}

// loadEnvFiles loads .env.local then .env. Existing variables are never
// overwritten, so .env.local wins over .env.
func loadEnvFiles() {
	for _, f := range []string{".env.local", ".env"} {
		_ = godotenv.Load(f)
	}
}

// Save writes cfg as YAML to path with 0600 permissions, replacing the file
// atomically.
func Save(path string, cfg Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tickettix-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
