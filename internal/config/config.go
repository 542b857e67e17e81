package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"pybootstrap/internal/logging"
	"pybootstrap/internal/project"
	"pybootstrap/internal/version"
	"pybootstrap/pkg/fileops"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const APP_NAME = "pybootstrap" // application name used for config directory

// ConfigPathEnv overrides the config file location when set.
const ConfigPathEnv = "PYBOOTSTRAP_CONFIG_PATH"

// Defaults reproduce the fixed bootstrap behaviour when no config file exists.
const (
	DefaultMinPython   = "3.10"
	DefaultTool        = "uv"
	DefaultLogDir      = "logs"
	DefaultNoticeStyle = "auto"
)

var configPathOverride string

// Config holds the optional user configuration for pybootstrap.
type Config struct {
	// MinPython is the lowest interpreter version accepted by the version check.
	MinPython string `yaml:"min_python"`

	// Interpreters are the executable names probed on PATH, in order.
	Interpreters []string `yaml:"interpreters"`

	// Tool is the package/environment manager binary.
	Tool        string   `yaml:"tool"`
	SyncArgs    []string `yaml:"sync_args"`
	InstallArgs []string `yaml:"install_args"` // project path is appended

	// LogDir is resolved against LogBaseDir, never the working directory.
	LogDir string `yaml:"log_dir"`

	// ProjectDir is where sync and install run. Empty means the project
	// found from the working directory.
	ProjectDir string `yaml:"project_dir,omitempty"`

	// LogRoot overrides the directory LogDir is created in.
	LogRoot string `yaml:"log_root,omitempty"`

	NoticeStyle string `yaml:"notice_style"`
}

// SetConfigFilePathOverride makes ConfigPath return path, e.g. from --config.
func SetConfigFilePathOverride(path string) {
	configPathOverride = path
}

// ConfigPath returns the config file path for the current platform.
// Precedence: --config override, PYBOOTSTRAP_CONFIG_PATH, XDG config home.
func ConfigPath() string {
	if configPathOverride != "" {
		return configPathOverride
	}
	if envPath := os.Getenv(ConfigPathEnv); envPath != "" {
		return envPath
	}

	configPath := filepath.Join(xdg.ConfigHome, APP_NAME, "config.yaml")
	logging.Debug("Determined config path", "path", configPath)
	return configPath
}

// FindConfigFile returns the config file path, and whether it exists.
func FindConfigFile() (string, bool) {
	path := ConfigPath()
	if _, err := os.Stat(path); err == nil {
		logging.Debug("Config found", "path", path)
		return path, true
	}
	return path, false
}

// Load loads the config from the standard location.
// A missing file is not an error, the defaults are returned instead, unless
// the path was named explicitly with --config.
func Load() (*Config, error) {
	configPath, exists := FindConfigFile()
	if !exists {
		if configPathOverride != "" {
			return nil, fmt.Errorf("config file not found: %s", configPathOverride)
		}
		logging.Debug("No config file, using defaults", "path", configPath)
		cfg := DefaultConfig()
		return &cfg, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads config from a specific path. Unset fields take their defaults.
func LoadFrom(path string) (*Config, error) {
	logging.Debug("Reading config file", "path", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	cfg.ProjectDir = fileops.ExpandPath(cfg.ProjectDir)
	cfg.LogRoot = fileops.ExpandPath(cfg.LogRoot)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &cfg, nil
}

// DefaultConfig returns the configuration matching the built-in behaviour.
func DefaultConfig() Config {
	return Config{
		MinPython:    DefaultMinPython,
		Interpreters: []string{"python3", "python"},
		Tool:         DefaultTool,
		SyncArgs:     []string{"sync"},
		InstallArgs:  []string{"pip", "install", "-e"},
		LogDir:       DefaultLogDir,
		NoticeStyle:  DefaultNoticeStyle,
	}
}

func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if strings.TrimSpace(c.MinPython) == "" {
		c.MinPython = d.MinPython
	}
	if len(c.Interpreters) == 0 {
		c.Interpreters = d.Interpreters
	}
	if strings.TrimSpace(c.Tool) == "" {
		c.Tool = d.Tool
	}
	if len(c.SyncArgs) == 0 {
		c.SyncArgs = d.SyncArgs
	}
	if len(c.InstallArgs) == 0 {
		c.InstallArgs = d.InstallArgs
	}
	if strings.TrimSpace(c.LogDir) == "" {
		c.LogDir = d.LogDir
	}
	if strings.TrimSpace(c.NoticeStyle) == "" {
		c.NoticeStyle = d.NoticeStyle
	}
}

// Validate checks the fields that would otherwise fail late in the pipeline.
func (c *Config) Validate() error {
	if _, err := version.Parse(c.MinPython); err != nil {
		return fmt.Errorf("min_python: %w", err)
	}
	if strings.TrimSpace(c.Tool) == "" {
		return fmt.Errorf("tool cannot be empty")
	}
	for _, name := range c.Interpreters {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("interpreters cannot contain empty names")
		}
	}
	if filepath.IsAbs(c.LogDir) {
		return fmt.Errorf("log_dir must be relative: %s", c.LogDir)
	}
	if cleaned := filepath.Clean(c.LogDir); cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("log_dir must not leave its base directory: %s", c.LogDir)
	}
	if c.ProjectDir != "" && !filepath.IsAbs(c.ProjectDir) {
		return fmt.Errorf("project_dir must be absolute: %s", c.ProjectDir)
	}
	if c.LogRoot != "" && !filepath.IsAbs(c.LogRoot) {
		return fmt.Errorf("log_root must be absolute: %s", c.LogRoot)
	}
	return nil
}

// Save writes the config to the standard location
func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

// SaveTo writes the config to a specific path
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()

	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	logging.Info("Configuration saved", "path", path)
	return nil
}

// ProjectRoot returns the directory sync and install run in: ProjectDir when
// configured, otherwise the project enclosing the working directory.
func (c *Config) ProjectRoot() (string, error) {
	if c.ProjectDir != "" {
		return filepath.Clean(c.ProjectDir), nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return project.FindRoot(cwd)
}

// LogBaseDir returns the directory LogDir is created in. Precedence: LogRoot,
// ProjectDir, then the directory containing the running executable.
func (c *Config) LogBaseDir() (string, error) {
	if c.LogRoot != "" {
		return filepath.Clean(c.LogRoot), nil
	}
	if c.ProjectDir != "" {
		return filepath.Clean(c.ProjectDir), nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// LogDirPath joins LogDir onto base.
func (c *Config) LogDirPath(base string) string {
	return filepath.Join(base, c.LogDir)
}
