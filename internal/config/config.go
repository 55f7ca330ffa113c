// Package config handles loading tdo.toml configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/amonks/tdo/internal/editor"
	"github.com/amonks/tdo/internal/paths"
	"github.com/amonks/tdo/internal/validation"
	"github.com/charmbracelet/log"
)

// ProjectFile is the name of the per-directory config file.
const ProjectFile = "tdo.toml"

// Config represents the tdo.toml configuration file.
type Config struct {
	Editor  Editor  `toml:"editor"`
	Storage Storage `toml:"storage"`
	Log     Log     `toml:"log"`
}

// Editor contains editor-related configuration.
type Editor struct {
	// Command is the editor command line. Defaults to $EDITOR, then vi.
	Command string `toml:"command"`
}

// Storage contains storage-related configuration.
type Storage struct {
	// DataDir holds the list file and the notes directory. A leading ~/
	// is expanded to the home directory.
	DataDir string `toml:"data-dir"`

	// ListFile is the name of the top-level list inside DataDir.
	ListFile string `toml:"list-file"`
}

// Log contains logging configuration.
type Log struct {
	// Level is one of debug, info, warn, error. Defaults to warn.
	Level string `toml:"level"`
}

// Load loads configuration from projectDir and the global config file.
// Returns an empty config if no config files exist.
func Load(projectDir string) (*Config, error) {
	globalPath, err := globalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, _, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(projectDir, ProjectFile))
	if err != nil {
		return nil, err
	}

	return mergeConfigs(globalCfg, projectCfg, projectMeta), nil
}

func globalConfigPath() (string, error) {
	dir, err := paths.DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.Editor.Command = mergeString(projectMeta.IsDefined("editor", "command"), projectCfg.Editor.Command, globalCfg.Editor.Command)
	merged.Storage.DataDir = mergeString(projectMeta.IsDefined("storage", "data-dir"), projectCfg.Storage.DataDir, globalCfg.Storage.DataDir)
	merged.Storage.ListFile = mergeString(projectMeta.IsDefined("storage", "list-file"), projectCfg.Storage.ListFile, globalCfg.Storage.ListFile)
	merged.Log.Level = mergeString(projectMeta.IsDefined("log", "level"), projectCfg.Log.Level, globalCfg.Log.Level)

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}

// EditorProgram returns the configured editor command, or the default.
func (c *Config) EditorProgram() string {
	if c.Editor.Command != "" {
		return c.Editor.Command
	}
	return editor.DefaultProgram()
}

// DataDir returns the data directory. $TDO_DATA_DIR wins over the config
// file, which wins over the default.
func (c *Config) DataDir() (string, error) {
	if dir := os.Getenv(paths.EnvDataDir); dir != "" {
		return dir, nil
	}
	if c.Storage.DataDir == "" {
		return paths.DefaultDataDir()
	}
	if rest, ok := strings.CutPrefix(c.Storage.DataDir, "~/"); ok {
		home, err := paths.HomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, rest), nil
	}
	return c.Storage.DataDir, nil
}

// ListPath returns the path of the top-level list file.
func (c *Config) ListPath() (string, error) {
	dir, err := c.DataDir()
	if err != nil {
		return "", err
	}
	return paths.ListPath(dir, c.Storage.ListFile), nil
}

// ErrInvalidLogLevel is returned for a [log] level that is not recognized.
var ErrInvalidLogLevel = errors.New("invalid log level")

// LogLevels are the accepted values for [log] level.
var LogLevels = []string{"debug", "info", "warn", "error"}

// LogLevel returns the configured log level, defaulting to warn.
func (c *Config) LogLevel() (log.Level, error) {
	if c.Log.Level == "" {
		return log.WarnLevel, nil
	}
	level, err := log.ParseLevel(strings.ToLower(c.Log.Level))
	if err != nil || !slices.Contains(LogLevels, level.String()) {
		return log.WarnLevel, validation.FormatInvalidValueError(ErrInvalidLogLevel, c.Log.Level, LogLevels)
	}
	return level, nil
}
