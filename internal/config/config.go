// Package config handles loading tasklist config.toml files.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/amonks/tasklist/internal/paths"
)

// Config represents the tasklist configuration file.
type Config struct {
	Storage  Storage  `toml:"storage"`
	Sections Sections `toml:"sections"`
	Log      Log      `toml:"log"`
}

// Storage contains persistence configuration.
type Storage struct {
	// Dir is the directory snapshots are written to. A leading "~/" is
	// expanded. Defaults to ~/.local/state/tasklist.
	Dir string `toml:"dir"`

	// Key names the snapshot. Defaults to "taskList".
	Key string `toml:"key"`
}

// Sections configures the sections a fresh task list starts with.
type Sections struct {
	Defaults []string `toml:"defaults"`
}

// Log configures diagnostic logging.
type Log struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
	// Format is one of text, json, logfmt.
	Format string `toml:"format"`
}

// Load loads the global config file and, if explicitPath is non-empty, the
// file at explicitPath on top of it. Values set in the explicit file win.
// A missing global file is not an error; a missing explicit file is.
func Load(explicitPath string) (*Config, error) {
	globalPath, err := paths.DefaultConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	if explicitPath == "" {
		return mergeConfigs(globalCfg, &Config{}, globalMeta, toml.MetaData{}), nil
	}

	if _, err := os.Stat(explicitPath); err != nil {
		return nil, fmt.Errorf("stat config file %s: %w", explicitPath, err)
	}
	explicitCfg, explicitMeta, err := loadConfigFile(explicitPath)
	if err != nil {
		return nil, err
	}

	return mergeConfigs(globalCfg, explicitCfg, globalMeta, explicitMeta), nil
}

// StateDir returns the directory snapshots live in. The TASKLIST_STATE_DIR
// environment variable wins over the config file.
func (c *Config) StateDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(paths.StateDirEnv)); dir != "" {
		return paths.ExpandHome(dir)
	}
	if c.Storage.Dir != "" {
		return paths.ExpandHome(c.Storage.Dir)
	}
	return paths.DefaultStateDir()
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
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, explicitCfg *Config, globalMeta, explicitMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if explicitCfg == nil {
		explicitCfg = &Config{}
	}

	merged := Config{}
	merged.Storage.Dir = mergeString(explicitMeta.IsDefined("storage", "dir"), explicitCfg.Storage.Dir, globalCfg.Storage.Dir)
	merged.Storage.Key = mergeString(explicitMeta.IsDefined("storage", "key"), explicitCfg.Storage.Key, globalCfg.Storage.Key)
	merged.Log.Level = mergeString(explicitMeta.IsDefined("log", "level"), explicitCfg.Log.Level, globalCfg.Log.Level)
	merged.Log.Format = mergeString(explicitMeta.IsDefined("log", "format"), explicitCfg.Log.Format, globalCfg.Log.Format)
	if explicitMeta.IsDefined("sections", "defaults") {
		merged.Sections.Defaults = trimTitles(explicitCfg.Sections.Defaults)
	} else if globalMeta.IsDefined("sections", "defaults") {
		merged.Sections.Defaults = trimTitles(globalCfg.Sections.Defaults)
	}

	return &merged
}

func mergeString(explicitDefined bool, explicitValue, globalValue string) string {
	value := globalValue
	if explicitDefined {
		value = explicitValue
	}
	return strings.TrimSpace(value)
}

func trimTitles(titles []string) []string {
	var trimmed []string
	for _, title := range titles {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		trimmed = append(trimmed, title)
	}
	return trimmed
}
