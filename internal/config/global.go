package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// GlobalConfig holds the user's defaults for configure. Command-line flags
// take precedence over these values.
type GlobalConfig struct {
	Platform     string `yaml:"platform,omitempty"`
	BuildType    string `yaml:"buildtype,omitempty"`
	Toolchain    string `yaml:"toolchain,omitempty"`
	BuildDir     string `yaml:"builddir,omitempty"`
	NinjaVersion string `yaml:"ninja_version,omitempty"`
}

// fields maps the user-facing keys to struct fields.
func (c *GlobalConfig) fields() map[string]*string {
	return map[string]*string{
		"platform":      &c.Platform,
		"buildtype":     &c.BuildType,
		"toolchain":     &c.Toolchain,
		"builddir":      &c.BuildDir,
		"ninja_version": &c.NinjaVersion,
	}
}

// Keys returns the settable keys, sorted.
func Keys() []string {
	keys := make([]string, 0, 5)
	for k := range (&GlobalConfig{}).fields() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value stored under key.
func (c *GlobalConfig) Get(key string) (string, error) {
	f, ok := c.fields()[key]
	if !ok {
		return "", unknownKey(key)
	}
	return *f, nil
}

// Set stores value under key. An empty value clears the key.
func (c *GlobalConfig) Set(key, value string) error {
	f, ok := c.fields()[key]
	if !ok {
		return unknownKey(key)
	}
	*f = value
	return nil
}

func unknownKey(key string) error {
	return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys(), ", "))
}

// configDirName is the per-user directory nbuild keeps its files in.
const configDirName = "nbuild"

// GetConfigDir returns ~/.config/nbuild, or %APPDATA%\nbuild on Windows.
func GetConfigDir() (string, error) {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, configDirName), nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot locate the user config directory: %w", err)
	}
	return filepath.Join(home, ".config", configDirName), nil
}

// GetConfigPath returns the path of the user defaults file.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadGlobal returns the user defaults. A missing file yields empty defaults.
func LoadGlobal() (*GlobalConfig, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	cfg := &GlobalConfig{}
	if _, err := readYAML(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveGlobal writes the user defaults.
func SaveGlobal(cfg *GlobalConfig) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	return writeYAML(path, cfg)
}

// readYAML decodes the file at path into v. It reports false without error
// when the file does not exist.
func readYAML(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("parsing %s: %w", path, err)
	}
	return true, nil
}

func writeYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
