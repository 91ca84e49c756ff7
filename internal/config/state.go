package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// ProjectState records the options of the last successful configure of a
// project, so later commands resolve the same environment.
type ProjectState struct {
	Root         string `yaml:"root"`
	TargetsFile  string `yaml:"targets_file"`
	Platform     string `yaml:"platform"`
	Host         string `yaml:"host,omitempty"`
	BuildType    string `yaml:"buildtype"`
	Toolchain    string `yaml:"toolchain"`
	BuildDir     string `yaml:"builddir"`
	NinjaVersion string `yaml:"ninja_version,omitempty"`
}

// GetStatePath returns the state file of the project rooted at root.
func GetStatePath(root string) (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(configDir, "projects", hex.EncodeToString(sum[:8])+".yaml"), nil
}

// LoadState returns the saved state of the project, or nil when it was
// never configured.
func LoadState(root string) (*ProjectState, error) {
	path, err := GetStatePath(root)
	if err != nil {
		return nil, err
	}

	var state ProjectState
	found, err := readYAML(path, &state)
	if err != nil || !found {
		return nil, err
	}
	return &state, nil
}

// SaveState records state for its project.
func SaveState(state *ProjectState) error {
	path, err := GetStatePath(state.Root)
	if err != nil {
		return err
	}
	return writeYAML(path, state)
}

// RemoveState deletes the saved state of the project. A missing file is not
// an error.
func RemoveState(root string) error {
	path, err := GetStatePath(root)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove project state: %w", err)
	}
	return nil
}
