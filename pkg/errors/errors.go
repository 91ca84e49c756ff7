package errors

import (
	"errors"
	"fmt"
)

// Error types for generator failures. Every error raised before the build
// file is written is one of these, so callers can tell a bad declaration from
// an unsupported host or an I/O failure.

// ConfigError represents a malformed option or target declaration
type ConfigError struct {
	Field   string
	Message string
	Hint    string
}

func (e *ConfigError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("config error: %s - %s\nHint: %s", e.Field, e.Message, e.Hint)
	}
	return fmt.Sprintf("config error: %s - %s", e.Field, e.Message)
}

// NewConfigError creates a new config error
func NewConfigError(field, message, hint string) *ConfigError {
	return &ConfigError{Field: field, Message: message, Hint: hint}
}

// PlatformError represents a platform identifier that maps to no known family
type PlatformError struct {
	Value   string
	Message string
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("unsupported platform %q: %s", e.Value, e.Message)
}

// NewPlatformError creates a new platform error
func NewPlatformError(value, message string) *PlatformError {
	return &PlatformError{Value: value, Message: message}
}

// DependencyError represents an invalid reference between declared targets
type DependencyError struct {
	Target  string
	Library string
	Message string
	Hint    string
}

func (e *DependencyError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("dependency error: %s -> %s - %s\nHint: %s", e.Target, e.Library, e.Message, e.Hint)
	}
	return fmt.Sprintf("dependency error: %s -> %s - %s", e.Target, e.Library, e.Message)
}

// NewDependencyError creates a new dependency error
func NewDependencyError(target, library, message, hint string) *DependencyError {
	return &DependencyError{Target: target, Library: library, Message: message, Hint: hint}
}

// BuildError represents a failure while producing the build plan
type BuildError struct {
	Phase   string // load, resolve, emit, write
	Message string
	Cause   error
}

func (e *BuildError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("build error [%s]: %s\nCaused by: %v", e.Phase, e.Message, e.Cause)
	}
	return fmt.Sprintf("build error [%s]: %s", e.Phase, e.Message)
}

func (e *BuildError) Unwrap() error {
	return e.Cause
}

// NewBuildError creates a new build error
func NewBuildError(phase, message string, cause error) *BuildError {
	return &BuildError{Phase: phase, Message: message, Cause: cause}
}

// Common errors
var (
	ErrNoTargetsFile = errors.New("no targets file found (looked for nbuild.yaml, nbuild.yml, nbuild.toml)")
	ErrSealed        = errors.New("build environment is sealed; targets can no longer be added")
)

// IsConfigError checks if error is a config error
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsPlatformError checks if error is a platform error
func IsPlatformError(err error) bool {
	var platformErr *PlatformError
	return errors.As(err, &platformErr)
}

// IsDependencyError checks if error is a dependency error
func IsDependencyError(err error) bool {
	var depErr *DependencyError
	return errors.As(err, &depErr)
}

// IsBuildError checks if error is a build error
func IsBuildError(err error) bool {
	var buildErr *BuildError
	return errors.As(err, &buildErr)
}
