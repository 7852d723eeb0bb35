package config

import (
	"fmt"
)

type MissingConfigError struct {
	Path string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("config file not found: %s", e.Path)
}

type InvalidConfigError struct {
	Path    string
	Wrapped error
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("%s could not be parsed: %v", e.Path, e.Wrapped)
}

func (e *InvalidConfigError) Unwrap() error { return e.Wrapped }

type SchemaViolationError struct {
	Path    string
	Wrapped error
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("%s is not a valid fmtree config: %v", e.Path, e.Wrapped)
}

func (e *SchemaViolationError) Unwrap() error { return e.Wrapped }

type MissingPropertyError struct {
	Property string
}

func (e *MissingPropertyError) Error() string {
	return fmt.Sprintf("config is missing required property: %s", e.Property)
}

type InvalidExtensionError struct {
	Value string
}

func (e *InvalidExtensionError) Error() string {
	return fmt.Sprintf("invalid extension '%s': extensions must start with '.'", e.Value)
}

type ConfigExistsError struct {
	Path string
}

func (e *ConfigExistsError) Error() string {
	return fmt.Sprintf("%s already exists", e.Path)
}
