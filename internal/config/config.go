// Package config loads the fmtree configuration file.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/andyballingall/fmtree/internal/validator"
)

const (
	// YAMLConfigFile is looked up first in the project directory.
	YAMLConfigFile = ".fmtree.yml"
	// TOMLConfigFile is used when no YAML config file exists.
	TOMLConfigFile = ".fmtree.toml"

	// SchemaID identifies the embedded configuration schema.
	SchemaID = "https://fmtree.dev/config.schema.json"
)

//go:embed schema.json
var schemaJSON []byte

const DefaultConfigContent = `# fmtree configuration

# FORMATTER
#
# The program run for every source file. It is given the file path as its final
# argument and must write the formatted content to standard output. Style options are
# picked up by the formatter itself (e.g. a .clang-format file in this directory).
formatter:
  command: clang-format
  # args: ["--style=file"]

# EXTENSIONS
#
# Files whose name ends with one of these suffixes (case-sensitive) are formatted.
extensions:
  - .hpp
  - .cpp

# ROOTS
#
# Directories walked when fmtree is run without arguments, relative to the
# working directory. Every root must exist.
roots:
  - include
  - src
  - test

# tempDir: /tmp   # where scratch files are created (default: the system temp dir)
# logFile: .fmtree.log   # structured debug log (also settable with FMTREE_LOG_FILE)
`

// Formatter describes the external formatting program.
type Formatter struct {
	Command string   `yaml:"command" toml:"command" json:"command"`
	Args    []string `yaml:"args" toml:"args" json:"args,omitempty"`
}

// Config is the resolved fmtree configuration.
type Config struct {
	Formatter  Formatter `yaml:"formatter" toml:"formatter" json:"formatter"`
	Extensions []string  `yaml:"extensions" toml:"extensions" json:"extensions"`
	Roots      []string  `yaml:"roots" toml:"roots" json:"roots"`
	TempDir    string    `yaml:"tempDir" toml:"tempDir" json:"tempDir,omitempty"`
	LogFile    string    `yaml:"logFile" toml:"logFile" json:"logFile,omitempty"`
	Path       string    `yaml:"-" toml:"-" json:"-"` // the file this was loaded from; empty for defaults
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Formatter:  Formatter{Command: "clang-format"},
		Extensions: []string{".hpp", ".cpp"},
		Roots:      []string{"include", "src", "test"},
	}
}

// Load reads the configuration. If path is set, that file must exist. Otherwise dir is
// searched for YAMLConfigFile then TOMLConfigFile, and defaults are returned when
// neither exists. Values in the file override the defaults.
func Load(dir, path string, compiler validator.Compiler) (*Config, error) {
	if path == "" {
		path = find(dir)
		if path == "" {
			return Default(), nil
		}
	} else if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, &MissingConfigError{Path: path}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := decodeDocument(path, data)
	if err != nil {
		return nil, &InvalidConfigError{Path: path, Wrapped: err}
	}
	if err = validateDocument(compiler, doc); err != nil {
		return nil, &SchemaViolationError{Path: path, Wrapped: err}
	}

	cfg := Default()
	if isTOML(path) {
		_, err = toml.Decode(string(data), cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, &InvalidConfigError{Path: path, Wrapped: err}
	}
	cfg.Path = path

	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the invariants the rest of fmtree relies on.
func (c *Config) Validate() error {
	if c.Formatter.Command == "" {
		return &MissingPropertyError{Property: "formatter.command"}
	}
	if len(c.Extensions) == 0 {
		return &MissingPropertyError{Property: "extensions"}
	}
	for _, ext := range c.Extensions {
		if len(ext) < 2 || !strings.HasPrefix(ext, ".") {
			return &InvalidExtensionError{Value: ext}
		}
	}
	if len(c.Roots) == 0 {
		return &MissingPropertyError{Property: "roots"}
	}
	return nil
}

// WriteDefault writes DefaultConfigContent to YAMLConfigFile in dir.
func WriteDefault(dir string) (string, error) {
	path := filepath.Join(dir, YAMLConfigFile)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", &ConfigExistsError{Path: path}
		}
		return "", err
	}
	if _, err = f.WriteString(DefaultConfigContent); err != nil {
		_ = f.Close()
		return "", err
	}
	return path, f.Close()
}

func find(dir string) string {
	for _, name := range []string{YAMLConfigFile, TOMLConfigFile} {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

func isTOML(path string) bool {
	return filepath.Ext(path) == ".toml"
}

// decodeDocument decodes the raw file into a generic document for schema validation.
func decodeDocument(path string, data []byte) (validator.JSONDocument, error) {
	raw := map[string]any{}
	if isTOML(path) {
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&raw); err != nil {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		// An empty YAML document decodes to a nil map.
		raw = map[string]any{}
	}
	return validator.ToJSONDocument(raw)
}

func validateDocument(compiler validator.Compiler, doc validator.JSONDocument) error {
	schema, err := validator.ParseJSON(schemaJSON)
	if err != nil {
		return err
	}
	if err = compiler.AddSchema(SchemaID, schema); err != nil {
		return err
	}
	v, err := compiler.Compile(SchemaID)
	if err != nil {
		return err
	}
	return v.Validate(doc)
}
