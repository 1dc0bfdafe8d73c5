/*
 * javadec - a Java class-file reader and bytecode disassembler
 * Package config loads javadec's CLI defaults from an optional TOML file.
 */

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds the settings the CLI falls back to when a flag isn't
// given explicitly on the command line.
type Config struct {
	// Output controls what the CLI prints for each class processed.
	Output struct {
		ShowConstantPool bool   `toml:"show_constant_pool"`
		ShowDisassembly  bool   `toml:"show_disassembly"`
		ShowDecompiled   bool   `toml:"show_decompiled"`
		Format           string `toml:"format"` // "text" or "json"; the CLI does not read it and always prints text
	} `toml:"output"`

	// Decompiler controls the symbolic executor / CFG builder.
	Decompiler struct {
		MaxBlocksPerMethod int  `toml:"max_blocks_per_method"`
		StopOnFirstError   bool `toml:"stop_on_first_error"`
	} `toml:"decompiler"`

	// Logging controls trace verbosity.
	Logging struct {
		Verbose bool `toml:"verbose"`
	} `toml:"logging"`
}

// DefaultConfig returns javadec's built-in settings.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Output.ShowConstantPool = false
	cfg.Output.ShowDisassembly = true
	cfg.Output.ShowDecompiled = true
	cfg.Output.Format = "text"

	cfg.Decompiler.MaxBlocksPerMethod = 0 // 0 means unbounded
	cfg.Decompiler.StopOnFirstError = false

	cfg.Logging.Verbose = false

	return cfg
}

// GetConfigPath returns the platform-specific default config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "javadec")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "javadec.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "javadec")

	default:
		return "javadec.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "javadec.toml"
	}

	return filepath.Join(configDir, "javadec.toml")
}

// Load loads configuration from the default config file, falling back
// to defaults when the file doesn't exist.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from path, falling back to defaults when
// the file doesn't exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return cfg, nil
}
