package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kataras/hoto"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Environment variables consulted by Load.
const (
	EnvFormat = "HOTO_FORMAT"
	EnvConfig = "HOTO_CONFIG"
)

// Config holds user defaults. Command-line flags take precedence.
type Config struct {
	Format    string   `toml:"format"`
	MaxChars  int      `toml:"max_chars"`
	Overwrite bool     `toml:"overwrite"`
	Suggest   []string `toml:"suggest"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Format:   hoto.DefaultFormat,
		MaxChars: 160,
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/hoto/config.toml (or the
// platform equivalent).
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "hoto", "config.toml"), nil
}

// Load reads the configuration at path, or at HOTO_CONFIG / the default
// location when path is empty. A missing file is not an error; the second
// and third results report the resolved path and whether it existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	required := path != ""
	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvConfig))
	}
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return "", false, err
		}
	}

	expanded, err := ExpandPath(path)
	if err != nil {
		return "", false, err
	}

	info, err := os.Stat(expanded)
	switch {
	case err == nil:
		if info.IsDir() {
			return "", false, fmt.Errorf("config path %s is a directory", expanded)
		}
		return expanded, true, nil
	case errors.Is(err, fs.ErrNotExist) && !required:
		return expanded, false, nil
	default:
		return "", false, fmt.Errorf("stat config: %w", err)
	}
}

func (c *Config) normalize() {
	if env := os.Getenv(EnvFormat); env != "" {
		c.Format = env
	}
	if c.MaxChars == 0 {
		c.MaxChars = Default().MaxChars
	}

	suggest := c.Suggest[:0]
	for _, s := range c.Suggest {
		if s = strings.TrimSpace(s); s != "" {
			suggest = append(suggest, s)
		}
	}
	c.Suggest = suggest
}

// Validate reports configuration values that cannot work.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Format) == "" {
		return errors.New("format must not be empty")
	}
	if c.MaxChars < 0 {
		return fmt.Errorf("max_chars must be positive, got %d", c.MaxChars)
	}
	return nil
}

// ExpandPath expands a leading "~" to the user's home directory.
func ExpandPath(pathValue string) (string, error) {
	if pathValue == "~" || strings.HasPrefix(pathValue, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(pathValue, "~")), nil
	}
	return pathValue, nil
}

// CreateSample writes the commented sample configuration to path, creating
// parent directories as needed. An existing file is left untouched.
func CreateSample(path string) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file %s already exists", expanded)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
