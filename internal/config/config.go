// Package config handles the site configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in .pubsync.yml at the site root.
// Relative paths are relative to the root.
type Config struct {
	Source       string `yaml:"source"`            // CSL-JSON export of the citation library
	ProjectsDir  string `yaml:"projects_dir"`      // one JSON file per project
	Publications string `yaml:"publications"`      // exported publication list
	PDFDir       string `yaml:"pdf_dir,omitempty"` // optional <id>.pdf files for DOI lookup
	LogLevel     string `yaml:"log_level,omitempty"`
}

const (
	ConfigFile = ".pubsync.yml"

	DefaultSource       = "src/data/My Library.json"
	DefaultProjectsDir  = "src/data/projects"
	DefaultPublications = "src/data/publications.json"
	DefaultLogLevel     = "info"
)

// ValidLogLevels lists the accepted log_level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Source:       DefaultSource,
		ProjectsDir:  DefaultProjectsDir,
		Publications: DefaultPublications,
		LogLevel:     DefaultLogLevel,
	}
}

// ConfigPath returns the path to .pubsync.yml from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, ConfigFile)
}

// HasConfig checks if the given directory holds a config file.
func HasConfig(root string) bool {
	info, err := os.Stat(ConfigPath(root))
	return err == nil && !info.IsDir()
}

// FindRoot walks up from start to the nearest directory holding a config
// file. Without one, start itself is the root and defaults apply.
func FindRoot(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for dir := abs; ; {
		if HasConfig(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs, nil
		}
		dir = parent
	}
}

// Load reads the configuration at root. A missing file yields Default;
// keys absent from the file keep their default values.
func Load(root string) (*Config, error) {
	return LoadFile(ConfigPath(root))
}

// LoadFile reads configuration from an explicit file.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes configuration to the root.
func (c *Config) Save(root string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Validate checks required keys and the log level.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Source) == "" {
		return fmt.Errorf("config: source must not be empty")
	}
	if strings.TrimSpace(c.ProjectsDir) == "" {
		return fmt.Errorf("config: projects_dir must not be empty")
	}
	if c.LogLevel == "" {
		return nil
	}
	for _, valid := range ValidLogLevels {
		if strings.EqualFold(c.LogLevel, valid) {
			return nil
		}
	}
	return fmt.Errorf("config: invalid log_level %q (valid: %v)", c.LogLevel, ValidLogLevels)
}

// Resolved returns a copy with every path made absolute against root.
func (c Config) Resolved(root string) Config {
	c.Source = resolve(root, c.Source)
	c.ProjectsDir = resolve(root, c.ProjectsDir)
	c.Publications = resolve(root, c.Publications)
	c.PDFDir = resolve(root, c.PDFDir)
	return c
}

func resolve(root, path string) string {
	if path == "" {
		return ""
	}
	path = ExpandPath(path)
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
