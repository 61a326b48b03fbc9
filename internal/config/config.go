package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	charmLog "github.com/charmbracelet/log"
	toml "github.com/pelletier/go-toml/v2"
)

// Backend names a board persistence adapter.
type Backend string

const (
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
)

type Config struct {
	Storage StorageConfig `toml:"storage"`
	Board   BoardConfig   `toml:"board"`
	Logging LoggingConfig `toml:"logging"`
	Keys    KeyConfig     `toml:"keys"`
	UI      UIConfig      `toml:"ui"`
}

type StorageConfig struct {
	Backend    Backend `toml:"backend"`
	SQLitePath string  `toml:"sqlite_path"`
}

type BoardConfig struct {
	DefaultFile       string `toml:"default_file"`
	CreateMissingDirs bool   `toml:"create_missing_dirs"`
}

type LoggingConfig struct {
	Level   string        `toml:"level"`
	DevFile DevFileConfig `toml:"dev_file"`
}

type DevFileConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// KeyConfig holds single-key overrides. An uppercase rune also matches shift+<rune>.
type KeyConfig struct {
	CreateRow    string `toml:"create_row"`
	EditRow      string `toml:"edit_row"`
	DeleteRow    string `toml:"delete_row"`
	CreateColumn string `toml:"create_column"`
	EditColumn   string `toml:"edit_column"`
	DeleteColumn string `toml:"delete_column"`
	SubmitRow    string `toml:"submit_row"`
	Quit         string `toml:"quit"`
	Yank         string `toml:"yank"`
}

type UIConfig struct {
	ShowDescriptionPreview bool `toml:"show_description_preview"`
}

func Default(dbPath, boardPath string) Config {
	return Config{
		Storage: StorageConfig{
			Backend:    BackendJSON,
			SQLitePath: dbPath,
		},
		Board: BoardConfig{
			DefaultFile:       boardPath,
			CreateMissingDirs: false,
		},
		Logging: LoggingConfig{
			Level: "info",
			DevFile: DevFileConfig{
				Enabled: true,
				Dir:     ".tack/log",
			},
		},
		Keys: KeyConfig{
			CreateRow:    "c",
			EditRow:      "e",
			DeleteRow:    "d",
			CreateColumn: "C",
			EditColumn:   "E",
			DeleteColumn: "D",
			SubmitRow:    "ctrl+d",
			Quit:         "q",
			Yank:         "y",
		},
		UI: UIConfig{
			ShowDescriptionPreview: true,
		},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendJSON:
	case BackendSQLite:
		if strings.TrimSpace(c.Storage.SQLitePath) == "" {
			return errors.New("storage.sqlite_path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("invalid storage.backend: %q", c.Storage.Backend)
	}

	if _, err := charmLog.ParseLevel(strings.TrimSpace(c.Logging.Level)); err != nil {
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}

	seen := map[string]string{}
	for _, binding := range c.Keys.bindings() {
		value := strings.TrimSpace(binding.value)
		if value == "" {
			return fmt.Errorf("keys.%s must not be blank", binding.name)
		}
		if other, ok := seen[value]; ok {
			return fmt.Errorf("keys.%s duplicates keys.%s: %q", binding.name, other, value)
		}
		seen[value] = binding.name
	}

	return nil
}

// namedBinding pairs a config key with its value.
type namedBinding struct {
	name  string
	value string
}

// bindings lists key overrides in file order.
func (k KeyConfig) bindings() []namedBinding {
	return []namedBinding{
		{"create_row", k.CreateRow},
		{"edit_row", k.EditRow},
		{"delete_row", k.DeleteRow},
		{"create_column", k.CreateColumn},
		{"edit_column", k.EditColumn},
		{"delete_column", k.DeleteColumn},
		{"submit_row", k.SubmitRow},
		{"quit", k.Quit},
		{"yank", k.Yank},
	}
}

func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
