package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"editpath/internal/errors"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment variables that override config keys.
// EDITPATH_BACKUP_KEEP=5 sets backup.keep.
const EnvPrefix = "EDITPATH_"

//go:embed embedded/defaults.toml
var defaultConfig []byte

// Config is the resolved editpath configuration.
type Config struct {
	Variable string       `koanf:"variable"`
	Store    StoreConfig  `koanf:"store"`
	Backup   BackupConfig `koanf:"backup"`
	Log      LogConfig    `koanf:"log"`
	UI       UIConfig     `koanf:"ui"`
}

type StoreConfig struct {
	File string `koanf:"file"`
}

type BackupConfig struct {
	Enabled bool   `koanf:"enabled"`
	Dir     string `koanf:"dir"`
	Keep    int    `koanf:"keep"`
}

type LogConfig struct {
	Verbosity int `koanf:"verbosity"`
}

type UIConfig struct {
	Confirm    bool `koanf:"confirm"`
	ShowHidden bool `koanf:"showhidden"`
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// DefaultPath is the user config file location.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "editpath", "config.toml")
}

// DefaultContent returns the embedded defaults, for users starting a config file.
func DefaultContent() string {
	return string(defaultConfig)
}

// Load resolves the configuration. An empty path means DefaultPath, which
// may be absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path)
		}
	} else if explicit {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not readable", path)
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Variable) == "" {
		return errors.New(errors.ErrInvalidInput, "variable must not be empty")
	}
	if c.Backup.Keep < 0 {
		return errors.Newf(errors.ErrInvalidInput, "backup.keep must be >= 0, got %d", c.Backup.Keep)
	}
	return nil
}
