package cli

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/plinth/pkg/cache"
	"github.com/matzehuels/plinth/pkg/errors"
)

// Config is the optional config file. Flags override it; it overrides the
// built-in defaults.
//
//	[viewport]
//	width = 1024
//	height = 768
//
//	[text]
//	font = "/usr/share/fonts/inter.ttf"
//	size = 14
//	line_height = 1.2
//
//	[cache]
//	backend = "redis"
//	url = "redis://localhost:6379/0"
//
//	[serve]
//	addr = ":8080"
type Config struct {
	Viewport ViewportConfig `toml:"viewport"`
	Text     TextConfig     `toml:"text"`
	Cache    cache.Config   `toml:"cache"`
	Serve    ServeConfig    `toml:"serve"`
}

// ViewportConfig is the [viewport] table.
type ViewportConfig struct {
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

// TextConfig is the [text] table.
type TextConfig struct {
	Font       string  `toml:"font"`
	Size       float32 `toml:"size"`
	LineHeight float32 `toml:"line_height"`
}

// ServeConfig is the [serve] table.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// LoadConfig reads the config file at path. An empty path means the default
// location, which may be absent; an explicit path must exist. Unknown keys
// are rejected so typos do not pass silently.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return &Config{}, nil
		}
		path = p
	}

	cfg := &Config{}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}
