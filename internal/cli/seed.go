package cli

import (
	"errors"
	"io/fs"
	"slices"

	"github.com/spf13/pflag"

	"github.com/matzehuels/bsptile/pkg/command"
	"github.com/matzehuels/bsptile/pkg/config"
)

// loadConfig resolves the startup configuration: defaults, then the config
// file, then any layout flags changed on flags. A missing file is only an
// error when it was named explicitly with --config.
func (c *CLI) loadConfig(flags *pflag.FlagSet) (config.Config, error) {
	cfg := config.Default()

	path, explicit := c.configFile(), c.configPath != ""
	if path != "" {
		loaded, err := config.LoadFile(path)
		switch {
		case err == nil:
			cfg = loaded
			c.Logger.Debug("loaded config file", "path", path)
		case !explicit && errors.Is(err, fs.ErrNotExist):
			c.Logger.Debug("no config file", "path", path)
		default:
			return config.Config{}, err
		}
	}

	batch, err := c.seed.Batch(flags)
	if err != nil {
		return config.Config{}, err
	}
	// At startup --reverse states the window order instead of flipping the
	// one from the file.
	if flags.Changed(command.FlagReverse) {
		cfg.Split.Reverse = c.seed.Reverse
		batch = slices.DeleteFunc(batch, func(op config.Op) bool {
			_, ok := op.(config.ToggleReverse)
			return ok
		})
	}
	if len(batch) == 0 {
		return cfg, nil
	}

	store, err := config.NewStore(cfg)
	if err != nil {
		return config.Config{}, err
	}
	if err := store.Apply(batch...); err != nil {
		return config.Config{}, err
	}
	c.Logger.Debug("applied layout flags", "command", batch.String())
	return store.Snapshot(), nil
}

// newStore returns a store seeded by loadConfig.
func (c *CLI) newStore(flags *pflag.FlagSet) (*config.Store, error) {
	cfg, err := c.loadConfig(flags)
	if err != nil {
		return nil, err
	}
	return config.NewStore(cfg)
}
