package cli

import (
	stderrors "errors"
	"io/fs"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/orbit/pkg/errors"
	"github.com/matzehuels/orbit/pkg/group"
	"github.com/matzehuels/orbit/pkg/search"
)

// config is the content of an orbit.toml file.
//
//	[search]
//	mode = "dks"
//	source = "discover"
//
//	[discovery]
//	command = ["orbit-bliss"]
//	time_bound = "30s"
//	stabilize_goal = true
type config struct {
	Search    search.Options  `toml:"search"`
	Discovery discoveryConfig `toml:"discovery"`
}

type discoveryConfig struct {
	// Command runs an external discoverer. The task is written to its
	// stdin and generators are read from its stdout, both as
	// generator-set files.
	Command               []string      `toml:"command"`
	TimeBound             time.Duration `toml:"time_bound"`
	StabilizeInitialState bool          `toml:"stabilize_initial_state"`
	StabilizeGoal         bool          `toml:"stabilize_goal"`
	NoCache               bool          `toml:"no_cache"`
}

func (d discoveryConfig) options() group.DiscoveryOptions {
	return group.DiscoveryOptions{
		StabilizeInitialState: d.StabilizeInitialState,
		StabilizeGoal:         d.StabilizeGoal,
		TimeBound:             d.TimeBound,
	}
}

func defaultConfig() config {
	def := group.DefaultDiscoveryOptions()
	return config{
		Search: search.Options{Mode: search.ModeDKS, Source: search.SourcePrecomputed},
		Discovery: discoveryConfig{
			StabilizeInitialState: def.StabilizeInitialState,
			StabilizeGoal:         def.StabilizeGoal,
			TimeBound:             def.TimeBound,
		},
	}
}

// loadConfig reads path over the defaults. An empty path falls back to
// ./orbit.toml and to the defaults if that file does not exist.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && stderrors.Is(err, fs.ErrNotExist) {
			return defaultConfig(), nil
		}
		if stderrors.Is(err, fs.ErrNotExist) {
			return config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return config{}, errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	// Turning pruning off without naming a source drops the default source.
	if !cfg.Search.Mode.Prunes() && !md.IsDefined("search", "source") {
		cfg.Search.Source = search.SourceNone
	}

	if err := cfg.validate(); err != nil {
		return config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return cfg, nil
}

func (c config) validate() error {
	if err := c.Search.Validate(); err != nil {
		return err
	}
	if c.Search.Source == search.SourceDiscover && len(c.Discovery.Command) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "source discover needs discovery.command")
	}
	if c.Discovery.TimeBound < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "negative discovery.time_bound %s", c.Discovery.TimeBound)
	}
	return nil
}
