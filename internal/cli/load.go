package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/orbit/pkg/errors"
	"github.com/matzehuels/orbit/pkg/group"
	orbitio "github.com/matzehuels/orbit/pkg/io"
	"github.com/matzehuels/orbit/pkg/perm"
	"github.com/matzehuels/orbit/pkg/search"
)

// loadOpts are the flags shared by every command that populates a group.
type loadOpts struct {
	dropInvalid bool
	noCache     bool
}

// session is a populated group together with the file and config it came
// from.
type session struct {
	cfg   config
	set   *orbitio.GeneratorSet
	group *group.Group
}

// loadGroup reads the generator-set file at path and populates a group
// from the source the config selects.
func (c *CLI) loadGroup(ctx context.Context, path string, opts loadOpts) (*session, error) {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return nil, err
	}
	set, err := orbitio.LoadFile(path)
	if err != nil {
		return nil, err
	}

	src, cleanup, err := newSource(cfg, set, opts)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	g := group.New(group.WithLogger(logger))
	prog := newProgress(logger)
	if err := g.ComputeSymmetries(ctx, src); err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Loaded %d generators from %s", g.NumGenerators(), src.Name()))

	return &session{cfg: cfg, set: set, group: g}, nil
}

// newSource builds the group source for cfg. The returned cleanup releases
// the discovery cache and must always be called.
func newSource(cfg config, set *orbitio.GeneratorSet, opts loadOpts) (group.Source, func(), error) {
	if cfg.Search.Source != search.SourceDiscover {
		return group.PrecomputedSource{
			Space:       set.Space,
			Generators:  set.Generators,
			DropInvalid: opts.dropInvalid,
		}, func() {}, nil
	}

	c, err := newCache(opts.noCache || cfg.Discovery.NoCache)
	if err != nil {
		return nil, nil, fmt.Errorf("open cache: %w", err)
	}
	d := execDiscoverer{argv: cfg.Discovery.Command}
	return group.DiscovererSource{
		Discoverer: group.NewCachedDiscoverer(d, d.name(), c, nil, nil),
		Task:       set.Task,
		Options:    cfg.Discovery.options(),
	}, func() { c.Close() }, nil
}

// parseState parses a state written as comma- or space-separated values,
// e.g. "0,1,2".
func parseState(s string, space *perm.IndexSpace) (perm.State, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	state := make(perm.State, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "state %q", s)
		}
		state[i] = v
	}
	if err := space.ValidateState(state); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "state %q", s)
	}
	return state, nil
}

// parseStates parses every argument as a state.
func parseStates(args []string, space *perm.IndexSpace) ([]perm.State, error) {
	states := make([]perm.State, len(args))
	for i, a := range args {
		st, err := parseState(a, space)
		if err != nil {
			return nil, err
		}
		states[i] = st
	}
	return states, nil
}
