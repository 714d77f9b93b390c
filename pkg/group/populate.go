package group

import (
	"context"
	"time"

	"github.com/matzehuels/orbit/pkg/errors"
	"github.com/matzehuels/orbit/pkg/observability"
)

// ComputeSymmetries fills the group from src. It may succeed only once;
// later calls return an ALREADY_POPULATED error and leave the group as is.
//
// Discovery that runs out of its budget is not an error: the group ends up
// populated but empty, and search proceeds without symmetry pruning.
func (g *Group) ComputeSymmetries(ctx context.Context, src Source) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.populated {
		return errors.New(errors.ErrCodeAlreadyPopulated, "symmetry group is already populated")
	}
	if src == nil {
		return errors.New(errors.ErrCodeInvalidConfig, "no symmetry source")
	}

	hooks := observability.Group()
	name := src.Name()
	hooks.OnPopulateStart(ctx, name)
	start := time.Now()

	res, err := src.load(ctx, g.logger)
	if err != nil {
		hooks.OnPopulateComplete(ctx, name, 0, 0, time.Since(start), err)
		return err
	}
	if res.exhausted {
		hooks.OnExhausted(ctx, name)
	}

	g.space = res.space
	g.gens = res.gens
	g.identities = res.identities
	g.invalid = res.invalid
	g.exhausted = res.exhausted
	g.populated = true

	elapsed := time.Since(start)
	hooks.OnPopulateComplete(ctx, name, len(g.gens), g.identities+g.invalid, elapsed, nil)
	g.logger.Info("symmetry group populated",
		"source", name,
		"generators", len(g.gens),
		"identities", g.identities,
		"duration", elapsed.Round(time.Millisecond))
	return nil
}
