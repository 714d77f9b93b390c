package group

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/orbit/pkg/perm"
)

// Canonical is one result of CanonicalizeAll.
type Canonical struct {
	State perm.State
	Trace Trace
}

// CanonicalizeAll canonicalizes states in parallel using at most workers
// goroutines (GOMAXPROCS when workers <= 0). Results are in input order.
// It stops early and returns the context error when ctx is cancelled.
func (g *Group) CanonicalizeAll(ctx context.Context, states []perm.State, workers int) ([]Canonical, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	out := make([]Canonical, len(states))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, s := range states {
		if egCtx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			canon, trace := g.Canonicalize(s)
			out[i] = Canonical{State: canon, Trace: trace}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
