package group

import (
	"context"
	"encoding/json"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/orbit/pkg/cache"
	"github.com/matzehuels/orbit/pkg/observability"
	"github.com/matzehuels/orbit/pkg/perm"
)

const cacheKeyType = "generators"

// CachedDiscoverer wraps a Discoverer and stores its results in a cache,
// keyed by the task and the stabilization options.
//
// Cache failures never fail discovery: they are logged and the wrapped
// discoverer is called instead. Exhausted or failed discoveries are not
// cached.
type CachedDiscoverer struct {
	Discoverer Discoverer

	// Name distinguishes discoverers that would return different
	// generators for the same task.
	Name string

	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewCachedDiscoverer wraps d. A nil cache disables caching, a nil keyer
// uses cache.DefaultKeyer and a nil logger discards output.
func NewCachedDiscoverer(d Discoverer, name string, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *CachedDiscoverer {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &CachedDiscoverer{Discoverer: d, Name: name, Cache: c, Keyer: keyer, Logger: logger}
}

// cachedGenerators is the cache encoding of RawGenerators.
type cachedGenerators struct {
	NumVars     int     `json:"variables"`
	DomSumByVar []int   `json:"dom_sum_by_var,omitempty"`
	VarByVal    []int   `json:"var_by_val,omitempty"`
	Generators  [][]int `json:"generators"`
}

// Discover implements Discoverer.
func (c *CachedDiscoverer) Discover(ctx context.Context, req DiscoveryRequest) (*RawGenerators, error) {
	if req.Task == nil {
		return c.Discoverer.Discover(ctx, req)
	}
	hooks := observability.Cache()
	key := c.Keyer.GeneratorsKey(req.Task.Hash(), cache.GeneratorsKeyOpts{
		Discoverer:            c.Name,
		StabilizeInitialState: req.StabilizeInitialState,
		StabilizeGoal:         req.StabilizeGoal,
	})

	data, hit, err := c.Cache.Get(ctx, key)
	switch {
	case err != nil:
		c.Logger.Warn("generator cache read failed", "err", err)
	case hit:
		raw, err := decodeGenerators(data)
		if err == nil {
			hooks.OnCacheHit(ctx, cacheKeyType)
			c.Logger.Debug("generator cache hit", "generators", len(raw.Generators))
			return raw, nil
		}
		c.Logger.Warn("discarding corrupt generator cache entry", "err", err)
	}
	hooks.OnCacheMiss(ctx, cacheKeyType)

	raw, err := c.Discoverer.Discover(ctx, req)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		raw = &RawGenerators{}
	}

	data, err = encodeGenerators(raw, req.Task.NumVars())
	if err != nil {
		c.Logger.Warn("encode generators for cache", "err", err)
		return raw, nil
	}
	if err := c.Cache.Set(ctx, key, data, cache.TTLGenerators); err != nil {
		c.Logger.Warn("generator cache write failed", "err", err)
		return raw, nil
	}
	hooks.OnCacheSet(ctx, cacheKeyType, len(data))
	return raw, nil
}

func encodeGenerators(raw *RawGenerators, numVars int) ([]byte, error) {
	cg := cachedGenerators{NumVars: numVars, Generators: raw.Generators}
	if raw.Space != nil {
		cg.NumVars = raw.Space.NumVars()
		cg.DomSumByVar = raw.Space.DomSumByVar()
		cg.VarByVal = raw.Space.VarByVal()
	}
	return json.Marshal(cg)
}

func decodeGenerators(data []byte) (*RawGenerators, error) {
	var cg cachedGenerators
	if err := json.Unmarshal(data, &cg); err != nil {
		return nil, err
	}
	raw := &RawGenerators{Generators: cg.Generators}
	if cg.DomSumByVar != nil {
		space, err := perm.IndexSpaceFromTables(cg.NumVars, cg.DomSumByVar, cg.VarByVal)
		if err != nil {
			return nil, err
		}
		raw.Space = space
	}
	return raw, nil
}
