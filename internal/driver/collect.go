package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"vetch/internal/bodylint"
	"vetch/internal/diag"
	"vetch/internal/hir"
	"vetch/internal/project"
)

// Options controls a CollectAll run.
type Options struct {
	// Jobs caps the number of concurrent workers. Zero means GOMAXPROCS.
	Jobs int
	// Config filters disabled lints and caps diagnostics per body.
	// Nil falls back to project defaults.
	Config *project.Config
	// Cache, when non-nil, short-circuits unchanged bodies.
	Cache *DiskCache
}

// Result holds the findings for one owner.
type Result struct {
	Owner hir.OwnerID
	// Findings are the raw pass findings. Nil when Bag was restored
	// from the cache.
	Findings []bodylint.Diagnostic
	// Bag holds the span-level diagnostics, capped per the config.
	Bag *diag.Bag
	// FromCache is set when the bag was decoded instead of computed.
	FromCache bool
}

// CollectAll validates every owner's body, fanning out across workers.
// Results come back indexed like owners regardless of completion order.
func CollectAll(ctx context.Context, provider bodylint.Provider, owners []hir.OwnerID, opts Options) ([]Result, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = project.Default()
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(owners))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(owners), 1)))
	for i, owner := range owners {
		i, owner := i, owner
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = collectOne(provider, owner, cfg, opts.Cache)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func collectOne(provider bodylint.Provider, owner hir.OwnerID, cfg *project.Config, cache *DiskCache) Result {
	body := provider.Body(owner)
	bag := diag.NewBag(cfg.MaxDiagnostics())

	var digest Digest
	if cache != nil && body != nil {
		digest = BodyDigest(body)
		if records, ok := cache.Get(digest); ok {
			restoreBag(bag, records)
			return Result{Owner: owner, Bag: bag, FromCache: true}
		}
	}

	findings := bodylint.Collect(provider, owner)
	if body != nil {
		rep := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
		RenderBody(rep, body, provider.Decls(), findings, cfg)
	}
	if cache != nil && body != nil {
		cache.Put(digest, recordBag(bag))
	}
	return Result{Owner: owner, Findings: findings, Bag: bag}
}
