package metadata

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/b-harvest/liquidation-dashboard-backend/metrics"
	"github.com/b-harvest/liquidation-dashboard-backend/stats"
)

type Fetcher interface {
	TokenMetadata(ctx context.Context, tokenID string) (stats.TokenMetadata, error)
}

// Resolver memoizes token metadata for the process lifetime. Concurrent misses
// on the same token share one fetch. Failed fetches are not cached, so the
// token is retried on the next pass.
type Resolver struct {
	f           Fetcher
	concurrency int
	logger      *zap.Logger

	timeout time.Duration

	mux   sync.RWMutex
	cache map[string]stats.TokenMetadata
	group singleflight.Group
}

func NewResolver(f Fetcher, concurrency int, logger *zap.Logger) *Resolver {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Resolver{
		f:           f,
		concurrency: concurrency,
		logger:      logger,
		cache:       make(map[string]stats.TokenMetadata),
	}
}

// SetFetchTimeout bounds each metadata fetch. Zero means no bound.
func (r *Resolver) SetFetchTimeout(d time.Duration) {
	r.timeout = d
}

// Preload stores known metadata without fetching. Existing entries are kept.
func (r *Resolver) Preload(mds ...stats.TokenMetadata) {
	r.mux.Lock()
	defer r.mux.Unlock()
	for _, md := range mds {
		if _, ok := r.cache[md.TokenID]; !ok {
			r.cache[md.TokenID] = md
		}
	}
}

func (r *Resolver) cached(tokenID string) (stats.TokenMetadata, bool) {
	r.mux.RLock()
	defer r.mux.RUnlock()
	md, ok := r.cache[tokenID]
	return md, ok
}

// Resolve returns the token's metadata, or Fallback(tokenID) if it cannot be fetched.
func (r *Resolver) Resolve(ctx context.Context, tokenID string) stats.TokenMetadata {
	if md, ok := r.cached(tokenID); ok {
		return md
	}
	v, err, _ := r.group.Do(tokenID, func() (interface{}, error) {
		if md, ok := r.cached(tokenID); ok {
			return md, nil
		}
		// The fetch is shared by every waiter, so it must outlive the caller that started it.
		fctx := context.WithoutCancel(ctx)
		if r.timeout > 0 {
			var cancel context.CancelFunc
			fctx, cancel = context.WithTimeout(fctx, r.timeout)
			defer cancel()
		}
		md, err := r.f.TokenMetadata(fctx, tokenID)
		if err != nil {
			return nil, err
		}
		md.TokenID = tokenID
		r.mux.Lock()
		if prev, ok := r.cache[tokenID]; ok {
			md = prev
		} else {
			r.cache[tokenID] = md
		}
		r.mux.Unlock()
		return md, nil
	})
	if err != nil {
		metrics.MetadataFallbacks.Inc()
		r.logger.Warn("failed to fetch token metadata, using fallback",
			zap.String("token", tokenID), zap.Error(err))
		return Fallback(tokenID)
	}
	return v.(stats.TokenMetadata)
}

// ResolveAll resolves every token concurrently and returns once all of them
// have an entry, fetched or fallback.
func (r *Resolver) ResolveAll(ctx context.Context, tokenIDs []string) map[string]stats.TokenMetadata {
	res := make(map[string]stats.TokenMetadata, len(tokenIDs))
	var mux sync.Mutex
	var eg errgroup.Group
	eg.SetLimit(r.concurrency)
	for _, id := range tokenIDs {
		id := id
		eg.Go(func() error {
			md := r.Resolve(ctx, id)
			mux.Lock()
			res[id] = md
			mux.Unlock()
			return nil
		})
	}
	_ = eg.Wait()
	return res
}

// Fallback is the metadata used for tokens whose metadata is unavailable.
func Fallback(tokenID string) stats.TokenMetadata {
	return stats.TokenMetadata{
		TokenID:  tokenID,
		Symbol:   ShortID(tokenID),
		Decimals: stats.DefaultDecimals,
	}
}

// ShortID abbreviates long token ids such as contract addresses.
func ShortID(tokenID string) string {
	const keep = 6
	if len(tokenID) <= 2*keep+3 {
		return tokenID
	}
	return tokenID[:keep] + "..." + tokenID[len(tokenID)-keep:]
}
