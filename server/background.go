package server

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/b-harvest/liquidation-dashboard-backend/util"
)

func (s *Server) RunBackgroundUpdater(ctx context.Context) error {
	ticker := util.NewImmediateTicker(s.cfg.CacheUpdateInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.logger.Debug("updating caches")
			if err := s.UpdateCaches(ctx); err != nil {
				s.logger.Error("failed to update caches", zap.Error(err))
			}
		}
	}
}

// UpdateCaches runs a full pass for every source and ranking board. Each
// result replaces the previously cached one.
func (s *Server) UpdateCaches(ctx context.Context) error {
	srcs, err := s.cfg.SourceList()
	if err != nil {
		return fmt.Errorf("get source list: %w", err)
	}
	if s.cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RunTimeout)
		defer cancel()
	}
	eg, ctx2 := errgroup.WithContext(ctx)
	for _, src := range srcs {
		src := src
		eg.Go(func() error {
			c, err := s.tr.Transform(ctx2, src)
			if err != nil {
				return fmt.Errorf("transform %s: %w", src, err)
			}
			if err := s.SaveDomainStatsCache(ctx2, c); err != nil {
				return fmt.Errorf("save %s stats cache: %w", src, err)
			}
			return nil
		})
	}
	for _, b := range s.cfg.RankingBoards {
		b := b
		eg.Go(func() error {
			c, err := s.tr.Ranking(ctx2, b)
			if err != nil {
				return fmt.Errorf("build ranking %s: %w", b.Name, err)
			}
			if err := s.SaveRankingCache(ctx2, c); err != nil {
				return fmt.Errorf("save ranking %s cache: %w", b.Name, err)
			}
			return nil
		})
	}
	return eg.Wait()
}
