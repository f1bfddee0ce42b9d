package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/b-harvest/liquidation-dashboard-backend/schema"
	"github.com/b-harvest/liquidation-dashboard-backend/stats"
	"github.com/b-harvest/liquidation-dashboard-backend/util"
)

func (s *Server) GetStatus(c echo.Context) error {
	srcs, err := s.cfg.SourceList()
	if err != nil {
		return fmt.Errorf("get source list: %w", err)
	}
	resp := schema.StatusResponse{Domains: []schema.DomainStatus{}}
	for _, src := range srcs {
		st := schema.DomainStatus{Domain: src}
		cache, err := s.LoadDomainStatsCache(c.Request().Context(), src)
		if err != nil {
			if !errors.Is(err, ErrCacheMiss) {
				return fmt.Errorf("load %s stats cache: %w", src, err)
			}
		} else {
			st.Ready = true
			st.NumRecords = cache.NumRecords
			st.UpdatedAt = cache.UpdatedAt
		}
		resp.Domains = append(resp.Domains, st)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) domain(name string) (stats.Source, error) {
	src, err := stats.ParseSource(name)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	srcs, _ := s.cfg.SourceList()
	for _, x := range srcs {
		if x == src {
			return src, nil
		}
	}
	return "", echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("domain %q is not enabled", name))
}

func (s *Server) loadDomainStats(ctx context.Context, src stats.Source) (cache schema.DomainStatsCache, err error) {
	if err := RetryLoadingCache(ctx, func(ctx context.Context) error {
		var err error
		cache, err = s.LoadDomainStatsCache(ctx, src)
		return err
	}, s.cfg.CacheLoadTimeout); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return cache, echo.NewHTTPError(http.StatusInternalServerError, "no stats data found")
		}
		return cache, fmt.Errorf("load cache: %w", err)
	}
	return cache, nil
}

func (s *Server) GetStats(c echo.Context) error {
	var req schema.StatsRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	src, err := s.domain(req.Domain)
	if err != nil {
		return err
	}
	if req.Bucket == "" {
		req.Bucket = schema.BucketDay
	}
	cache, err := s.loadDomainStats(c.Request().Context(), src)
	if err != nil {
		return err
	}
	resp := schema.StatsResponse{
		Domain:            src,
		Bucket:            req.Bucket,
		HasProfit:         cache.HasProfit,
		PricesUnavailable: cache.PricesUnavailable,
		UpdatedAt:         cache.UpdatedAt,
	}
	switch req.Bucket {
	case schema.BucketDay:
		resp.Aggregates = cache.Daily
	case schema.BucketWeek:
		resp.Aggregates = cache.Weekly
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "bucket must be 'day' or 'week'")
	}
	if resp.Aggregates == nil {
		resp.Aggregates = []stats.Aggregate{}
	}
	return c.JSON(http.StatusOK, resp)
}

func validSortKey(key string) bool {
	for _, k := range stats.LiquidationSortKeys {
		if k == key {
			return true
		}
	}
	return false
}

// GetLiquidations sorts the liquidation table. Clients send back the sort
// state of their last response as prev_sort/prev_order; requesting the same
// key again flips the order.
func (s *Server) GetLiquidations(c echo.Context) error {
	var req schema.LiquidationsRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	src, err := s.domain(req.Domain)
	if err != nil {
		return err
	}
	for _, k := range []string{req.Sort, req.PrevSort} {
		if k != "" && !validSortKey(k) {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown sort key %q", k))
		}
	}
	prevDir := s.cfg.SortDirection()
	if req.PrevOrder != "" {
		prevDir, err = stats.ParseDirection(req.PrevOrder)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	cache, err := s.loadDomainStats(c.Request().Context(), src)
	if err != nil {
		return err
	}
	var rows []stats.LiquidationRow
	sorter := stats.RestoreSorter(s.cfg.SortDirection(), req.PrevSort, prevDir)
	switch {
	case req.Sort != "":
		rows = stats.SortWith(sorter, cache.Liquidations, req.Sort)
	case req.PrevSort != "":
		rows = stats.SortBy(cache.Liquidations, req.PrevSort, prevDir)
	default:
		rows = stats.SortWith(sorter, cache.Liquidations, stats.SortKeyTime)
	}
	limit := s.cfg.TableSize
	if req.Limit > 0 {
		limit = util.MinInt(req.Limit, s.cfg.TableSize)
	}
	return c.JSON(http.StatusOK, schema.LiquidationsResponse{
		Domain:    src,
		Sort:      sorter.Key(),
		Order:     sorter.Direction().String(),
		Total:     len(rows),
		Rows:      rows[:util.MinInt(limit, len(rows))],
		UpdatedAt: cache.UpdatedAt,
	})
}

func (s *Server) GetRanking(c echo.Context) error {
	var req schema.RankingRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if _, ok := s.cfg.RankingBoard(req.Board); !ok {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("unknown ranking board %q", req.Board))
	}
	var resp schema.RankingCache
	if err := RetryLoadingCache(c.Request().Context(), func(ctx context.Context) error {
		var err error
		resp, err = s.LoadRankingCache(ctx, req.Board)
		return err
	}, s.cfg.CacheLoadTimeout); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return echo.NewHTTPError(http.StatusInternalServerError, "no ranking data found")
		}
		return fmt.Errorf("load cache: %w", err)
	}
	return c.JSON(http.StatusOK, resp)
}
