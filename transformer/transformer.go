package transformer

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/b-harvest/liquidation-dashboard-backend/config"
	"github.com/b-harvest/liquidation-dashboard-backend/metrics"
	"github.com/b-harvest/liquidation-dashboard-backend/schema"
	"github.com/b-harvest/liquidation-dashboard-backend/service/indexer"
	"github.com/b-harvest/liquidation-dashboard-backend/service/metadata"
	"github.com/b-harvest/liquidation-dashboard-backend/service/price"
	"github.com/b-harvest/liquidation-dashboard-backend/stats"
)

type Upstream interface {
	Liquidations(ctx context.Context, src stats.Source) ([]stats.Record, int, error)
	Rankings(ctx context.Context, url string) ([]indexer.RankingSnapshot, error)
}

type PriceService interface {
	Prices(ctx context.Context) (price.Table, error)
}

// Transformer turns raw liquidation logs and ranking snapshots into the
// aggregates served by the API. Every call is a full, independent pass.
type Transformer struct {
	cfg        config.ServerConfig
	up         Upstream
	resolver   *metadata.Resolver
	ps         PriceService
	classifier *stats.Classifier
	logger     *zap.Logger
	now        func() time.Time
}

func New(cfg config.ServerConfig, up Upstream, resolver *metadata.Resolver, ps PriceService, logger *zap.Logger) *Transformer {
	return &Transformer{
		cfg:        cfg,
		up:         up,
		resolver:   resolver,
		ps:         ps,
		classifier: stats.NewClassifier(cfg.TeamAccounts),
		logger:     logger,
		now:        time.Now,
	}
}

// Transform runs one aggregation pass over src. An unavailable upstream yields
// an empty result; only context cancellation is returned as an error.
func (t *Transformer) Transform(ctx context.Context, src stats.Source) (*schema.DomainStatsCache, error) {
	started := t.now()
	res := &schema.DomainStatsCache{
		Domain:       src,
		RunID:        uuid.NewString(),
		HasProfit:    src.HasProfit(),
		Daily:        []stats.Aggregate{},
		Weekly:       []stats.Aggregate{},
		Liquidations: []stats.LiquidationRow{},
	}
	logger := t.logger.With(zap.String("domain", string(src)), zap.String("run", res.RunID))

	records, malformed, err := t.up.Liquidations(ctx, src)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.Error("failed to fetch liquidation logs", zap.Error(err))
		metrics.RunsTotal.WithLabelValues(string(src), "upstream_error").Inc()
		res.UpstreamError = err.Error()
		res.UpdatedAt = t.now()
		return res, nil
	}
	metrics.RecordsTotal.WithLabelValues(string(src)).Add(float64(len(records)))
	metrics.MalformedRecords.WithLabelValues(string(src)).Add(float64(malformed))

	tokenIDs := stats.CollectTokenIDs(records)
	logger.Debug("resolving valuation", zap.Int("records", len(records)), zap.Int("tokens", len(tokenIDs)))
	v, pricesOK := t.valuation(ctx, logger, tokenIDs)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	daily := stats.AggregateDaily(records, t.classifier, v)
	weekly := stats.RollToWeeks(daily, t.cfg.WeekSize)
	res.Daily = stats.KeepLast(daily, t.cfg.DisplayBuckets)
	res.Weekly = stats.KeepLast(weekly, t.cfg.DisplayBuckets)
	res.Liquidations = stats.Rows(records, t.classifier, v)
	res.NumRecords = len(records)
	res.NumMalformed = malformed
	res.PricesUnavailable = !pricesOK
	res.UpdatedAt = t.now()

	status := "ok"
	if !pricesOK {
		status = "degraded"
	}
	metrics.RunsTotal.WithLabelValues(string(src), status).Inc()
	metrics.RunDuration.WithLabelValues(string(src)).Observe(res.UpdatedAt.Sub(started).Seconds())
	logger.Info("transformed liquidation logs",
		zap.Int("records", len(records)),
		zap.Int("malformed", malformed),
		zap.Int("days", len(daily)),
		zap.Duration("took", res.UpdatedAt.Sub(started)))
	return res, nil
}

// valuation resolves metadata and prices concurrently. It returns once every
// token has metadata; a failed price fetch leaves prices partial or empty.
func (t *Transformer) valuation(ctx context.Context, logger *zap.Logger, tokenIDs []string) (stats.Valuation, bool) {
	var v stats.Valuation
	pricesOK := true
	var eg errgroup.Group
	eg.Go(func() error {
		v.Metadata = t.resolver.ResolveAll(ctx, tokenIDs)
		return nil
	})
	eg.Go(func() error {
		tbl, err := t.ps.Prices(ctx)
		if err != nil {
			metrics.PriceFailures.Inc()
			logger.Warn("failed to fetch prices, valuing at zero", zap.Error(err))
			pricesOK = false
		}
		v.Prices = tbl
		return nil
	})
	_ = eg.Wait()
	return v, pricesOK
}

// Ranking builds rank and balance series for a board. Balances are scaled by
// the board token's decimals when the board names a token.
func (t *Transformer) Ranking(ctx context.Context, board config.RankingBoard) (*schema.RankingCache, error) {
	res := &schema.RankingCache{
		Board:    board.Name,
		TokenID:  board.TokenID,
		Ranks:    []stats.AccountSeries[int]{},
		Balances: []stats.AccountSeries[decimal.Decimal]{},
	}
	snapshots, err := t.up.Rankings(ctx, board.URL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		t.logger.Error("failed to fetch ranking snapshots", zap.String("board", board.Name), zap.Error(err))
		res.UpdatedAt = t.now()
		return res, nil
	}
	decimals := 0
	if board.TokenID != "" {
		decimals = t.resolver.Resolve(ctx, board.TokenID).Decimals
	}
	ranks, balances := rankingPeriods(snapshots, decimals)
	res.Ranks = stats.BuildRankSeries(ranks)
	res.Balances = stats.BuildBalanceSeries(balances)
	res.UpdatedAt = t.now()
	t.logger.Info("built ranking series",
		zap.String("board", board.Name),
		zap.Int("periods", len(ranks)),
		zap.Int("accounts", len(res.Ranks)))
	return res, nil
}

func rankingPeriods(snapshots []indexer.RankingSnapshot, decimals int) ([]stats.Period[int], []stats.Period[decimal.Decimal]) {
	var valid []indexer.RankingSnapshot
	for _, s := range snapshots {
		if s.Timestamp.Valid {
			valid = append(valid, s)
		}
	}
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Timestamp.Value < valid[j].Timestamp.Value
	})
	ranks := make([]stats.Period[int], 0, len(valid))
	balances := make([]stats.Period[decimal.Decimal], 0, len(valid))
	for _, s := range valid {
		rp := stats.Period[int]{Time: s.Timestamp.Value}
		bp := stats.Period[decimal.Decimal]{Time: s.Timestamp.Value}
		for i, e := range s.Entries {
			if e.AccountID == "" {
				continue
			}
			rank := i + 1
			if e.Rank.Valid {
				rank = int(e.Rank.Value)
			}
			rp.Entries = append(rp.Entries, stats.Entry[int]{AccountID: e.AccountID, Metric: rank})
			if e.Balance != "" {
				bp.Entries = append(bp.Entries, stats.Entry[decimal.Decimal]{
					AccountID: e.AccountID,
					Metric:    stats.Readable(string(e.Balance), decimals),
				})
			}
		}
		ranks = append(ranks, rp)
		balances = append(balances, bp)
	}
	return ranks, balances
}

// TransformAll runs every configured source concurrently.
func (t *Transformer) TransformAll(ctx context.Context) (map[stats.Source]*schema.DomainStatsCache, error) {
	srcs, err := t.cfg.SourceList()
	if err != nil {
		return nil, fmt.Errorf("source list: %w", err)
	}
	res := make([]*schema.DomainStatsCache, len(srcs))
	eg, ctx2 := errgroup.WithContext(ctx)
	for i, src := range srcs {
		i, src := i, src
		eg.Go(func() error {
			r, err := t.Transform(ctx2, src)
			if err != nil {
				return fmt.Errorf("transform %s: %w", src, err)
			}
			res[i] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	m := make(map[stats.Source]*schema.DomainStatsCache, len(srcs))
	for i, src := range srcs {
		m[src] = res[i]
	}
	return m, nil
}
