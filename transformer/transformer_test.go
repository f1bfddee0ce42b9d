package transformer

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/b-harvest/liquidation-dashboard-backend/config"
	"github.com/b-harvest/liquidation-dashboard-backend/service/indexer"
	"github.com/b-harvest/liquidation-dashboard-backend/service/metadata"
	"github.com/b-harvest/liquidation-dashboard-backend/service/price"
	"github.com/b-harvest/liquidation-dashboard-backend/stats"
)

type fakeUpstream struct {
	records   map[stats.Source][]stats.Record
	snapshots []indexer.RankingSnapshot
	err       error
}

func (u *fakeUpstream) Liquidations(ctx context.Context, src stats.Source) ([]stats.Record, int, error) {
	if u.err != nil {
		return nil, 0, u.err
	}
	return u.records[src], 0, nil
}

func (u *fakeUpstream) Rankings(ctx context.Context, url string) ([]indexer.RankingSnapshot, error) {
	if u.err != nil {
		return nil, u.err
	}
	return u.snapshots, nil
}

type fakeMetadata map[string]stats.TokenMetadata

func (f fakeMetadata) TokenMetadata(ctx context.Context, tokenID string) (stats.TokenMetadata, error) {
	md, ok := f[tokenID]
	if !ok {
		return stats.TokenMetadata{}, errors.New("not found")
	}
	return md, nil
}

type fakePrices struct {
	table price.Table
	err   error
}

func (f fakePrices) Prices(ctx context.Context) (price.Table, error) {
	return f.table, f.err
}

func newTestTransformer(up Upstream, ps PriceService) *Transformer {
	cfg := config.DefaultServerConfig
	cfg.TeamAccounts = []string{"bot.near"}
	md := fakeMetadata{
		"usdt": {Symbol: "USDT", Decimals: 24},
		"meme": {Symbol: "MEME", Decimals: 18},
	}
	return New(cfg, up, metadata.NewResolver(md, 4, zap.NewNop()), ps, zap.NewNop())
}

func oneDayRecords() []stats.Record {
	ts := stats.NewTimestamp(1700000000, stats.Seconds)
	return []stats.Record{
		{Source: stats.MainRegular, Actor: "bot.near", Time: ts, Assets: []stats.Asset{{TokenID: "usdt", Amount: "1000000000000000000000000"}}},
		{Source: stats.MainRegular, Actor: "bot.near", Time: ts, Assets: []stats.Asset{{TokenID: "usdt", Amount: "1000000000000000000000000"}}},
		{Source: stats.MainRegular, Actor: "someone.near", Time: ts, Assets: []stats.Asset{{TokenID: "usdt", Amount: "500000000000000000000000"}}},
	}
}

func TestTransformer_Transform(t *testing.T) {
	up := &fakeUpstream{records: map[stats.Source][]stats.Record{stats.MainRegular: oneDayRecords()}}
	tr := newTestTransformer(up, fakePrices{table: price.Table{"usdt": 1.0}})

	res, err := tr.Transform(context.Background(), stats.MainRegular)
	require.NoError(t, err)
	require.False(t, res.PricesUnavailable)
	require.False(t, res.HasProfit)
	require.NotEmpty(t, res.RunID)
	require.Len(t, res.Daily, 1)
	require.Len(t, res.Weekly, 1)
	day := res.Daily[0]
	require.Equal(t, stats.CountSplit{Total: 3, Team: 2, Community: 1}, day.Count)
	require.True(t, decimal.RequireFromString("2.5").Equal(day.LiquidationValue.Total))
	require.True(t, decimal.RequireFromString("2").Equal(day.LiquidationValue.Team))
	require.True(t, decimal.RequireFromString("0.5").Equal(day.LiquidationValue.Community))
	require.Equal(t, "2023-11-14 ~ 2023-11-14", res.Weekly[0].Date)
	require.Len(t, res.Liquidations, 3)
}

func TestTransformer_KeepsLastBuckets(t *testing.T) {
	var records []stats.Record
	for i := int64(0); i < 20; i++ {
		records = append(records, stats.Record{
			Source: stats.MemeMargin,
			Actor:  "x",
			Time:   stats.NewTimestamp((1700000000+i*86400)*1_000_000_000, stats.Nanoseconds),
			Assets: []stats.Asset{{TokenID: "meme", Amount: "1"}},
		})
	}
	up := &fakeUpstream{records: map[stats.Source][]stats.Record{stats.MemeMargin: records}}
	tr := newTestTransformer(up, fakePrices{table: price.Table{}})

	res, err := tr.Transform(context.Background(), stats.MemeMargin)
	require.NoError(t, err)
	require.True(t, res.HasProfit)
	require.Len(t, res.Daily, 7)
	require.Equal(t, "2023-12-03", res.Daily[6].Date)
	require.Len(t, res.Weekly, 3)
	require.Equal(t, 6, res.Weekly[2].Count.Total)
}

func TestTransformer_PriceFailure(t *testing.T) {
	up := &fakeUpstream{records: map[stats.Source][]stats.Record{stats.MainRegular: oneDayRecords()}}
	tr := newTestTransformer(up, fakePrices{err: errors.New("down")})

	res, err := tr.Transform(context.Background(), stats.MainRegular)
	require.NoError(t, err)
	require.True(t, res.PricesUnavailable)
	require.Equal(t, 3, res.Daily[0].Count.Total)
	require.True(t, res.Daily[0].LiquidationValue.Total.IsZero())
}

func TestTransformer_UpstreamUnavailable(t *testing.T) {
	tr := newTestTransformer(&fakeUpstream{err: errors.New("connection refused")}, fakePrices{})
	res, err := tr.Transform(context.Background(), stats.MainMargin)
	require.NoError(t, err)
	require.Empty(t, res.Daily)
	require.Empty(t, res.Weekly)
	require.NotEmpty(t, res.UpstreamError)

	rk, err := tr.Ranking(context.Background(), config.RankingBoard{Name: "holders", URL: "x"})
	require.NoError(t, err)
	require.Empty(t, rk.Ranks)
}

func TestTransformer_TransformAll(t *testing.T) {
	up := &fakeUpstream{records: map[stats.Source][]stats.Record{stats.MainRegular: oneDayRecords()}}
	tr := newTestTransformer(up, fakePrices{table: price.Table{"usdt": 1.0}})
	res, err := tr.TransformAll(context.Background())
	require.NoError(t, err)
	require.Len(t, res, len(stats.Sources()))
	require.Equal(t, 3, res[stats.MainRegular].NumRecords)
	require.Zero(t, res[stats.MemeRegular].NumRecords)
}

func TestTransformer_Ranking(t *testing.T) {
	up := &fakeUpstream{snapshots: []indexer.RankingSnapshot{
		{Timestamp: indexer.Int64{Value: 200, Valid: true}, Entries: []indexer.RankingEntry{
			{AccountID: "bob", Balance: "3000000000000000000"},
		}},
		{Timestamp: indexer.Int64{Value: 100, Valid: true}, Entries: []indexer.RankingEntry{
			{AccountID: "alice", Rank: indexer.Int64{Value: 1, Valid: true}, Balance: "1000000000000000000"},
			{AccountID: "bob", Rank: indexer.Int64{Value: 2, Valid: true}, Balance: "500000000000000000"},
		}},
		{Entries: []indexer.RankingEntry{{AccountID: "ghost"}}},
	}}
	tr := newTestTransformer(up, fakePrices{})

	res, err := tr.Ranking(context.Background(), config.RankingBoard{Name: "meme-holders", URL: "x", TokenID: "meme"})
	require.NoError(t, err)
	require.Len(t, res.Ranks, 2)
	alice, bob := res.Ranks[0], res.Ranks[1]
	require.Equal(t, "alice", alice.AccountID)
	require.Equal(t, int64(100), alice.Points[0].Time)
	require.Equal(t, 1, *alice.Points[0].Value)
	require.Nil(t, alice.Points[1].Value)
	require.Equal(t, 1, *bob.Points[1].Value)

	require.Len(t, res.Balances, 2)
	require.True(t, decimal.RequireFromString("0.5").Equal(*res.Balances[1].Points[0].Value))
	require.True(t, decimal.RequireFromString("3").Equal(*res.Balances[1].Points[1].Value))
}
