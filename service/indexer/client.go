package indexer

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/b-harvest/liquidation-dashboard-backend/config"
	"github.com/b-harvest/liquidation-dashboard-backend/stats"
)

// Client reads liquidation logs, token metadata, prices and ranking
// snapshots from the ledger-indexing APIs.
type Client struct {
	cfg     config.IndexerConfig
	hc      *http.Client
	limiter *rate.Limiter
}

func NewClient(cfg config.IndexerConfig) *Client {
	return &Client{
		cfg:     cfg,
		hc:      &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
	}
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait rate limiter: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return b, nil
}

// Liquidations fetches and adapts the liquidation logs of src.
func (c *Client) Liquidations(ctx context.Context, src stats.Source) ([]stats.Record, int, error) {
	url, ok := c.cfg.Endpoints[string(src)]
	if !ok {
		return nil, 0, fmt.Errorf("no endpoint for source %q", src)
	}
	b, err := c.get(ctx, url)
	if err != nil {
		return nil, 0, fmt.Errorf("get %s logs: %w", src, err)
	}
	return AdaptRecords(src, b)
}

type tokenMetadataResponse struct {
	TokenID  string `json:"token_id"`
	Symbol   string `json:"symbol"`
	Decimals *Int64 `json:"decimals"`
}

func (c *Client) TokenMetadata(ctx context.Context, tokenID string) (stats.TokenMetadata, error) {
	b, err := c.get(ctx, fmt.Sprintf(c.cfg.MetadataURL, tokenID))
	if err != nil {
		return stats.TokenMetadata{}, err
	}
	var resp tokenMetadataResponse
	if err := json.Unmarshal(b, &resp); err != nil {
		return stats.TokenMetadata{}, fmt.Errorf("unmarshal metadata: %w", err)
	}
	if resp.Decimals == nil || !resp.Decimals.Valid {
		return stats.TokenMetadata{}, fmt.Errorf("metadata of %q has no decimals", tokenID)
	}
	return stats.TokenMetadata{
		TokenID:  tokenID,
		Symbol:   resp.Symbol,
		Decimals: int(resp.Decimals.Value),
	}, nil
}

type priceEntry struct {
	Price Float64 `json:"price"`
}

// Prices returns the latest USD price of every token the price source knows.
func (c *Client) Prices(ctx context.Context) (map[string]float64, error) {
	b, err := c.get(ctx, c.cfg.PricesURL)
	if err != nil {
		return nil, err
	}
	var resp map[string]priceEntry
	if err := json.Unmarshal(b, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal prices: %w", err)
	}
	res := make(map[string]float64, len(resp))
	for id, e := range resp {
		res[id] = float64(e.Price)
	}
	return res, nil
}

type RankingEntry struct {
	AccountID string `json:"account_id"`
	Rank      Int64  `json:"rank"`
	Balance   Amount `json:"balance"`
}

// RankingSnapshot is one period of a top-N board. Timestamp is in seconds.
type RankingSnapshot struct {
	Timestamp Int64          `json:"timestamp"`
	Entries   []RankingEntry `json:"entries"`
}

// Rankings fetches a board's snapshots in time order.
func (c *Client) Rankings(ctx context.Context, url string) ([]RankingSnapshot, error) {
	b, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	var snapshots []RankingSnapshot
	if err := decodeList(b, &snapshots); err != nil {
		return nil, fmt.Errorf("decode ranking snapshots: %w", err)
	}
	return snapshots, nil
}
