package config

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/b-harvest/liquidation-dashboard-backend/stats"
)

var DefaultServerConfig = ServerConfig{
	Debug:    false,
	BindAddr: "0.0.0.0:8080",
	Sources: []string{
		string(stats.MainRegular),
		string(stats.MainMargin),
		string(stats.MemeRegular),
		string(stats.MemeMargin),
	},
	WeekSize:            stats.WeekSize,
	DisplayBuckets:      7,
	TableSize:           100,
	DefaultSortOrder:    "desc",
	CacheLoadTimeout:    10 * time.Second,
	CacheUpdateInterval: time.Minute,
	RunTimeout:          30 * time.Second,
	Indexer:             DefaultIndexerConfig,
	Redis:               DefaultRedisConfig,
	Log:                 zap.NewProductionConfig(),
}

type ServerConfig struct {
	Debug               bool            `yaml:"debug"`
	BindAddr            string          `yaml:"bind_addr"`
	Sources             []string        `yaml:"sources"`
	TeamAccounts        []string        `yaml:"team_accounts"`
	RankingBoards       []RankingBoard  `yaml:"ranking_boards"`
	ManualPrices        []ManualPrice   `yaml:"manual_prices"`
	TokenMetadata       []TokenMetadata `yaml:"token_metadata"`
	WeekSize            int             `yaml:"week_size"`
	DisplayBuckets      int             `yaml:"display_buckets"`
	TableSize           int             `yaml:"table_size"`
	DefaultSortOrder    string          `yaml:"default_sort_order"`
	CacheLoadTimeout    time.Duration   `yaml:"cache_load_timeout"`
	CacheUpdateInterval time.Duration   `yaml:"cache_update_interval"`
	RunTimeout          time.Duration   `yaml:"run_timeout"`
	Indexer             IndexerConfig   `yaml:"indexer"`
	Redis               RedisConfig     `yaml:"redis"`
	Log                 zap.Config      `yaml:"log"`
}

func (cfg ServerConfig) Validate() error {
	if len(cfg.Sources) == 0 {
		return fmt.Errorf("'sources' is empty")
	}
	srcs, err := cfg.SourceList()
	if err != nil {
		return fmt.Errorf("validate 'sources' field: %w", err)
	}
	for _, src := range srcs {
		if cfg.Indexer.Endpoints[string(src)] == "" {
			return fmt.Errorf("no endpoint for source %q", src)
		}
	}
	names := make(map[string]struct{})
	for _, b := range cfg.RankingBoards {
		if b.Name == "" || b.URL == "" {
			return fmt.Errorf("ranking board must have 'name' and 'url'")
		}
		if _, ok := names[b.Name]; ok {
			return fmt.Errorf("duplicate ranking board %q", b.Name)
		}
		names[b.Name] = struct{}{}
	}
	if cfg.WeekSize <= 0 {
		return fmt.Errorf("'week_size' must be positive")
	}
	if cfg.DisplayBuckets <= 0 {
		return fmt.Errorf("'display_buckets' must be positive")
	}
	if _, err := stats.ParseDirection(cfg.DefaultSortOrder); err != nil {
		return fmt.Errorf("validate 'default_sort_order' field: %w", err)
	}
	if err := cfg.Indexer.Validate(); err != nil {
		return fmt.Errorf("validate 'indexer' field: %w", err)
	}
	return nil
}

func (cfg ServerConfig) SourceList() ([]stats.Source, error) {
	var srcs []stats.Source
	for _, s := range cfg.Sources {
		src, err := stats.ParseSource(s)
		if err != nil {
			return nil, err
		}
		srcs = append(srcs, src)
	}
	return srcs, nil
}

func (cfg ServerConfig) SortDirection() stats.Direction {
	d, _ := stats.ParseDirection(cfg.DefaultSortOrder)
	return d
}

func (cfg ServerConfig) ManualPricesMap() map[string]float64 {
	m := make(map[string]float64)
	for _, mp := range cfg.ManualPrices {
		m[mp.TokenID] = mp.Price
	}
	return m
}

func (cfg ServerConfig) TokenMetadataList() []stats.TokenMetadata {
	var mds []stats.TokenMetadata
	for _, md := range cfg.TokenMetadata {
		mds = append(mds, stats.TokenMetadata{TokenID: md.TokenID, Symbol: md.Symbol, Decimals: md.Decimals})
	}
	return mds
}

func (cfg ServerConfig) RankingBoard(name string) (RankingBoard, bool) {
	for _, b := range cfg.RankingBoards {
		if b.Name == name {
			return b, true
		}
	}
	return RankingBoard{}, false
}

// RankingBoard is a top-N holders/liquidators snapshot feed.
type RankingBoard struct {
	Name    string `yaml:"name"`
	URL     string `yaml:"url"`
	TokenID string `yaml:"token_id"`
}

type ManualPrice struct {
	TokenID string  `yaml:"token_id"`
	Price   float64 `yaml:"price"`
}

type TokenMetadata struct {
	TokenID  string `yaml:"token_id"`
	Symbol   string `yaml:"symbol"`
	Decimals int    `yaml:"decimals"`
}
