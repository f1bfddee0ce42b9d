package config

import (
	"fmt"
	"strings"
	"time"
)

var DefaultIndexerConfig = IndexerConfig{
	Timeout:             10 * time.Second,
	RequestsPerSecond:   20,
	Burst:               10,
	MetadataConcurrency: 8,
}

type IndexerConfig struct {
	// Endpoints maps a source name to its liquidation log URL.
	Endpoints           map[string]string `yaml:"endpoints"`
	PricesURL           string            `yaml:"prices_url"`
	MetadataURL         string            `yaml:"metadata_url"`
	Timeout             time.Duration     `yaml:"timeout"`
	RequestsPerSecond   float64           `yaml:"requests_per_second"`
	Burst               int               `yaml:"burst"`
	MetadataConcurrency int               `yaml:"metadata_concurrency"`
}

func (cfg IndexerConfig) Validate() error {
	if cfg.PricesURL == "" {
		return fmt.Errorf("'prices_url' is required")
	}
	if !strings.Contains(cfg.MetadataURL, "%s") {
		return fmt.Errorf("'metadata_url' must contain a %%s placeholder for the token id")
	}
	if cfg.RequestsPerSecond <= 0 || cfg.Burst <= 0 {
		return fmt.Errorf("'requests_per_second' and 'burst' must be positive")
	}
	return nil
}

var DefaultRedisConfig = RedisConfig{
	URL:       "redis://localhost",
	KeyPrefix: "lqdash",
}

type RedisConfig struct {
	URL       string `yaml:"url"`
	KeyPrefix string `yaml:"key_prefix"`
}

func (cfg RedisConfig) StatsKey(domain string) string {
	return cfg.KeyPrefix + ":stats:" + domain
}

func (cfg RedisConfig) RankingKey(board string) string {
	return cfg.KeyPrefix + ":ranking:" + board
}
