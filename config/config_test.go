package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/b-harvest/liquidation-dashboard-backend/stats"
)

const testConfig = `
server:
  bind_addr: 127.0.0.1:9090
  sources: [main-regular, meme-margin]
  team_accounts: [bot.near]
  cache_update_interval: 30s
  manual_prices:
    - token_id: usdt.tether-token.near
      price: 1
  ranking_boards:
    - name: holders
      url: http://localhost/holders
      token_id: token.near
  indexer:
    endpoints:
      main-regular: http://localhost/liquidations
      meme-margin: http://localhost/meme/margin
    prices_url: http://localhost/prices
    metadata_url: http://localhost/token/%s
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Server.Validate())
	require.Equal(t, "127.0.0.1:9090", cfg.Server.BindAddr)
	require.Equal(t, 30*time.Second, cfg.Server.CacheUpdateInterval)
	require.Equal(t, DefaultServerConfig.CacheLoadTimeout, cfg.Server.CacheLoadTimeout)
	require.Equal(t, DefaultIndexerConfig.Burst, cfg.Server.Indexer.Burst)
	require.Equal(t, stats.Descending, cfg.Server.SortDirection())

	srcs, err := cfg.Server.SourceList()
	require.NoError(t, err)
	require.Equal(t, []stats.Source{stats.MainRegular, stats.MemeMargin}, srcs)
	require.Equal(t, 1.0, cfg.Server.ManualPricesMap()["usdt.tether-token.near"])

	b, ok := cfg.Server.RankingBoard("holders")
	require.True(t, ok)
	require.Equal(t, "token.near", b.TokenID)
}

func TestServerConfig_Validate(t *testing.T) {
	cfg := DefaultServerConfig
	cfg.Indexer.PricesURL = "http://localhost/prices"
	cfg.Indexer.MetadataURL = "http://localhost/token/%s"
	require.Error(t, cfg.Validate())

	cfg.Sources = []string{"main-regular"}
	cfg.Indexer.Endpoints = map[string]string{"main-regular": "http://localhost/liquidations"}
	require.NoError(t, cfg.Validate())

	cfg.Sources = []string{"unknown"}
	require.Error(t, cfg.Validate())
}
