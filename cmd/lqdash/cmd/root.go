package cmd

import (
	"fmt"

	"github.com/gomodule/redigo/redis"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/b-harvest/liquidation-dashboard-backend/config"
	"github.com/b-harvest/liquidation-dashboard-backend/service/indexer"
	"github.com/b-harvest/liquidation-dashboard-backend/service/metadata"
	"github.com/b-harvest/liquidation-dashboard-backend/service/price"
	"github.com/b-harvest/liquidation-dashboard-backend/transformer"
)

func RootCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "lqdash",
		Short: "liquidation dashboard backend",
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yml", "config file path")
	cmd.AddCommand(ServerCmd(&configPath))
	cmd.AddCommand(AggregateCmd(&configPath))
	return cmd
}

func loadConfig(path string) (config.ServerConfig, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.ServerConfig{}, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Server.Validate(); err != nil {
		return config.ServerConfig{}, fmt.Errorf("validate server config: %w", err)
	}
	return cfg.Server, nil
}

func newTransformer(cfg config.ServerConfig, logger *zap.Logger) *transformer.Transformer {
	ic := indexer.NewClient(cfg.Indexer)
	r := metadata.NewResolver(ic, cfg.Indexer.MetadataConcurrency, logger)
	r.SetFetchTimeout(cfg.Indexer.Timeout)
	r.Preload(cfg.TokenMetadataList()...)
	ps := price.NewService(ic, cfg.ManualPricesMap())
	return transformer.New(cfg, ic, r, ps, logger)
}

func newRedisPool(url string) *redis.Pool {
	return &redis.Pool{
		MaxIdle: 4,
		Dial: func() (redis.Conn, error) {
			return redis.DialURL(url)
		},
	}
}
