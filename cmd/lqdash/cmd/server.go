package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/b-harvest/liquidation-dashboard-backend/server"
)

func ServerCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "run web server and background updater",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			logger, err := cfg.Log.Build()
			if err != nil {
				return err
			}
			defer logger.Sync()

			rp := newRedisPool(cfg.Redis.URL)
			defer rp.Close()

			s := server.New(cfg, newTransformer(cfg, logger), server.NewRedisCache(rp), logger)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			var wg sync.WaitGroup
			wg.Add(2)
			go func() {
				defer wg.Done()
				logger.Info("starting server", zap.String("addr", cfg.BindAddr))
				if err := s.Start(cfg.BindAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("failed to start server", zap.Error(err))
				}
			}()
			go func() {
				defer wg.Done()
				if err := s.RunBackgroundUpdater(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("background updater stopped", zap.Error(err))
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt)
			<-quit

			logger.Info("gracefully shutting down")
			cancel()
			if err := s.ShutdownWithTimeout(10 * time.Second); err != nil {
				logger.Fatal("failed to shutdown server", zap.Error(err))
			}
			wg.Wait()

			return nil
		},
	}
	return cmd
}
