package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/b-harvest/liquidation-dashboard-backend/stats"
)

func AggregateCmd(configPath *string) *cobra.Command {
	var domain string
	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "run one aggregation pass and print the result as JSON",
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

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			t := newTransformer(cfg, logger)
			var res interface{}
			if domain != "" {
				src, err := stats.ParseSource(domain)
				if err != nil {
					return err
				}
				res, err = t.Transform(ctx, src)
				if err != nil {
					return fmt.Errorf("transform %s: %w", src, err)
				}
			} else {
				res, err = t.TransformAll(ctx)
				if err != nil {
					return fmt.Errorf("transform: %w", err)
				}
			}

			enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
	cmd.Flags().StringVarP(&domain, "domain", "d", "", "only aggregate this domain")
	return cmd
}
