package main

import (
	"os"

	"github.com/b-harvest/liquidation-dashboard-backend/cmd/lqdash/cmd"
)

func main() {
	if err := cmd.RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
