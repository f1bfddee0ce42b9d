package server

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/b-harvest/liquidation-dashboard-backend/config"
	"github.com/b-harvest/liquidation-dashboard-backend/transformer"
)

type Server struct {
	*echo.Echo
	cfg    config.ServerConfig
	tr     *transformer.Transformer
	cache  Cache
	logger *zap.Logger
}

func New(cfg config.ServerConfig, tr *transformer.Transformer, cache Cache, logger *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.Debug
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	s := &Server{e, cfg, tr, cache, logger}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.GET("/status", s.GetStatus)
	s.GET("/stats/:domain", s.GetStats)
	s.GET("/liquidations/:domain", s.GetLiquidations)
	s.GET("/rankings/:board", s.GetRanking)
	s.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

func (s *Server) ShutdownWithTimeout(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.Shutdown(ctx)
}
