package main

import (
	"github.com/serendigo/pos/internal/catalog"
	"github.com/serendigo/pos/internal/config"
	"github.com/serendigo/pos/internal/logger"
	"github.com/serendigo/pos/internal/migration"
	"github.com/serendigo/pos/internal/observability/metrics"
	"github.com/serendigo/pos/internal/scan"
	"github.com/serendigo/pos/internal/server"
	"github.com/serendigo/pos/internal/trade"
	"github.com/serendigo/pos/pkg/db"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		config.Module,
		logger.Module,
		db.Module,
		migration.Module,
		metrics.Module,
		catalog.Module,
		trade.Module,
		fx.Provide(scan.NewDecoder),
		server.Module,
	).Run()
}
