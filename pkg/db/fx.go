package db

import (
	"github.com/serendigo/pos/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func provide(cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	conn, err := Open(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	log.Info("database connected", zap.String("url", Redact(cfg.DatabaseURL)))
	return conn, nil
}

// Module provides the primary *gorm.DB handle.
var Module = fx.Module("db",
	fx.Provide(provide),
)
