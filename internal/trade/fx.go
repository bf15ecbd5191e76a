package trade

import (
	"github.com/serendigo/pos/internal/trade/repository"
	"github.com/serendigo/pos/internal/trade/service"
	"go.uber.org/fx"
)

var Module = fx.Module("trade.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
