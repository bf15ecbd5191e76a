package catalog

import (
	"github.com/serendigo/pos/internal/catalog/domain"
	"github.com/serendigo/pos/internal/catalog/repository"
	"github.com/serendigo/pos/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
	fx.Provide(func(s domain.Service) domain.Lookup { return s }),
)
