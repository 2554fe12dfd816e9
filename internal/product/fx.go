package product

import (
	"github.com/dripstore/catalog/internal/product/repository"
	"github.com/dripstore/catalog/internal/product/service"
	"go.uber.org/fx"
)

var Module = fx.Module("product.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
