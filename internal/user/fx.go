package user

import (
	"github.com/dripstore/catalog/internal/user/repository"
	"github.com/dripstore/catalog/internal/user/service"
	"go.uber.org/fx"
)

var Module = fx.Module("user.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
