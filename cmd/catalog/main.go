package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/dripstore/catalog/internal/auth/token"
	"github.com/dripstore/catalog/internal/category"
	"github.com/dripstore/catalog/internal/config"
	"github.com/dripstore/catalog/internal/media"
	"github.com/dripstore/catalog/internal/migration"
	"github.com/dripstore/catalog/internal/product"
	"github.com/dripstore/catalog/internal/seed"
	"github.com/dripstore/catalog/internal/server"
	"github.com/dripstore/catalog/internal/user"
	"github.com/dripstore/catalog/pkg/db"
	"github.com/dripstore/catalog/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		seed.Module,

		// Shared services
		token.Module,
		media.Module,

		// Functional domains
		user.Module,
		category.Module,
		product.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
