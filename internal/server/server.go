package server

import (
	"context"
	"net/http"
	"time"

	"github.com/dripstore/catalog/internal/auth/token"
	categorydomain "github.com/dripstore/catalog/internal/category/domain"
	"github.com/dripstore/catalog/internal/config"
	"github.com/dripstore/catalog/internal/observability"
	productdomain "github.com/dripstore/catalog/internal/product/domain"
	userdomain "github.com/dripstore/catalog/internal/user/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	observability.Module,
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterRoutes() }),
	fx.Invoke(RunHTTP),
)

func NewEngine(logger *zap.Logger, metrics *observability.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(logger))
	r.Use(observability.GinMiddleware(metrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	issuer      *token.Issuer
	userSvc     userdomain.Service
	categorySvc categorydomain.Service
	productSvc  productdomain.Service
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	Issuer      *token.Issuer
	UserSvc     userdomain.Service
	CategorySvc categorydomain.Service
	ProductSvc  productdomain.Service
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		issuer:      p.Issuer,
		userSvc:     p.UserSvc,
		categorySvc: p.CategorySvc,
		productSvc:  p.ProductSvc,
	}
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) RegisterRoutes() {
	s.engine.Static("/"+s.cfg.MediaDir, s.cfg.MediaDir)

	v1 := s.engine.Group("/v1")

	usuario := v1.Group("/usuario")
	{
		usuario.POST("/token", s.GenerateToken)
		usuario.GET("/:id", s.GetUserByID)
		usuario.POST("", s.CreateUser)
		usuario.PUT("/:id", s.AuthRequired(), s.UpdateUser)
		usuario.DELETE("/:id", s.AuthRequired(), s.DeleteUser)
	}

	categoria := v1.Group("/categoria")
	{
		categoria.GET("/pesquisa", s.SearchCategories)
		categoria.GET("/:id", s.GetCategoryByID)
		categoria.POST("", s.AuthRequired(), s.CreateCategory)
		categoria.PUT("/:id", s.AuthRequired(), s.UpdateCategory)
		categoria.DELETE("/:id", s.AuthRequired(), s.DeleteCategory)
	}

	produto := v1.Group("/produto")
	{
		produto.GET("/pesquisa", s.SearchProducts)
		produto.GET("/:id", s.GetProductByID)
		produto.POST("", s.AuthRequired(), s.CreateProduct)
		produto.PUT("/:id", s.AuthRequired(), s.UpdateProduct)
		produto.DELETE("/:id", s.AuthRequired(), s.DeleteProduct)
	}
}

func RunHTTP(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, logger *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("http server listening", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal("http server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
