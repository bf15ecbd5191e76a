package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	catalogdomain "github.com/serendigo/pos/internal/catalog/domain"
	"github.com/serendigo/pos/internal/config"
	obsmetrics "github.com/serendigo/pos/internal/observability/metrics"
	"github.com/serendigo/pos/internal/scan"
	tradedomain "github.com/serendigo/pos/internal/trade/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterRoutes() }),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, log *zap.Logger, registry *prometheus.Registry, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(corsMiddleware(cfg))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	return r
}

func corsMiddleware(cfg config.Config) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
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

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	db              *gorm.DB
	log             *zap.Logger
	tradeSvc        tradedomain.Service
	catalogSvc      catalogdomain.Service
	decoder         *scan.Decoder
	purchaseMetrics *obsmetrics.PurchaseMetrics
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	DB              *gorm.DB
	Log             *zap.Logger
	TradeSvc        tradedomain.Service
	CatalogSvc      catalogdomain.Service
	Decoder         *scan.Decoder
	PurchaseMetrics *obsmetrics.PurchaseMetrics `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		db:              p.DB,
		log:             p.Log.Named("server"),
		tradeSvc:        p.TradeSvc,
		catalogSvc:      p.CatalogSvc,
		decoder:         p.Decoder,
		purchaseMetrics: p.PurchaseMetrics,
	}
}

func (s *Server) RegisterRoutes() {
	s.engine.GET("/", s.RootIndex)

	api := s.engine.Group("/api")
	api.GET("", s.APIRoot)
	api.GET("/health", s.APIHealth)

	api.GET("/products", s.GetProducts)
	api.POST("/products/bulk", s.BulkUpsertProducts)
	if s.cfg.DevEndpoints {
		api.POST("/products/dev-seed", s.DevSeedProducts)
	}

	api.GET("/purchase/ping", s.PurchasePing)
	api.POST("/purchase", s.CreatePurchase)

	api.POST("/scan", s.Scan)
}

func (s *Server) RootIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":    "Backend is running.",
		"api_health": "/api/health",
		"api_root":   "/api",
		"name":       s.cfg.AppName,
		"version":    s.cfg.AppVersion,
	})
}

func (s *Server) APIRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"name": s.cfg.AppName, "version": s.cfg.AppVersion})
}

func (s *Server) APIHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
