// Package httpserver manages server creation and api routing.
package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/go-petr/bank-admin/internal/domain"
	"github.com/go-petr/bank-admin/internal/middleware"
	"github.com/go-petr/bank-admin/internal/statsdelivery"
	"github.com/go-petr/bank-admin/internal/statsrepo"
	"github.com/go-petr/bank-admin/internal/statsservice"
	"github.com/go-petr/bank-admin/internal/transactiondelivery"
	"github.com/go-petr/bank-admin/internal/transactionrepo"
	"github.com/go-petr/bank-admin/internal/transactionservice"
	"github.com/go-petr/bank-admin/internal/userdelivery"
	"github.com/go-petr/bank-admin/internal/userrepo"
	"github.com/go-petr/bank-admin/internal/userservice"
	"github.com/go-petr/bank-admin/pkg/cachepkg"
	"github.com/go-petr/bank-admin/pkg/configpkg"
	"github.com/go-petr/bank-admin/pkg/tokenpkg"
)

const redisPingTimeout = 3 * time.Second

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sqlx.DB
	Redis  *redis.Client // nil when caching is off
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// Close releases the redis connection, if any.
func (s *Server) Close() error {
	if s.Redis == nil {
		return nil
	}

	return s.Redis.Close()
}

// New creates Server type with instantiated domains and routes.
//
// Dashboards are cached in redis when REDIS_ADDR is set and redis answers.
// Otherwise they are computed on every request.
func New(conn *sqlx.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	loc, err := config.Location()
	if err != nil {
		return nil, fmt.Errorf("cannot load dashboard timezone: %w", err)
	}

	tokenMaker, err := tokenpkg.New(config.TokenType, config.TokenSymmetricKey)
	if err != nil {
		return nil, fmt.Errorf("cannot create token maker: %w", err)
	}

	server := &Server{
		DB:     conn,
		Config: config,
	}

	var cache statsservice.Cache

	if config.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		defer cancel()

		redisCache, client, err := cachepkg.NewRedisCache(ctx, config.RedisAddr, config.RedisPassword, config.RedisDB)
		if err != nil {
			logger.Warn().Err(err).Str("addr", config.RedisAddr).Msg("redis unavailable, dashboard cache disabled")
		} else {
			cache = redisCache
			server.Redis = client
		}
	}

	userRepo := userrepo.NewRepoPGS(conn)
	depositRepo := transactionrepo.NewDepositRepo(conn)
	withdrawRepo := transactionrepo.NewWithdrawRepo(conn)
	statsRepo := statsrepo.NewRepoPGS(conn)

	userService := userservice.New(userRepo)
	depositService := transactionservice.New(domain.Deposit, depositRepo)
	withdrawService := transactionservice.New(domain.Withdraw, withdrawRepo)
	statsService := statsservice.New(statsRepo, cache, statsservice.Config{
		Location: loc,
		Locale:   statsservice.NewLocale(config.DashboardLocale),
		Asset:    config.DashboardAsset,
		CacheTTL: config.StatsCacheTTL,
	})

	userHandler := userdelivery.NewHandler(userService, tokenMaker, config.AccessTokenDuration)
	depositHandler := transactiondelivery.NewHandler(depositService, depositService.Kind())
	withdrawHandler := transactiondelivery.NewHandler(withdrawService, withdrawService.Kind())
	statsHandler := statsdelivery.NewHandler(statsService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	api := engine.Group("/api/v1")

	api.POST("/auth/login", userHandler.Login)

	authRoutes := api.Group("/").Use(middleware.AuthMiddleware(tokenMaker))

	authRoutes.GET("/auth/me", userHandler.Me)

	adminRoutes := api.Group("/").Use(
		middleware.AuthMiddleware(tokenMaker),
		middleware.RequireRole(string(domain.RoleAdmin)),
	)

	adminRoutes.GET("/users", userHandler.List)
	adminRoutes.GET("/deposits", depositHandler.List)
	adminRoutes.GET("/withdraws", withdrawHandler.List)
	adminRoutes.GET("/stats/dashboard", statsHandler.Dashboard)

	server.Engine = engine

	return server, nil
}
