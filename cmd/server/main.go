package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gadme-be/internal/address"
	"gadme-be/internal/api"
	"gadme-be/internal/cart"
	"gadme-be/internal/config"
	"gadme-be/internal/db"
	"gadme-be/internal/logger"
	"gadme-be/internal/middleware"
	"gadme-be/internal/order"
	"gadme-be/internal/product"
	"gadme-be/internal/user"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	sweepInterval   = time.Minute
	shutdownTimeout = 10 * time.Second
)

var initDBFunc = db.InitDB

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.L().Fatal("server exited", zap.Error(err))
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	limiter := middleware.NewRateLimiter()
	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           newServer(cfg, database, limiter),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return serve(ctx, srv, limiter)
}

func newServer(cfg *config.Config, database *sql.DB, limiter *middleware.RateLimiter) http.Handler {
	userRepo := user.NewRepository(database)
	productRepo := product.NewRepository(database)

	cartSvc := cart.NewService(cart.NewRepository(database), productRepo, userRepo)
	addressSvc := address.NewService(address.NewRepository(database))
	orderSvc := order.NewService(
		order.NewRepository(database, userRepo, cfg.TxMaxRetries),
		cartSvc,
		addressSvc,
		order.Pricing{
			Currency:     cfg.Currency,
			ShippingFee:  cfg.ShippingFee,
			FlatDiscount: cfg.FlatDiscount,
		},
	)

	return api.NewRouter(api.NewHandler(cartSvc, orderSvc, addressSvc), api.RouterConfig{
		JWTSecret:   []byte(cfg.JWTSecret),
		CORSOrigins: cfg.CORSOrigins,
		Limiter:     limiter,
	})
}

// serve runs the HTTP server and the limiter sweeper until ctx is done,
// then drains in-flight requests.
func serve(ctx context.Context, srv *http.Server, limiter *middleware.RateLimiter) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		limiter.Run(gctx, sweepInterval)
		return nil
	})

	g.Go(func() error {
		logger.L().Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.L().Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
