package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gursha-client/internal/backend"
	"gursha-client/internal/config"
	"gursha-client/internal/db"
	"gursha-client/internal/httpserver"
	"gursha-client/internal/payment"
	kvrepo "gursha-client/internal/repository/kv"
	cartsvc "gursha-client/internal/service/cart"
	catalogsvc "gursha-client/internal/service/catalog"
	checkoutsvc "gursha-client/internal/service/checkout"
	orderviewsvc "gursha-client/internal/service/orderview"
	ratingsvc "gursha-client/internal/service/rating"
	sessionsvc "gursha-client/internal/service/session"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	kvRepo := kvrepo.NewPostgres(dbpool)
	sessionService := sessionsvc.New(kvRepo)

	backendClient := backend.New(cfg.BackendBaseURL, cfg.BackendTimeout, sessionService, logger)
	paymentClient := payment.New(payment.Config{
		BaseURL:     cfg.PaymentBaseURL,
		SecretKey:   cfg.PaymentSecretKey,
		Currency:    cfg.PaymentCurrency,
		ReturnURL:   cfg.PaymentReturnURL,
		CallbackURL: cfg.PaymentCallback,
	})

	cartStore := cartsvc.NewStore(kvRepo, logger)
	catalogService := catalogsvc.New(backendClient, logger)
	ratingLedger := ratingsvc.NewLedger(backendClient, catalogService, logger)
	checkoutService := checkoutsvc.New(cartStore, backendClient, backendClient, paymentClient, logger)
	orderViews := orderviewsvc.New(backendClient, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Cart:     cartStore,
		Checkout: checkoutService,
		Catalog:  catalogService,
		Ratings:  ratingLedger,
		Orders:   orderViews,
		Session:  sessionService,
	}, cfg.UIOrigin)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
