package main

import (
	"context"
	"net/http"
	"time"

	"pet-clinic-bookings/internal/adapters/auth/hstoken"
	"pet-clinic-bookings/internal/adapters/storage/postgres"
	"pet-clinic-bookings/internal/config"
	"pet-clinic-bookings/internal/platform/logger"
	"pet-clinic-bookings/internal/router"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// zap todavía no existe si la config falla; panic simple y claro.
		panic("config: " + err.Error())
	}

	log := logger.New(cfg.Environment)
	defer func() { _ = log.Sync() }()

	signer, err := hstoken.New([]byte(cfg.JWTSecret))
	if err != nil {
		log.Fatal("token signer", zap.Error(err))
	}

	db, err := postgres.Open(cfg.DBDSN)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatal("migrate database", zap.Error(err))
	}

	r := router.NewRouter(router.Options{
		Verifier: signer,
		Issuer:   signer,
		Logger:   log,
		DB:       db,
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", zap.String("addr", cfg.Addr), zap.String("env", cfg.Environment))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("server error", zap.Error(err))
	}
}
