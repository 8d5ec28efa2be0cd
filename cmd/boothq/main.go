package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"boothq/internal/certificate"
	"boothq/internal/config"
	"boothq/internal/httpapi"
	"boothq/internal/notify"
	"boothq/internal/queue"
	"boothq/internal/store/postgres"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("env file: %v", err)
	}
	cfg := config.Load()

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	st := postgres.NewStore(pool)
	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 30*time.Second)
	if err := st.Bootstrap(bootCtx); err != nil {
		cancelBoot()
		log.Fatalf("schema bootstrap: %v", err)
	}
	cancelBoot()

	sender := notify.NewSender(notify.Config{
		Kind:       cfg.SMSProvider,
		APIKey:     cfg.SolapiAPIKey,
		APISecret:  cfg.SolapiSecret,
		FromNumber: cfg.SolapiSender,
	})
	queueEngine := queue.NewEngine(st, sender)
	certEngine := certificate.NewEngine(st, cfg.CertPrefix, cfg.CertYear)

	handler := httpapi.NewHandler(st, queueEngine, certEngine, httpapi.Options{
		AdminPassword: cfg.AdminPassword,
		BaseURL:       cfg.BaseURL,
		EventName:     cfg.EventName,
		SealPaths:     []string{cfg.SealPath, cfg.DefaultSeal},
		UploadDir:     cfg.UploadDir,
		SessionTTL:    cfg.SessionTTL,
	})
	limiter := httpapi.NewRateLimiter(httpapi.RateLimitConfig{
		PerMinute: cfg.RateLimitPerMinute,
		Burst:     cfg.RateLimitBurst,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      limiter.Middleware(httpapi.LoggingMiddleware(handler.Routes())),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("boothq listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
