package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SKTA1805/Smart-trolley/internal/cart"
	catalogsqlite "github.com/SKTA1805/Smart-trolley/internal/catalog/sqlite"
	"github.com/SKTA1805/Smart-trolley/internal/httpx"
	"github.com/SKTA1805/Smart-trolley/internal/notify"
	"github.com/SKTA1805/Smart-trolley/internal/payment"
	"github.com/SKTA1805/Smart-trolley/internal/pkg/telemetry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	telemetry.InitLogger()

	shutdown, err := telemetry.SetupTracer(ctx, getEnv("OTEL_SERVICE_NAME", "smart-trolley"))
	if err != nil {
		slog.Error("failed to initialise tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	catalogStore, err := catalogsqlite.Open(getEnv("CATALOG_DB", "./data/catalog.db"))
	if err != nil {
		slog.Error("failed to open catalog database", "error", err)
		os.Exit(1)
	}
	defer catalogStore.Close()

	products, err := catalogStore.Load(ctx)
	if err != nil {
		slog.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}
	slog.Info("catalog loaded", "products", products.Len())

	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	if keySecret == "" {
		slog.Error("RAZORPAY_KEY_SECRET is required")
		os.Exit(1)
	}

	hub := notify.NewHub()
	store := cart.New(products, hub)
	verifier := payment.NewVerifier(keySecret)
	orders := payment.NewRazorpayClient(os.Getenv("RAZORPAY_KEY_ID"), keySecret)

	handler := httpx.NewHandler(store, hub, verifier, orders)
	router := httpx.NewRouter(handler)

	addr := ":" + getEnv("PORT", "4000")
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("checkout server running", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
