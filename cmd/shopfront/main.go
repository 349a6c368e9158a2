package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	authrest "github.com/dwikikusuma/shopfront/internal/auth/infra/rest"
	catalogrest "github.com/dwikikusuma/shopfront/internal/catalog/infra/rest"
	orderrest "github.com/dwikikusuma/shopfront/internal/order/infra/rest"
	"github.com/dwikikusuma/shopfront/internal/shop"
	"github.com/dwikikusuma/shopfront/internal/store"
	"github.com/dwikikusuma/shopfront/pkg/config"
	"github.com/dwikikusuma/shopfront/pkg/logger"
	"github.com/dwikikusuma/shopfront/pkg/metrics"
	"github.com/dwikikusuma/shopfront/pkg/rest"
	"github.com/dwikikusuma/shopfront/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service:   "shopfront",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	apiClient := rest.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, log)
	authClient := rest.NewClient(cfg.AuthBaseURL, cfg.HTTPTimeout, log)

	svc := shop.New(shop.Deps{
		AuthGateway:    authrest.NewGateway(authClient, cfg.APIKey),
		CatalogGateway: catalogrest.NewGateway(apiClient),
		OrderGateway:   orderrest.NewGateway(apiClient),
		Log:            log,
		StoreOptions:   []store.Option{store.WithMetrics(metrics.NewStoreMetrics("store"))},
	})

	if err := svc.Refresh(ctx); err != nil {
		log.Warn("initial refresh failed", slog.Any("err", err))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/state", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(stateView(svc.Store.State())); err != nil {
			log.Error("encode state", slog.Any("err", err))
		}
	})

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	wg.Wait()
	log.Info("bye")
}

type view struct {
	SignedIn  bool   `json:"signedIn"`
	UserID    string `json:"userId,omitempty"`
	Products  int    `json:"products"`
	Owned     int    `json:"ownedProducts"`
	CartLines int    `json:"cartLines"`
	CartTotal string `json:"cartTotal"`
	Orders    int    `json:"orders"`
}

// stateView is a sanitized snapshot: counts and totals, never the token.
func stateView(st store.State) view {
	return view{
		SignedIn:  st.Auth.SignedIn(),
		UserID:    st.Auth.UserID(),
		Products:  len(st.Catalog.Products),
		Owned:     len(st.Catalog.Owned()),
		CartLines: len(st.Cart.Items),
		CartTotal: st.Cart.Total().String(),
		Orders:    len(st.Orders.Orders),
	}
}
