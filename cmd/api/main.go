// backend/cmd/api/main.go
package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appcfg "verseone/internal/infra/config"
	"verseone/internal/platform/di"
)

func main() {
	ctx := context.Background()
	cfg := appcfg.Load()

	// ─────────────────────────────────────────────────────────────
	// Log output: LOG_FILE があればファイル + stdout の両方に出す
	// ─────────────────────────────────────────────────────────────
	if cfg.LogFile != "" {
		if f, err := os.OpenFile(cfg.LogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644); err == nil {
			defer f.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, f))
			log.Printf("[boot] log output = stdout + %s", cfg.LogFile)
		} else {
			log.Printf("[boot] WARN: could not open %s: %v", cfg.LogFile, err)
		}
	}

	// ─────────────────────────────────────────────────────────────
	// Lightweight healthz first; keep it even when DI fails
	// ─────────────────────────────────────────────────────────────
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var cont *di.Container
	if c, err := di.Build(ctx, cfg); err != nil {
		log.Printf("[boot] WARN: di init failed: %v (serving /healthz only)", err)
	} else {
		cont = c
		defer cont.Close()
		mux.Handle("/", cont.Router)

		// 空のローカルストアにはデフォルト商品を入れる
		if cfg.SeedDefaultProducts {
			if seeded, err := cont.CatalogUC.EnsureDefaults(ctx); err != nil {
				log.Printf("[boot] WARN: seed default products failed: %v", err)
			} else if seeded {
				log.Printf("[boot] default products seeded")
			}
		}

		// migrate → refresh（products / orders を並列）
		if cfg.SyncOnBoot {
			go func() {
				syncCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
				defer cancel()
				p, o, err := cont.SyncUC.Run(syncCtx)
				if err != nil {
					log.Printf("[boot] WARN: sync failed: %v", err)
					return
				}
				log.Printf("[boot] sync done products=%+v orders=%+v", p, o)
			}()
		}
	}

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ─────────────────────────────────────────────────────────────
	// Graceful shutdown for Cloud Run
	// ─────────────────────────────────────────────────────────────
	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		sig := <-c
		log.Printf("[boot] received signal: %v; shutting down...", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[boot] server shutdown error: %v", err)
		}
		close(idleConnsClosed)
	}()

	log.Printf("[boot] listening on :%s", port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("[boot] server error: %v", err)
	}

	<-idleConnsClosed
	log.Printf("[boot] server stopped")
}
