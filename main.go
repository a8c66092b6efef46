package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/portico-di/portico/app"
	"github.com/portico-di/portico/framework/config"
	"github.com/portico-di/portico/framework/container"
)

func main() {
	cfg := config.Load() // reads .env automatically

	var opts []container.Option
	if cfg.App.Eager {
		opts = append(opts, container.WithEagerSingletons())
	}
	c := container.New(opts...)

	stats, err := c.Scan(app.Modules()...)
	if err != nil {
		log.Fatalf("scan failed: %v", err)
	}
	log.Printf("scanned %d modules: %d services, %d adapters in %s",
		stats.ModulesScanned, stats.ServicesRegistered, stats.AdaptersRegistered, stats.Duration)
	for _, warn := range stats.Warnings {
		log.Printf("scan warning: %s", warn)
	}

	profile := cfg.App.Profile

	// Fail fast: every binding selected, the whole graph validated and all
	// lifecycle hooks run before a single request is served.
	ctx := context.Background()
	if err := c.Start(ctx, profile); err != nil {
		log.Fatalf("container start failed: %v", err)
	}

	addr := ":" + cfg.App.Port
	fmt.Printf("🚀  %s running on http://localhost%s  [%s]\n", cfg.App.Name, addr, profile)

	srv := &http.Server{Addr: addr, Handler: app.NewKernel(c, profile)}
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Either way we fall through to the same shutdown path, so Dispose hooks
	// run even when the listener never came up.
	select {
	case err := <-serveErr:
		log.Printf("server error: %v", err)
	case <-quit:
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	if err := c.Teardown(shutdownCtx); err != nil {
		log.Printf("teardown: %v", err)
	}
}
