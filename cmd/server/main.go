package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/youruser/hexcard/internal/api"
	"github.com/youruser/hexcard/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %s", err)
	}

	svc := api.NewService(cfg)

	// Warm the background cache (best-effort)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.LoadTimeout)
	if _, err := svc.Background(ctx); err != nil {
		log.Println("Warning: failed to load background at startup:", err)
	}
	cancel()

	r := gin.Default()
	r.MaxMultipartMemory = cfg.MaxUploadBytes
	api.RegisterRoutes(r, svc)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	killed := make(chan os.Signal, 1)
	signal.Notify(killed, os.Interrupt, syscall.SIGTERM)
	serverShutdown := make(chan struct{})

	go func() {
		sig := <-killed
		log.Printf("received signal to shutdown: %s", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("failed to shutdown server: %s", err)
		}
		close(serverShutdown)
	}()

	log.Println("starting server on http://localhost:" + cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}

	<-serverShutdown
	log.Printf("server has shut down... Exiting.")
}
