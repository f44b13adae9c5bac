package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "pet-wellness/docs"
	gw "pet-wellness/internal/adapters/auth/gateway"
	"pet-wellness/internal/config"
	"pet-wellness/internal/platform/logger"
	"pet-wellness/internal/ports/auth"
	"pet-wellness/internal/router"
	"pet-wellness/internal/scheduler"
)

// @title Pet Wellness API
// @version 1.0
// @description Registro de historial y motor de puntaje de bienestar de mascotas.
// @BasePath /
func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	lg := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    "pet-wellness",
	})

	// Verifier contra el auth hospedado, solo si está configurado.
	var verifier auth.AuthVerifier
	if cfg.Auth.BaseURL != "" && cfg.Auth.APIKey != "" {
		client, err := gw.NewClient(gw.Config{
			BaseURL: cfg.Auth.BaseURL,
			APIKey:  cfg.Auth.APIKey,
		})
		if err != nil {
			log.Fatalf("auth gateway: %v", err)
		}
		verifier = gw.NewVerifier(client)
		lg.Info("auth gateway enabled", map[string]any{"base_url": cfg.Auth.BaseURL})
	} else {
		lg.Warn("auth gateway not configured, running in dev mode (X-Debug-User-ID)", nil)
	}

	handler, svcs := router.NewRouter(router.Options{AuthVerifier: verifier})

	sched := scheduler.New(svcs.Pets, svcs.Wellness, lg, cfg.Snapshots.WindowDays)
	if err := sched.Register(cfg.Snapshots.Cron); err != nil {
		log.Fatalf("scheduler: %v", err)
	}
	sched.Start()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		lg.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	lg.Info("shutting down", nil)
	<-sched.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}
