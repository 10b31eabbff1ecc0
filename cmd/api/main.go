package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sprintindex/notify-api/config"
	"github.com/sprintindex/notify-api/internal/email"
	authHandler "github.com/sprintindex/notify-api/internal/handler/auth"
	promHandler "github.com/sprintindex/notify-api/internal/handler/prometheus"
	"github.com/sprintindex/notify-api/internal/router"
	"github.com/sprintindex/notify-api/pkg/logger"
	"github.com/sprintindex/notify-api/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(nil)

	promH := promHandler.New()
	m := metrics.New("notify_api")
	m.Register(promH.Registry())

	emailSvc := email.NewSendGridService(email.SendGridConfig{
		APIKey:       cfg.SendGrid.APIKey,
		FromEmail:    cfg.SendGrid.FromEmail,
		FromName:     cfg.SendGrid.FromName,
		ReplyToEmail: cfg.SendGrid.ReplyToEmail,
		ReplyToName:  cfg.SendGrid.ReplyToName,
	}, log, m)

	authH := authHandler.NewHandler(emailSvc, log)

	r := router.NewRouter(authH, promH)
	r.Setup()

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("api server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "api server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(err, "graceful shutdown failed")
	}
}
