package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urufarma/lims-web/internal/infrastructure/limsapi"
	infrapdf "github.com/urufarma/lims-web/internal/infrastructure/pdf"
	"github.com/urufarma/lims-web/internal/infrastructure/storage"
	httpRouter "github.com/urufarma/lims-web/internal/interfaces/http"
	"github.com/urufarma/lims-web/pkg/config"
	"github.com/urufarma/lims-web/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Backend.BaseURL).
		Msg("iniciando cliente web")

	client := limsapi.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, log)

	// PDF: reporte de trazabilidad de una orden de manufactura
	reports := infrapdf.NewTraceReportGenerator(cfg.App.Name)

	app := httpRouter.NewApp(httpRouter.RouterDeps{
		AppName: cfg.App.Name,
		Client:  client,
		Cookie: storage.CookieOptions{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
		},
		Reports: reports,
		Log:     log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
