// lims-stub levanta el backend simulado del LIMS en memoria, para desarrollo local
// y pruebas manuales del cliente web.
//
// Uso: go run ./cmd/lims-stub
// Usuarios: admin/admin123, supervisor/super123, analista/analista123, operador/operador123.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urufarma/lims-web/internal/stubapi"
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

	store, err := stubapi.NewStore(stubapi.DefaultUsers, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("datos de ejemplo")
	}

	app := stubapi.New(stubapi.Config{
		AppName: "lims-stub",
		JWT: stubapi.JWTConfig{
			Secret:     cfg.Stub.JWTSecret,
			ExpMinutes: cfg.Stub.ExpMinutes,
			Issuer:     "lims-stub",
		},
		SwaggerFile: cfg.Stub.SwaggerDoc,
	}, store, log.Component("stub"))

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.Stub.Port)
	log.Info().Str("addr", addr).Msg("backend simulado escuchando en /api")

	go func() {
		if err := app.Listen(addr); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
}
