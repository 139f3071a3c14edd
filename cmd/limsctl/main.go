package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urufarma/lims-web/internal/cli"
	"github.com/urufarma/lims-web/pkg/config"
	"github.com/urufarma/lims-web/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}

	// Los logs del cliente van a stderr para no mezclarse con la salida de los comandos.
	log := logger.New(logger.Config{Env: "development", Level: cfg.App.LogLevel, Output: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(cli.Options{
		BaseURL:     cfg.Backend.BaseURL,
		SessionFile: cfg.Session.File,
		Timeout:     cfg.Backend.Timeout,
		Log:         log,
	})
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
