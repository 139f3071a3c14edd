// Package cli implementa limsctl, el cliente de línea de comandos del LIMS.
// Comparte con el cliente web el SessionStore, el cliente del API y la trazabilidad;
// el token vive en un archivo en lugar de una cookie.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/urufarma/lims-web/internal/application/auth"
	"github.com/urufarma/lims-web/internal/domain"
	"github.com/urufarma/lims-web/internal/infrastructure/limsapi"
	"github.com/urufarma/lims-web/internal/infrastructure/storage"
	"github.com/urufarma/lims-web/pkg/logger"
)

// Options valores por defecto de los flags globales (normalmente desde config).
type Options struct {
	BaseURL     string
	SessionFile string
	Timeout     time.Duration
	Log         *logger.Logger
	Now         auth.Clock
}

// runtime dependencias armadas al ejecutar un comando.
type runtime struct {
	store *auth.SessionStore
	svc   *limsapi.Services
	out   io.Writer
}

// NewRootCmd crea el comando raíz con todos los subcomandos.
func NewRootCmd(opts Options) *cobra.Command {
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}

	root := &cobra.Command{
		Use:           "limsctl",
		Short:         "Cliente de línea de comandos del LIMS",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.BaseURL, "api", opts.BaseURL, "URL base del API (incluye /api)")
	root.PersistentFlags().StringVar(&opts.SessionFile, "session-file", opts.SessionFile, "archivo donde se guarda el token")

	open := func(cmd *cobra.Command) *runtime {
		store := auth.NewSessionStore(storage.NewFileTokenStorage(opts.SessionFile), opts.Now)
		store.Restore()
		client := limsapi.NewClient(opts.BaseURL, opts.Timeout, opts.Log)
		return &runtime{store: store, svc: limsapi.NewServices(client.WithToken(store)), out: cmd.OutOrStdout()}
	}

	root.AddCommand(
		newLoginCommand(open),
		newLogoutCommand(open),
		newWhoamiCommand(open),
		newOrdersCommand(open),
		newTraceCommand(open),
		newChangeStateCommand(open),
	)
	return root
}

type opener func(cmd *cobra.Command) *runtime

// ErrNoSession no hay token guardado o ya venció.
var ErrNoSession = errors.New("no hay sesión activa: ejecutá limsctl login")

// requireSession corta el comando si no hay sesión.
func (r *runtime) requireSession() error {
	if r.store.Current() == nil {
		return ErrNoSession
	}
	return nil
}

// backendError traduce el error del API. Un 401 descarta el token local.
func (r *runtime) backendError(err error, fallback string) error {
	if errors.Is(err, domain.ErrUnauthorized) {
		r.store.Logout()
		return fmt.Errorf("la sesión expiró: %w", ErrNoSession)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: el backend no respondió a tiempo", fallback)
	}
	return fmt.Errorf("%s: %s", fallback, limsapi.UserMessage(err, err.Error()))
}
