package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/urufarma/lims-web/internal/application/auth"
	"github.com/urufarma/lims-web/internal/application/validation"
	"github.com/urufarma/lims-web/internal/domain"
	"github.com/urufarma/lims-web/internal/infrastructure/limsapi"
)

// passwordEnv alternativa al flag --password para no dejarla en el historial del shell.
const passwordEnv = "LIMS_PASSWORD"

func newLoginCommand(open opener) *cobra.Command {
	var form validation.LoginForm
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Inicia sesión y guarda el token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if form.Password == "" {
				form.Password = os.Getenv(passwordEnv)
			}
			if errs := validation.Validate(&form); !errs.Empty() {
				return errs
			}
			rt := open(cmd)
			sess, err := auth.NewAuthUseCase(rt.svc.Auth).Login(cmd.Context(), rt.store, form.Payload())
			if errors.Is(err, domain.ErrInvalidToken) {
				return errors.New(auth.MsgLoginFailed)
			}
			if err != nil {
				return errors.New(limsapi.UserMessage(err, auth.MsgLoginFailed))
			}
			fmt.Fprintf(rt.out, "Sesión iniciada como %s (%s)\n", sess.Username, sess.PrimaryRole())
			return nil
		},
	}
	cmd.Flags().StringVarP(&form.Username, "username", "u", "", "usuario")
	cmd.Flags().StringVarP(&form.Password, "password", "p", "", "contraseña (o "+passwordEnv+")")
	return cmd
}

func newLogoutCommand(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Borra el token guardado",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt := open(cmd)
			rt.store.Logout()
			fmt.Fprintln(rt.out, "Sesión cerrada")
			return nil
		},
	}
}

func newWhoamiCommand(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Muestra el usuario y los roles de la sesión",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt := open(cmd)
			if err := rt.requireSession(); err != nil {
				return err
			}
			sess := rt.store.Current()
			roles := make([]string, len(sess.Roles))
			for i, r := range sess.Roles {
				roles[i] = string(r)
			}
			fmt.Fprintf(rt.out, "usuario: %s\nid: %s\nroles: %s\n", sess.Username, sess.SubjectID, strings.Join(roles, ", "))
			if !sess.ExpiresAt.IsZero() {
				fmt.Fprintf(rt.out, "vence: %s\n", sess.ExpiresAt.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}
