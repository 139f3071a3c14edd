package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/urufarma/lims-web/internal/application/dto"
	"github.com/urufarma/lims-web/internal/application/manufacturing"
	"github.com/urufarma/lims-web/internal/application/validation"
	"github.com/urufarma/lims-web/internal/infrastructure/pdf"
	"github.com/urufarma/lims-web/pkg/textutil"
)

func newOrdersCommand(open opener) *cobra.Command {
	var (
		q    string
		page dto.PageRequest
	)
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Lista órdenes de manufactura",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt := open(cmd)
			if err := rt.requireSession(); err != nil {
				return err
			}
			page.DefaultPage()
			orders, err := rt.svc.Manufacturing.ListOrders(cmd.Context(), page)
			if err != nil {
				return rt.backendError(err, "No se pudieron cargar las órdenes")
			}
			tw := tabwriter.NewWriter(rt.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCÓDIGO\tLOTE\tFECHA\tCANTIDAD")
			n := 0
			for _, o := range orders {
				if !textutil.MatchAny(q, o.Code, o.BatchCode) {
					continue
				}
				n++
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s %s\n", o.ID, o.Code, o.BatchCode, o.Date, o.Quantity.String(), o.Unit)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(rt.out, "No se encontraron órdenes.")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&q, "query", "q", "", "filtra por código o lote")
	cmd.Flags().IntVar(&page.Skip, "skip", 0, "registros a saltear")
	cmd.Flags().IntVar(&page.Limit, "limit", 100, "máximo de registros")
	return cmd
}

func newTraceCommand(open opener) *cobra.Command {
	var pdfPath string
	cmd := &cobra.Command{
		Use:   "trace <orden_id>",
		Short: "Muestra procesos e historial de estados de una orden",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID, err := parseID(args[0], "orden")
			if err != nil {
				return err
			}
			rt := open(cmd)
			if err := rt.requireSession(); err != nil {
				return err
			}
			ctx := cmd.Context()
			uc := manufacturing.NewTraceabilityUseCase(rt.svc.Manufacturing)
			catalog, err := uc.LoadCatalog(ctx)
			if err != nil {
				return rt.backendError(err, "No se pudo cargar el catálogo de estados")
			}
			order, err := uc.FindOrder(ctx, orderID)
			if err != nil {
				return rt.backendError(err, "No se pudo cargar la orden")
			}
			trace, err := uc.ExpandOrder(ctx, catalog, orderID, order)
			if err != nil {
				return rt.backendError(err, "No se pudo cargar la trazabilidad")
			}

			if order != nil {
				fmt.Fprintf(rt.out, "Orden %s lote %s (%s %s)\n", order.Code, order.BatchCode, order.Quantity.String(), order.Unit)
			}
			if len(trace.Processes) == 0 {
				fmt.Fprintln(rt.out, "La orden no tiene procesos.")
			}
			for _, p := range trace.Processes {
				fmt.Fprintf(rt.out, "Proceso #%d [%s] inicio %s fin %s\n", p.Process.ID, p.StateLabel, p.Process.StartTime.Display(), p.Process.EndTime.Display())
				if !p.Consistent {
					fmt.Fprintln(rt.out, "  ! el historial no coincide con el estado actual")
				}
				for _, h := range p.History {
					fmt.Fprintf(rt.out, "  %s  %-14s usuario %d\n", h.Timestamp.Display(), h.StateLabel, h.ChangedByID)
				}
			}

			if pdfPath == "" {
				return nil
			}
			raw, err := pdf.NewTraceReportGenerator("LIMS").Generate(ctx, trace)
			if err != nil {
				return fmt.Errorf("generar PDF: %w", err)
			}
			if err := os.WriteFile(pdfPath, raw, 0o644); err != nil {
				return fmt.Errorf("guardar PDF: %w", err)
			}
			fmt.Fprintf(rt.out, "Reporte guardado en %s\n", pdfPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "guarda además el reporte PDF en este archivo")
	return cmd
}

func newChangeStateCommand(open opener) *cobra.Command {
	var userID string
	cmd := &cobra.Command{
		Use:   "change-state <proceso_id> <estado_id>",
		Short: "Cambia el estado de un proceso de manufactura",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			processID, err := parseID(args[0], "proceso")
			if err != nil {
				return err
			}
			rt := open(cmd)
			if err := rt.requireSession(); err != nil {
				return err
			}
			if userID == "" {
				userID = rt.store.Current().SubjectID
			}
			form := &validation.StateChangeForm{NewStateID: args[1], UserID: userID}

			uc := manufacturing.NewTraceabilityUseCase(rt.svc.Manufacturing)
			p, err := uc.ChangeState(cmd.Context(), processID, form)
			var ferrs validation.FieldErrors
			if errors.As(err, &ferrs) {
				return ferrs
			}
			if err != nil {
				return rt.backendError(err, "No se pudo cambiar el estado")
			}
			label := p.StateName
			if label == "" {
				label = "#" + strconv.FormatInt(p.StateID, 10)
			}
			fmt.Fprintf(rt.out, "Proceso #%d ahora está %s\n", p.ID, label)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "id del usuario que registra el cambio (por defecto, el de la sesión)")
	return cmd
}

func parseID(raw, what string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id de %s inválido: %q", what, raw)
	}
	return id, nil
}
