package manufacturing

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/urufarma/lims-web/internal/application/dto"
	"github.com/urufarma/lims-web/internal/application/ports"
	"github.com/urufarma/lims-web/internal/application/validation"
	"github.com/urufarma/lims-web/internal/domain"
	"github.com/urufarma/lims-web/internal/domain/entity"
)

// historyFetchLimit requests de historial simultáneos al expandir una orden.
const historyFetchLimit = 4

// orderPageSize tamaño de página al buscar una orden en el listado.
const orderPageSize = 100

// HistoryRow entrada de historial con el nombre de estado ya resuelto.
type HistoryRow struct {
	entity.StateHistoryEntry
	StateLabel string
}

// ProcessTrace proceso con su historial ordenado (más antiguo primero).
// Consistent es false si la última entrada no coincide con el estado actual; se muestra
// como advertencia, nunca corta la vista.
type ProcessTrace struct {
	Process    entity.ManufacturingProcess
	StateLabel string
	History    []HistoryRow
	Consistent bool
}

// OrderTrace vista expandida de una orden: orden → procesos → historial.
type OrderTrace struct {
	OrderID   int64
	Order     *entity.ManufacturingOrder
	Processes []ProcessTrace
}

// TraceabilityUseCase trazabilidad de manufactura sobre el API del backend.
// No valida transiciones: el backend es la autoridad sobre qué cambios de estado son legales.
type TraceabilityUseCase struct {
	svc ports.ManufacturingService
}

func NewTraceabilityUseCase(svc ports.ManufacturingService) *TraceabilityUseCase {
	return &TraceabilityUseCase{svc: svc}
}

// LoadCatalog trae el catálogo de estados; se carga una vez por página.
func (uc *TraceabilityUseCase) LoadCatalog(ctx context.Context) (entity.StateCatalog, error) {
	states, err := uc.svc.States(ctx)
	if err != nil {
		return nil, err
	}
	return entity.NewStateCatalog(states), nil
}

// ExpandOrder trae los procesos de la orden y el historial de cada uno.
// order es opcional: si el llamador ya la tiene (listado), se adjunta a la vista.
func (uc *TraceabilityUseCase) ExpandOrder(ctx context.Context, catalog entity.StateCatalog, orderID int64, order *entity.ManufacturingOrder) (*OrderTrace, error) {
	if orderID <= 0 {
		return nil, fmt.Errorf("%w: id de orden inválido", domain.ErrValidation)
	}
	processes, err := uc.svc.ListOrderProcesses(ctx, orderID)
	if err != nil {
		return nil, err
	}

	traces := make([]ProcessTrace, len(processes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(historyFetchLimit)
	for i, p := range processes {
		i, p := i, p
		g.Go(func() error {
			entries, err := uc.svc.History(gctx, p.ID)
			if err != nil {
				return fmt.Errorf("historial del proceso %d: %w", p.ID, err)
			}
			traces[i] = buildTrace(catalog, p, entries)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &OrderTrace{OrderID: orderID, Order: order, Processes: traces}, nil
}

// FindOrder busca la orden recorriendo el listado paginado; el backend no expone
// GET por id. Devuelve nil sin error si no aparece.
func (uc *TraceabilityUseCase) FindOrder(ctx context.Context, orderID int64) (*entity.ManufacturingOrder, error) {
	page := dto.PageRequest{Limit: orderPageSize}
	for {
		orders, err := uc.svc.ListOrders(ctx, page)
		if err != nil {
			return nil, err
		}
		for i := range orders {
			if orders[i].ID == orderID {
				return &orders[i], nil
			}
		}
		if len(orders) < page.Limit {
			return nil, nil
		}
		page.Skip += len(orders)
	}
}

// History historial de un proceso, ordenado del más antiguo al más reciente.
func (uc *TraceabilityUseCase) History(ctx context.Context, processID int64) ([]entity.StateHistoryEntry, error) {
	entries, err := uc.svc.History(ctx, processID)
	if err != nil {
		return nil, err
	}
	entity.SortHistory(entries)
	return entries, nil
}

// ChangeState valida el formulario y reenvía el cambio al backend sin consultar ningún
// grafo de transiciones. Errores de formulario vuelven como validation.FieldErrors;
// el rechazo del backend se devuelve tal cual para que la vista lo muestre.
func (uc *TraceabilityUseCase) ChangeState(ctx context.Context, processID int64, form *validation.StateChangeForm) (*entity.ManufacturingProcess, error) {
	if processID <= 0 {
		return nil, fmt.Errorf("%w: id de proceso inválido", domain.ErrValidation)
	}
	if errs := validation.Validate(form); !errs.Empty() {
		return nil, errs
	}
	return uc.svc.ChangeState(ctx, processID, form.Payload())
}

func buildTrace(catalog entity.StateCatalog, p entity.ManufacturingProcess, entries []entity.StateHistoryEntry) ProcessTrace {
	entity.SortHistory(entries)
	rows := make([]HistoryRow, len(entries))
	for i, e := range entries {
		rows[i] = HistoryRow{StateHistoryEntry: e, StateLabel: label(catalog, e.StateID, e.StateName)}
	}
	return ProcessTrace{
		Process:    p,
		StateLabel: label(catalog, p.StateID, p.StateName),
		History:    rows,
		Consistent: entity.HistoryConsistent(p, entries),
	}
}

// label prefiere el catálogo; si no conoce el id usa el nombre que haya mandado el backend.
func label(catalog entity.StateCatalog, id int64, fallback string) string {
	if _, ok := catalog[id]; ok || fallback == "" {
		return catalog.Name(id)
	}
	return fallback
}

// BadgeClass clase CSS del badge de estado. Sólo presentación.
func BadgeClass(stateName string) string {
	switch strings.ToLower(strings.TrimSpace(stateName)) {
	case "finalizado", "completado", "aprobado":
		return "badge-success"
	case "cancelado", "rechazado":
		return "badge-error"
	case "en proceso", "en_proceso", "iniciado":
		return "badge-info"
	case "pendiente", "pausado":
		return "badge-warning"
	default:
		return "badge-muted"
	}
}
