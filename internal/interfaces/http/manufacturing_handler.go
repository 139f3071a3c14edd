package http

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/urufarma/lims-web/internal/application/auth"
	"github.com/urufarma/lims-web/internal/application/dto"
	"github.com/urufarma/lims-web/internal/application/manufacturing"
	"github.com/urufarma/lims-web/internal/application/validation"
	"github.com/urufarma/lims-web/internal/domain/entity"
	"github.com/urufarma/lims-web/pkg/logger"
	"github.com/urufarma/lims-web/pkg/textutil"
)

const manufacturingPath = "/manufacturing"

// TraceReporter genera el PDF de trazabilidad de una orden expandida.
type TraceReporter interface {
	Generate(ctx context.Context, trace *manufacturing.OrderTrace) ([]byte, error)
}

// ManufacturingHandler órdenes, procesos y trazabilidad de manufactura.
type ManufacturingHandler struct {
	reports TraceReporter
	log     *logger.Logger
}

func NewManufacturingHandler(reports TraceReporter, log *logger.Logger) *ManufacturingHandler {
	return &ManufacturingHandler{reports: reports, log: log}
}

func orderTracePath(id int64) string { return fmt.Sprintf("%s/orders/%d", manufacturingPath, id) }

// List GET /manufacturing[?q=][&modal=new|edit&form=order|process&id=].
func (h *ManufacturingHandler) List(c *fiber.Ctx) error {
	data := fiber.Map{}
	switch c.Query("modal") {
	case "new":
		data["Modal"] = "new"
		if c.Query("form") == "process" {
			data["FormKind"] = "process"
			data["Form"] = validation.ProcessForm{OrderID: c.Query("orden"), StateID: "1"}
		} else {
			data["FormKind"] = "order"
			data["Form"] = validation.OrderForm{Unit: "kg"}
		}
	case "edit":
		data["Modal"] = "edit"
		data["FormKind"] = "order"
		data["EditID"] = queryID(c)
	}
	return h.page(c, fiber.StatusOK, data)
}

func (h *ManufacturingHandler) page(c *fiber.Ctx, status int, data fiber.Map) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	data["Title"] = "Manufactura"
	q := c.Query("q")
	data["Query"] = q
	svc := GetServices(c).Manufacturing

	catalog, err := manufacturing.NewTraceabilityUseCase(svc).LoadCatalog(ctx)
	if err != nil && loadError(c, data, err, "No se pudo cargar el catálogo de estados") {
		return c.Redirect("/login")
	}
	data["States"] = catalog.Sorted()

	orders, err := svc.ListOrders(ctx, dto.PageRequest{Limit: 100})
	if err != nil && loadError(c, data, err, "No se pudieron cargar las órdenes") {
		return c.Redirect("/login")
	}
	filtered := orders[:0:0]
	for _, o := range orders {
		if textutil.MatchAny(q, o.Code, o.BatchCode) {
			filtered = append(filtered, o)
		}
	}
	data["Orders"] = filtered

	processes, err := svc.ListProcesses(ctx, dto.PageRequest{Limit: 100})
	if err != nil && loadError(c, data, err, "No se pudieron cargar los procesos") {
		return c.Redirect("/login")
	}
	rows := make([]processRow, len(processes))
	for i, p := range processes {
		rows[i] = processRow{ManufacturingProcess: p, StateLabel: catalog.Name(p.StateID)}
	}
	data["Processes"] = rows

	if id, ok := data["EditID"].(int64); ok && data["Form"] == nil {
		for _, o := range orders {
			if o.ID == id {
				data["Form"] = orderForm(o)
			}
		}
	}
	if data["Form"] == nil {
		delete(data, "Modal")
	}
	return render(c, status, "manufacturing", data)
}

type processRow struct {
	entity.ManufacturingProcess
	StateLabel string
}

// CreateOrder POST /manufacturing/orders.
func (h *ManufacturingHandler) CreateOrder(c *fiber.Ctx) error {
	if ok, err := allow(c, auth.CapManufacturingWrite, manufacturingPath); !ok {
		return err
	}
	var form validation.OrderForm
	if errs := bindForm(c, &form); !errs.Empty() {
		return h.page(c, fiber.StatusUnprocessableEntity, fiber.Map{"Modal": "new", "FormKind": "order", "Form": form, "Errors": errs})
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	if _, err := GetServices(c).Manufacturing.CreateOrder(ctx, form.Payload()); err != nil {
		return fail(c, err, "Error al guardar", manufacturingPath)
	}
	setFlash(c, flashSuccess, "Orden creada")
	return c.Redirect(manufacturingPath)
}

// UpdateOrder POST /manufacturing/orders/:id.
func (h *ManufacturingHandler) UpdateOrder(c *fiber.Ctx) error {
	if ok, err := allow(c, auth.CapManufacturingWrite, manufacturingPath); !ok {
		return err
	}
	id := paramID(c)
	var form validation.OrderForm
	if errs := bindForm(c, &form); !errs.Empty() {
		return h.page(c, fiber.StatusUnprocessableEntity, fiber.Map{"Modal": "edit", "FormKind": "order", "EditID": id, "Form": form, "Errors": errs})
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	if _, err := GetServices(c).Manufacturing.UpdateOrder(ctx, id, form.Payload()); err != nil {
		return fail(c, err, "Error al guardar", manufacturingPath)
	}
	setFlash(c, flashSuccess, "Orden actualizada")
	return c.Redirect(manufacturingPath)
}

// DeleteOrder POST /manufacturing/orders/:id/delete.
func (h *ManufacturingHandler) DeleteOrder(c *fiber.Ctx) error {
	if ok, err := allow(c, auth.CapManufacturingWrite, manufacturingPath); !ok {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	if err := GetServices(c).Manufacturing.DeleteOrder(ctx, paramID(c)); err != nil {
		return fail(c, err, "Error al eliminar", manufacturingPath)
	}
	setFlash(c, flashSuccess, "Orden eliminada")
	return c.Redirect(manufacturingPath)
}

// CreateProcess POST /manufacturing/processes.
func (h *ManufacturingHandler) CreateProcess(c *fiber.Ctx) error {
	if ok, err := allow(c, auth.CapManufacturingWrite, manufacturingPath); !ok {
		return err
	}
	var form validation.ProcessForm
	if errs := bindForm(c, &form); !errs.Empty() {
		return h.page(c, fiber.StatusUnprocessableEntity, fiber.Map{"Modal": "new", "FormKind": "process", "Form": form, "Errors": errs})
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	p, err := GetServices(c).Manufacturing.CreateProcess(ctx, form.Payload())
	if err != nil {
		return fail(c, err, "Error al guardar", manufacturingPath)
	}
	setFlash(c, flashSuccess, "Proceso creado")
	return c.Redirect(orderTracePath(p.OrderID))
}

// expand carga catálogo, orden y procesos con historial.
func (h *ManufacturingHandler) expand(ctx context.Context, c *fiber.Ctx, orderID int64) (*manufacturing.OrderTrace, entity.StateCatalog, error) {
	svc := GetServices(c).Manufacturing
	uc := manufacturing.NewTraceabilityUseCase(svc)
	catalog, err := uc.LoadCatalog(ctx)
	if err != nil {
		return nil, nil, err
	}
	// sin cabecera la traza igual se muestra
	order, err := uc.FindOrder(ctx, orderID)
	if err != nil {
		h.log.Warn().Err(err).Int64("orden", orderID).Msg("cabecera de orden no disponible")
	}
	trace, err := uc.ExpandOrder(ctx, catalog, orderID, order)
	if err != nil {
		return nil, nil, err
	}
	return trace, catalog, nil
}

// Trace GET /manufacturing/orders/:id: orden expandida con procesos e historial.
func (h *ManufacturingHandler) Trace(c *fiber.Ctx) error {
	return h.tracePage(c, paramID(c), fiber.StatusOK, fiber.Map{})
}

func (h *ManufacturingHandler) tracePage(c *fiber.Ctx, orderID int64, status int, data fiber.Map) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	trace, catalog, err := h.expand(ctx, c, orderID)
	if err != nil {
		return fail(c, err, "No se pudo cargar la trazabilidad", manufacturingPath)
	}
	for _, p := range trace.Processes {
		if !p.Consistent {
			h.log.Warn().Int64("proceso", p.Process.ID).Msg("historial inconsistente con el estado actual")
		}
	}
	data["Title"] = "Trazabilidad"
	data["Trace"] = trace
	data["States"] = catalog.Sorted()
	data["UserID"] = itoa(GetUserID(c))
	return render(c, status, "trace", data)
}

// TracePDF GET /manufacturing/orders/:id/trace.pdf.
func (h *ManufacturingHandler) TracePDF(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	orderID := paramID(c)
	trace, _, err := h.expand(ctx, c, orderID)
	if err != nil {
		return fail(c, err, "No se pudo generar el reporte", orderTracePath(orderID))
	}
	pdf, err := h.reports.Generate(ctx, trace)
	if err != nil {
		h.log.Error().Err(err).Int64("orden", orderID).Msg("generar PDF de trazabilidad")
		return fail(c, err, "No se pudo generar el reporte", orderTracePath(orderID))
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Attachment(fmt.Sprintf("trazabilidad-orden-%d.pdf", orderID))
	return c.Send(pdf)
}

// ChangeState POST /manufacturing/processes/:id/state. El backend decide si la transición es legal.
func (h *ManufacturingHandler) ChangeState(c *fiber.Ctx) error {
	orderID := int64(c.QueryInt("orden", 0))
	back := manufacturingPath
	if orderID > 0 {
		back = orderTracePath(orderID)
	}
	if ok, err := allow(c, auth.CapManufacturingWrite, back); !ok {
		return err
	}
	processID := paramID(c)
	var form validation.StateChangeForm
	if err := c.BodyParser(&form); err != nil {
		setFlash(c, flashError, "Formulario inválido")
		return c.Redirect(back)
	}

	ctx, cancel := requestContext(c)
	defer cancel()
	uc := manufacturing.NewTraceabilityUseCase(GetServices(c).Manufacturing)
	if _, err := uc.ChangeState(ctx, processID, &form); err != nil {
		var ferrs validation.FieldErrors
		if errors.As(err, &ferrs) && orderID > 0 {
			return h.tracePage(c, orderID, fiber.StatusUnprocessableEntity, fiber.Map{
				"StateErrors": ferrs, "StateProcessID": processID, "StateForm": form,
			})
		}
		return fail(c, err, "Error al cambiar estado", back)
	}
	setFlash(c, flashSuccess, "Estado actualizado")
	return c.Redirect(back)
}

func orderForm(o entity.ManufacturingOrder) validation.OrderForm {
	return validation.OrderForm{
		Code:       o.Code,
		BatchCode:  o.BatchCode,
		Date:       o.Date,
		ProductID:  itoa(o.ProductID),
		Quantity:   o.Quantity.String(),
		Unit:       o.Unit,
		OperatorID: itoa(o.OperatorID),
	}
}
