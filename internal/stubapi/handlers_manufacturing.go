package stubapi

import (
	"bytes"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/urufarma/lims-web/internal/application/dto"
	"github.com/urufarma/lims-web/internal/domain/entity"
)

// ── Manufactura ──────────────────────────────────────────────────────────────

func (h *handlers) listOrders(c *fiber.Ctx) error {
	h.store.mu.RLock()
	defer h.store.mu.RUnlock()
	return c.JSON(paginate(c, h.store.orders.list(nil)))
}

func (h *handlers) saveOrder(c *fiber.Ctx) error {
	var in dto.OrderRequest
	if err := c.BodyParser(&in); err != nil || blank(in.Code) || blank(in.BatchCode) || !in.Quantity.IsPositive() {
		return detail(c, fiber.StatusUnprocessableEntity, "codigo, lote y cantidad positiva son requeridos")
	}
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return detail(c, fiber.StatusUnprocessableEntity, "fecha inválida")
	}
	build := func(id int64) entity.ManufacturingOrder {
		return entity.ManufacturingOrder{
			ID: id, Code: in.Code, BatchCode: in.BatchCode, Date: in.Date, ProductID: in.ProductID,
			Quantity: in.Quantity, Unit: in.Unit, OperatorID: in.OperatorID,
		}
	}
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	if c.Method() == fiber.MethodPost {
		return c.Status(fiber.StatusCreated).JSON(h.store.orders.insert(build))
	}
	id, _ := paramID(c)
	if _, found := h.store.orders.get(id); !found {
		return notFound(c, "Orden")
	}
	o := build(id)
	h.store.orders.put(id, o)
	return c.JSON(o)
}

// deleteOrder rechaza borrar órdenes con procesos (integridad referencial del backend real).
func (h *handlers) deleteOrder(c *fiber.Ctx) error {
	id, _ := paramID(c)
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	if _, found := h.store.orders.get(id); !found {
		return notFound(c, "Orden")
	}
	if len(h.store.processes.list(func(p entity.ManufacturingProcess) bool { return p.OrderID == id })) > 0 {
		return detail(c, fiber.StatusConflict, "La orden tiene procesos asociados")
	}
	h.store.orders.remove(id)
	return c.JSON(dto.IDResponse{ID: id, Message: "Orden eliminada"})
}

func (h *handlers) listProcesses(c *fiber.Ctx) error {
	h.store.mu.RLock()
	defer h.store.mu.RUnlock()
	return c.JSON(paginate(c, h.store.processes.list(nil)))
}

func (h *handlers) listOrderProcesses(c *fiber.Ctx) error {
	id, _ := paramID(c)
	h.store.mu.RLock()
	defer h.store.mu.RUnlock()
	if _, found := h.store.orders.get(id); !found {
		return notFound(c, "Orden")
	}
	return c.JSON(h.store.processes.list(func(p entity.ManufacturingProcess) bool { return p.OrderID == id }))
}

func (h *handlers) createProcess(c *fiber.Ctx) error {
	var in dto.CreateProcessRequest
	if err := c.BodyParser(&in); err != nil {
		return detail(c, fiber.StatusUnprocessableEntity, "cuerpo inválido")
	}
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	if _, found := h.store.orders.get(in.OrderID); !found {
		return detail(c, fiber.StatusUnprocessableEntity, "La orden de manufactura no existe")
	}
	if h.store.stateName(in.StateID) == "" {
		return detail(c, fiber.StatusUnprocessableEntity, "Estado de manufactura inexistente")
	}
	now := h.store.now()
	p := h.store.processes.insert(func(id int64) entity.ManufacturingProcess {
		return entity.ManufacturingProcess{
			ID: id, OrderID: in.OrderID, StateID: in.StateID, StateName: h.store.stateName(in.StateID),
			StartTime: entity.NewTimestamp(now), Note: deref(in.Note),
		}
	})
	h.store.appendHistory(p.ID, p.StateID, GetUserID(c), now)
	return c.Status(fiber.StatusCreated).JSON(p)
}

// changeState el backend es la autoridad: rechaza estados inexistentes y procesos cerrados.
func (h *handlers) changeState(c *fiber.Ctx) error {
	id, _ := paramID(c)
	var in dto.StateChangeRequest
	if err := c.BodyParser(&in); err != nil {
		return detail(c, fiber.StatusUnprocessableEntity, "cuerpo inválido")
	}
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	p, found := h.store.processes.get(id)
	if !found {
		return notFound(c, "Proceso")
	}
	if h.store.stateName(in.NewStateID) == "" {
		return detail(c, fiber.StatusBadRequest, "Estado de manufactura inexistente")
	}
	if h.store.closedState(p.StateID) {
		return detail(c, fiber.StatusConflict, "El proceso está "+h.store.stateName(p.StateID)+" y no admite cambios de estado")
	}
	if in.UserID <= 0 {
		in.UserID = GetUserID(c)
	}
	return c.JSON(h.store.changeState(id, in.NewStateID, in.UserID, h.store.now()))
}

func (h *handlers) processHistory(c *fiber.Ctx) error {
	id, _ := paramID(c)
	h.store.mu.RLock()
	defer h.store.mu.RUnlock()
	if _, found := h.store.processes.get(id); !found {
		return notFound(c, "Proceso")
	}
	return c.JSON(h.store.history.list(func(e entity.StateHistoryEntry) bool { return e.ProcessID == id }))
}

func (h *handlers) listStates(c *fiber.Ctx) error {
	h.store.mu.RLock()
	defer h.store.mu.RUnlock()
	return c.JSON(h.store.states)
}

// ── Dashboard ────────────────────────────────────────────────────────────────

func (h *handlers) dashboardStats(c *fiber.Ctx) error {
	h.store.mu.RLock()
	defer h.store.mu.RUnlock()
	now := h.store.now()
	today := now.Format("2006-01-02")

	stats := dto.DashboardStats{ActiveEquipment: int64(len(h.store.equipment.rows))}
	byStatus := map[int64]int64{}
	for _, a := range h.store.analyses.rows {
		byStatus[a.StatusID]++
		if a.StatusID == 1 {
			stats.PendingAnalyses++
		}
	}
	for _, st := range []struct {
		id   int64
		name string
	}{{1, "pendiente"}, {2, "en curso"}, {3, "completado"}} {
		stats.AnalysesByStatus = append(stats.AnalysesByStatus, dto.StatusCount{Status: st.name, Count: byStatus[st.id]})
	}
	perDay := map[string]int64{}
	for _, s := range h.store.samples.rows {
		perDay[s.Date.Format("2006-01-02")]++
	}
	stats.SamplesToday = perDay[today]
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format("2006-01-02")
		stats.SamplesLastWeek = append(stats.SamplesLastWeek, dto.DayCount{Date: day, Count: perDay[day]})
	}
	return c.JSON(stats)
}

// ── Documentos ───────────────────────────────────────────────────────────────

func (h *handlers) uploadDocument(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return detail(c, fiber.StatusUnprocessableEntity, "file es requerido")
	}
	if fh.Size > dto.MaxDocumentBytes {
		return detail(c, fiber.StatusRequestEntityTooLarge, "El archivo supera el máximo de 50 MB")
	}
	entityType := c.FormValue("entidad_tipo")
	entityID, err := strconv.ParseInt(c.FormValue("entidad_id"), 10, 64)
	if err != nil || (entityType != "equipo" && entityType != "planta") {
		return detail(c, fiber.StatusUnprocessableEntity, "entidad_tipo/entidad_id inválidos")
	}
	f, err := fh.Open()
	if err != nil {
		return detail(c, fiber.StatusInternalServerError, err.Error())
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return detail(c, fiber.StatusInternalServerError, err.Error())
	}

	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	doc := h.store.documents.insert(func(id int64) storedDocument {
		return storedDocument{
			Document: entity.Document{
				ID: id, Name: fh.Filename, MimeType: fh.Header.Get("Content-Type"), SizeBytes: fh.Size,
				EntityType: entityType, EntityID: entityID, UserID: GetUserID(c),
				UploadedAt: entity.NewTimestamp(h.store.now()),
			},
			Content: content,
		}
	})
	return c.Status(fiber.StatusCreated).JSON(doc.Document)
}

func (h *handlers) listDocuments(c *fiber.Ctx) error {
	entityType := c.Params("tipo")
	entityID, _ := c.ParamsInt("id")
	h.store.mu.RLock()
	defer h.store.mu.RUnlock()
	rows := h.store.documents.list(func(d storedDocument) bool {
		return d.EntityType == entityType && d.EntityID == int64(entityID)
	})
	out := make([]entity.Document, len(rows))
	for i, d := range rows {
		out[i] = d.Document
	}
	return c.JSON(out)
}

func (h *handlers) downloadDocument(c *fiber.Ctx) error {
	id, _ := paramID(c)
	h.store.mu.RLock()
	defer h.store.mu.RUnlock()
	d, found := h.store.documents.get(id)
	if !found {
		return notFound(c, "Documento")
	}
	if d.MimeType != "" {
		c.Set(fiber.HeaderContentType, d.MimeType)
	}
	c.Attachment(d.Name)
	return c.Send(d.Content)
}

func (h *handlers) deleteDocument(c *fiber.Ctx) error {
	id, _ := paramID(c)
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	if !h.store.documents.remove(id) {
		return notFound(c, "Documento")
	}
	return c.JSON(dto.IDResponse{ID: id, Message: "Documento eliminado"})
}

// ── Exportaciones ────────────────────────────────────────────────────────────

func (h *handlers) exportEquipment(c *fiber.Ctx) error {
	h.store.mu.RLock()
	rows := [][]string{{"id", "codigo", "nombre", "tipo_equipo_id", "estado_equipo_id", "area_id"}}
	for _, e := range h.store.equipment.list(nil) {
		rows = append(rows, []string{itoa(e.ID), e.Code, e.Name, itoa(e.TypeID), itoa(e.StatusID), itoa(e.AreaID)})
	}
	h.store.mu.RUnlock()
	return sendCSV(c, "equipos.csv", rows)
}

func (h *handlers) exportPlants(c *fiber.Ctx) error {
	h.store.mu.RLock()
	rows := [][]string{{"id", "codigo", "nombre", "sistema_id", "activo"}}
	for _, p := range h.store.plants.list(nil) {
		rows = append(rows, []string{itoa(p.ID), p.Code, p.Name, itoa(p.SystemID), strconv.FormatBool(p.Active)})
	}
	h.store.mu.RUnlock()
	return sendCSV(c, "plantas.csv", rows)
}

func (h *handlers) exportOrders(c *fiber.Ctx) error {
	h.store.mu.RLock()
	rows := [][]string{{"id", "codigo", "lote", "fecha", "producto_id", "cantidad", "unidad", "operario_id"}}
	for _, o := range h.store.orders.list(nil) {
		rows = append(rows, []string{itoa(o.ID), o.Code, o.BatchCode, o.Date, itoa(o.ProductID), o.Quantity.String(), o.Unit, itoa(o.OperatorID)})
	}
	h.store.mu.RUnlock()
	return sendCSV(c, "ordenes-manufactura.csv", rows)
}

func sendCSV(c *fiber.Ctx, name string, rows [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return detail(c, fiber.StatusInternalServerError, err.Error())
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Attachment(name)
	return c.Send(buf.Bytes())
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }
