package stubapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/urufarma/lims-web/internal/application/dto"
	"github.com/urufarma/lims-web/internal/domain/entity"
)

// handlers endpoints REST del backend simulado. Replican rutas y formas de respuesta
// del backend real; la validación es mínima (campos obligatorios y referencias).
type handlers struct {
	store *Store
}

func paramID(c *fiber.Ctx) (int64, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return int64(id), true
}

// paginate aplica skip/limit del query string (por defecto 0/100).
func paginate[T any](c *fiber.Ctx, rows []T) []T {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 100)
	if skip < 0 {
		skip = 0
	}
	if skip >= len(rows) {
		return []T{}
	}
	rows = rows[skip:]
	if limit >= 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

func notFound(c *fiber.Ctx, what string) error {
	return detail(c, fiber.StatusNotFound, what+" no encontrado")
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// ── Equipos ──────────────────────────────────────────────────────────────────

func (h *handlers) listEquipment(c *fiber.Ctx) error {
	h.store.mu.RLock()
	defer h.store.mu.RUnlock()
	return c.JSON(h.store.equipment.list(nil))
}

func (h *handlers) getEquipment(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return notFound(c, "Equipo")
	}
	h.store.mu.RLock()
	defer h.store.mu.RUnlock()
	eq, found := h.store.equipment.get(id)
	if !found {
		return notFound(c, "Equipo")
	}
	return c.JSON(eq)
}

func (h *handlers) saveEquipment(c *fiber.Ctx) error {
	var in dto.EquipmentRequest
	if err := c.BodyParser(&in); err != nil || blank(in.Code) || blank(in.Name) {
		return detail(c, fiber.StatusUnprocessableEntity, "codigo y nombre son requeridos")
	}
	id, _ := paramID(c)
	create := c.Method() == fiber.MethodPost
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	for _, e := range h.store.equipment.rows {
		if e.Code == in.Code && (create || e.ID != id) {
			return detail(c, fiber.StatusConflict, "Ya existe un equipo con el código "+in.Code)
		}
	}
	build := func(id int64) entity.Equipment {
		return entity.Equipment{ID: id, Code: in.Code, Name: in.Name, TypeID: in.TypeID, StatusID: in.StatusID, AreaID: in.AreaID}
	}
	if create {
		return c.Status(fiber.StatusCreated).JSON(h.store.equipment.insert(build))
	}
	if _, found := h.store.equipment.get(id); !found {
		return notFound(c, "Equipo")
	}
	eq := build(id)
	h.store.equipment.put(id, eq)
	return c.JSON(eq)
}

func (h *handlers) deleteEquipment(c *fiber.Ctx) error {
	id, _ := paramID(c)
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	if !h.store.equipment.remove(id) {
		return notFound(c, "Equipo")
	}
	return c.JSON(dto.IDResponse{ID: id, Message: "Equipo eliminado"})
}

// ── Plantas ──────────────────────────────────────────────────────────────────

func (h *handlers) listPlants(c *fiber.Ctx) error {
	h.store.mu.RLock()
	defer h.store.mu.RUnlock()
	return c.JSON(h.store.plants.list(nil))
}

func (h *handlers) getPlant(c *fiber.Ctx) error {
	id, _ := paramID(c)
	h.store.mu.RLock()
	defer h.store.mu.RUnlock()
	p, found := h.store.plants.get(id)
	if !found {
		return notFound(c, "Planta")
	}
	return c.JSON(p)
}

func (h *handlers) savePlant(c *fiber.Ctx) error {
	var in dto.PlantRequest
	if err := c.BodyParser(&in); err != nil || blank(in.Code) || blank(in.Name) {
		return detail(c, fiber.StatusUnprocessableEntity, "codigo y nombre son requeridos")
	}
	build := func(id int64) entity.Plant {
		return entity.Plant{ID: id, Code: in.Code, Name: in.Name, SystemID: in.SystemID, Active: in.Active}
	}
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	if c.Method() == fiber.MethodPost {
		return c.Status(fiber.StatusCreated).JSON(h.store.plants.insert(build))
	}
	id, _ := paramID(c)
	if _, found := h.store.plants.get(id); !found {
		return notFound(c, "Planta")
	}
	p := build(id)
	h.store.plants.put(id, p)
	return c.JSON(p)
}

func (h *handlers) deletePlant(c *fiber.Ctx) error {
	id, _ := paramID(c)
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	if !h.store.plants.remove(id) {
		return notFound(c, "Planta")
	}
	return c.JSON(dto.IDResponse{ID: id, Message: "Planta eliminada"})
}

// ── Muestreo ─────────────────────────────────────────────────────────────────

func (h *handlers) listSamples(c *fiber.Ctx) error {
	h.store.mu.RLock()
	defer h.store.mu.RUnlock()
	return c.JSON(h.store.samples.list(nil))
}

func (h *handlers) createSample(c *fiber.Ctx) error {
	var in dto.CreateSampleRequest
	if err := c.BodyParser(&in); err != nil || blank(in.Type) {
		return detail(c, fiber.StatusUnprocessableEntity, "tipo es requerido")
	}
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	if in.EquipmentID != nil {
		if _, ok := h.store.equipment.get(*in.EquipmentID); !ok {
			return detail(c, fiber.StatusUnprocessableEntity, "El equipo indicado no existe")
		}
	}
	if in.RequestStatusID == 0 {
		in.RequestStatusID = 1
	}
	s := h.store.samples.insert(func(id int64) entity.SampleRequest {
		return entity.SampleRequest{
			ID: id, UserID: in.UserID, Type: in.Type, EquipmentID: in.EquipmentID,
			RequestStatusID: in.RequestStatusID, Note: deref(in.Note), Date: entity.NewTimestamp(h.store.now()),
		}
	})
	return c.Status(fiber.StatusCreated).JSON(s)
}

func (h *handlers) updateSample(c *fiber.Ctx) error {
	id, _ := paramID(c)
	var in dto.UpdateSampleRequest
	if err := c.BodyParser(&in); err != nil {
		return detail(c, fiber.StatusUnprocessableEntity, "cuerpo inválido")
	}
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	s, found := h.store.samples.get(id)
	if !found {
		return notFound(c, "Solicitud")
	}
	s.Note = deref(in.Note)
	h.store.samples.put(id, s)
	return c.JSON(s)
}

func (h *handlers) deleteSample(c *fiber.Ctx) error {
	id, _ := paramID(c)
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	if !h.store.samples.remove(id) {
		return notFound(c, "Solicitud")
	}
	return c.JSON(dto.IDResponse{ID: id, Message: "Solicitud eliminada"})
}

// ── Análisis ─────────────────────────────────────────────────────────────────

func (h *handlers) listAnalyses(c *fiber.Ctx) error {
	h.store.mu.RLock()
	defer h.store.mu.RUnlock()
	return c.JSON(paginate(c, h.store.analyses.list(nil)))
}

func (h *handlers) getAnalysis(c *fiber.Ctx) error {
	id, _ := paramID(c)
	h.store.mu.RLock()
	defer h.store.mu.RUnlock()
	a, found := h.store.analyses.get(id)
	if !found {
		return notFound(c, "Análisis")
	}
	return c.JSON(a)
}

func (h *handlers) createAnalysis(c *fiber.Ctx) error {
	var in dto.CreateAnalysisRequest
	if err := c.BodyParser(&in); err != nil || blank(in.Type) {
		return detail(c, fiber.StatusUnprocessableEntity, "tipo_analisis es requerido")
	}
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	a := h.store.analyses.insert(func(id int64) entity.Analysis {
		return entity.Analysis{
			ID: id, Type: in.Type, OperatorID: in.OperatorID, Description: deref(in.Description),
			StatusID: 1, LastChange: entity.NewTimestamp(h.store.now()),
		}
	})
	return c.Status(fiber.StatusCreated).JSON(a)
}

func (h *handlers) updateAnalysis(c *fiber.Ctx) error {
	id, _ := paramID(c)
	var in dto.UpdateAnalysisRequest
	if err := c.BodyParser(&in); err != nil {
		return detail(c, fiber.StatusUnprocessableEntity, "cuerpo inválido")
	}
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	a, found := h.store.analyses.get(id)
	if !found {
		return notFound(c, "Análisis")
	}
	a.Description = deref(in.Description)
	a.LastChange = entity.NewTimestamp(h.store.now())
	h.store.analyses.put(id, a)
	return c.JSON(a)
}

func (h *handlers) deleteAnalysis(c *fiber.Ctx) error {
	id, _ := paramID(c)
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	if !h.store.analyses.remove(id) {
		return notFound(c, "Análisis")
	}
	return c.JSON(dto.IDResponse{ID: id, Message: "Análisis eliminado"})
}

// ── Inventario ───────────────────────────────────────────────────────────────

func (h *handlers) listPowders(c *fiber.Ctx) error {
	h.store.mu.RLock()
	defer h.store.mu.RUnlock()
	return c.JSON(h.store.powders.list(func(p entity.Powder) bool { return p.Active }))
}

func (h *handlers) createPowder(c *fiber.Ctx) error {
	var in dto.CreatePowderRequest
	if err := c.BodyParser(&in); err != nil || blank(in.Name) || blank(in.Unit) {
		return detail(c, fiber.StatusUnprocessableEntity, "nombre y unidad son requeridos")
	}
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	p := h.store.powders.insert(func(id int64) entity.Powder {
		return entity.Powder{ID: id, Code: deref(in.Code), Name: in.Name, Unit: in.Unit, Active: true}
	})
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *handlers) updatePowder(c *fiber.Ctx) error {
	id, _ := paramID(c)
	var in dto.UpdatePowderRequest
	if err := c.BodyParser(&in); err != nil || blank(in.Name) {
		return detail(c, fiber.StatusUnprocessableEntity, "nombre es requerido")
	}
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	p, found := h.store.powders.get(id)
	if !found {
		return notFound(c, "Polvo")
	}
	p.Name = in.Name
	h.store.powders.put(id, p)
	return c.JSON(p)
}

// deletePowder baja lógica (activo=false), como el backend real.
func (h *handlers) deletePowder(c *fiber.Ctx) error {
	id, _ := paramID(c)
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	p, found := h.store.powders.get(id)
	if !found {
		return notFound(c, "Polvo")
	}
	p.Active = false
	h.store.powders.put(id, p)
	return c.JSON(dto.IDResponse{ID: id, Message: "Polvo desactivado"})
}

func (h *handlers) listMedia(c *fiber.Ctx) error {
	h.store.mu.RLock()
	defer h.store.mu.RUnlock()
	return c.JSON(h.store.media.list(nil))
}

func (h *handlers) saveMedium(c *fiber.Ctx) error {
	var in dto.MediumRequest
	if err := c.BodyParser(&in); err != nil || blank(in.Name) || !in.VolumeML.IsPositive() {
		return detail(c, fiber.StatusUnprocessableEntity, "nombre y volumen_ml positivo son requeridos")
	}
	build := func(id int64) entity.Medium {
		return entity.Medium{ID: id, Name: in.Name, Type: in.Type, VolumeML: in.VolumeML, Active: true}
	}
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	if c.Method() == fiber.MethodPost {
		return c.Status(fiber.StatusCreated).JSON(h.store.media.insert(build))
	}
	id, _ := paramID(c)
	prev, found := h.store.media.get(id)
	if !found {
		return notFound(c, "Medio")
	}
	m := build(id)
	m.Code = prev.Code
	h.store.media.put(id, m)
	return c.JSON(m)
}

func (h *handlers) listStock(c *fiber.Ctx) error {
	h.store.mu.RLock()
	defer h.store.mu.RUnlock()
	return c.JSON(h.store.stock.list(nil))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
