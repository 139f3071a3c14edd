package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/urufarma/lims-web/internal/application/auth"
	"github.com/urufarma/lims-web/internal/application/validation"
	"github.com/urufarma/lims-web/internal/domain/entity"
	"github.com/urufarma/lims-web/pkg/textutil"
)

const equipmentPath = "/equipments"

// EquipmentHandler pantalla de equipos e instrumentos.
type EquipmentHandler struct{}

func NewEquipmentHandler() *EquipmentHandler { return &EquipmentHandler{} }

// List GET /equipments[?q=][&modal=new|edit&id=].
func (h *EquipmentHandler) List(c *fiber.Ctx) error {
	data := fiber.Map{}
	switch c.Query("modal") {
	case "new":
		data["Modal"] = "new"
		data["Form"] = validation.EquipmentForm{TypeID: "1", StatusID: "1", AreaID: "1"}
	case "edit":
		ctx, cancel := requestContext(c)
		defer cancel()
		id := queryID(c)
		svc := GetServices(c)
		eq, err := svc.Equipment.Get(ctx, id)
		if err != nil {
			return fail(c, err, "Equipo no encontrado", equipmentPath)
		}
		docs, err := svc.Documents.ListByEntity(ctx, "equipo", id)
		if err != nil && loadError(c, data, err, "No se pudieron cargar los documentos") {
			return c.Redirect("/login")
		}
		data["Modal"] = "edit"
		data["EditID"] = id
		data["Form"] = equipmentForm(eq)
		data["Documents"] = docs
	}
	return h.page(c, fiber.StatusOK, data)
}

func (h *EquipmentHandler) page(c *fiber.Ctx, status int, data fiber.Map) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	data["Title"] = "Equipos"
	q := c.Query("q")
	data["Query"] = q
	items, err := GetServices(c).Equipment.List(ctx)
	if err != nil && loadError(c, data, err, "No se pudieron cargar los equipos") {
		return c.Redirect("/login")
	}
	filtered := items[:0:0]
	for _, e := range items {
		if textutil.MatchAny(q, e.Code, e.Name) {
			filtered = append(filtered, e)
		}
	}
	data["Items"] = filtered
	return render(c, status, "equipments", data)
}

// Create POST /equipments.
func (h *EquipmentHandler) Create(c *fiber.Ctx) error {
	if ok, err := allow(c, auth.CapEquipmentWrite, equipmentPath); !ok {
		return err
	}
	var form validation.EquipmentForm
	if errs := bindForm(c, &form); !errs.Empty() {
		return h.page(c, fiber.StatusUnprocessableEntity, fiber.Map{"Modal": "new", "Form": form, "Errors": errs})
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	if _, err := GetServices(c).Equipment.Create(ctx, form.Payload()); err != nil {
		return fail(c, err, "Error al guardar", equipmentPath)
	}
	setFlash(c, flashSuccess, "Equipo creado")
	return c.Redirect(equipmentPath)
}

// Update POST /equipments/:id.
func (h *EquipmentHandler) Update(c *fiber.Ctx) error {
	if ok, err := allow(c, auth.CapEquipmentWrite, equipmentPath); !ok {
		return err
	}
	id := paramID(c)
	var form validation.EquipmentForm
	if errs := bindForm(c, &form); !errs.Empty() {
		return h.page(c, fiber.StatusUnprocessableEntity, fiber.Map{"Modal": "edit", "EditID": id, "Form": form, "Errors": errs})
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	if _, err := GetServices(c).Equipment.Update(ctx, id, form.Payload()); err != nil {
		return fail(c, err, "Error al guardar", equipmentPath)
	}
	setFlash(c, flashSuccess, "Equipo actualizado")
	return c.Redirect(equipmentPath)
}

// Delete POST /equipments/:id/delete.
func (h *EquipmentHandler) Delete(c *fiber.Ctx) error {
	if ok, err := allow(c, auth.CapEquipmentDelete, equipmentPath); !ok {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	if err := GetServices(c).Equipment.Delete(ctx, paramID(c)); err != nil {
		return fail(c, err, "Error al eliminar", equipmentPath)
	}
	setFlash(c, flashSuccess, "Equipo eliminado")
	return c.Redirect(equipmentPath)
}

func equipmentForm(e *entity.Equipment) validation.EquipmentForm {
	return validation.EquipmentForm{
		Code:     e.Code,
		Name:     e.Name,
		TypeID:   itoa(e.TypeID),
		StatusID: itoa(e.StatusID),
		AreaID:   itoa(e.AreaID),
	}
}
