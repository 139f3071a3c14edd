package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/urufarma/lims-web/internal/application/auth"
	"github.com/urufarma/lims-web/internal/application/validation"
	"github.com/urufarma/lims-web/internal/domain/entity"
	"github.com/urufarma/lims-web/pkg/textutil"
)

const plantPath = "/plants"

// PlantHandler pantalla de plantas.
type PlantHandler struct{}

func NewPlantHandler() *PlantHandler { return &PlantHandler{} }

// List GET /plants[?q=][&modal=new|edit&id=].
func (h *PlantHandler) List(c *fiber.Ctx) error {
	data := fiber.Map{}
	switch c.Query("modal") {
	case "new":
		data["Modal"] = "new"
		data["Form"] = validation.PlantForm{SystemID: "1", Active: "true"}
	case "edit":
		ctx, cancel := requestContext(c)
		defer cancel()
		id := queryID(c)
		svc := GetServices(c)
		p, err := svc.Plants.Get(ctx, id)
		if err != nil {
			return fail(c, err, "Planta no encontrada", plantPath)
		}
		docs, err := svc.Documents.ListByEntity(ctx, "planta", id)
		if err != nil && loadError(c, data, err, "No se pudieron cargar los documentos") {
			return c.Redirect("/login")
		}
		data["Modal"] = "edit"
		data["EditID"] = id
		data["Form"] = plantForm(p)
		data["Documents"] = docs
	}
	return h.page(c, fiber.StatusOK, data)
}

func (h *PlantHandler) page(c *fiber.Ctx, status int, data fiber.Map) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	data["Title"] = "Plantas"
	q := c.Query("q")
	data["Query"] = q
	items, err := GetServices(c).Plants.List(ctx)
	if err != nil && loadError(c, data, err, "No se pudieron cargar las plantas") {
		return c.Redirect("/login")
	}
	filtered := items[:0:0]
	for _, p := range items {
		if textutil.MatchAny(q, p.Code, p.Name) {
			filtered = append(filtered, p)
		}
	}
	data["Items"] = filtered
	return render(c, status, "plants", data)
}

// Create POST /plants.
func (h *PlantHandler) Create(c *fiber.Ctx) error {
	if ok, err := allow(c, auth.CapPlantWrite, plantPath); !ok {
		return err
	}
	var form validation.PlantForm
	if errs := bindForm(c, &form); !errs.Empty() {
		return h.page(c, fiber.StatusUnprocessableEntity, fiber.Map{"Modal": "new", "Form": form, "Errors": errs})
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	if _, err := GetServices(c).Plants.Create(ctx, form.Payload()); err != nil {
		return fail(c, err, "Error al guardar", plantPath)
	}
	setFlash(c, flashSuccess, "Planta creada")
	return c.Redirect(plantPath)
}

// Update POST /plants/:id.
func (h *PlantHandler) Update(c *fiber.Ctx) error {
	if ok, err := allow(c, auth.CapPlantWrite, plantPath); !ok {
		return err
	}
	id := paramID(c)
	var form validation.PlantForm
	if errs := bindForm(c, &form); !errs.Empty() {
		return h.page(c, fiber.StatusUnprocessableEntity, fiber.Map{"Modal": "edit", "EditID": id, "Form": form, "Errors": errs})
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	if _, err := GetServices(c).Plants.Update(ctx, id, form.Payload()); err != nil {
		return fail(c, err, "Error al guardar", plantPath)
	}
	setFlash(c, flashSuccess, "Planta actualizada")
	return c.Redirect(plantPath)
}

// Delete POST /plants/:id/delete.
func (h *PlantHandler) Delete(c *fiber.Ctx) error {
	if ok, err := allow(c, auth.CapPlantDelete, plantPath); !ok {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	if err := GetServices(c).Plants.Delete(ctx, paramID(c)); err != nil {
		return fail(c, err, "Error al eliminar", plantPath)
	}
	setFlash(c, flashSuccess, "Planta eliminada")
	return c.Redirect(plantPath)
}

func plantForm(p *entity.Plant) validation.PlantForm {
	return validation.PlantForm{
		Code:     p.Code,
		Name:     p.Name,
		SystemID: itoa(p.SystemID),
		Active:   strconv.FormatBool(p.Active),
	}
}
