package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/urufarma/lims-web/internal/application/auth"
	"github.com/urufarma/lims-web/internal/application/validation"
)

const inventoryPath = "/inventory"

// InventoryHandler polvos/suplementos, medios preparados y stock de medios, en pestañas.
type InventoryHandler struct{}

func NewInventoryHandler() *InventoryHandler { return &InventoryHandler{} }

func inventoryTab(c *fiber.Ctx) string {
	switch tab := c.Query("tab"); tab {
	case "medios", "stock":
		return tab
	default:
		return "polvos"
	}
}

// List GET /inventory?tab=polvos|medios|stock[&modal=new|edit&id=].
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	data := fiber.Map{}
	if modal := c.Query("modal"); modal == "new" || modal == "edit" {
		data["Modal"] = modal
		data["EditID"] = queryID(c)
	}
	return h.page(c, inventoryTab(c), fiber.StatusOK, data)
}

func (h *InventoryHandler) page(c *fiber.Ctx, tab string, status int, data fiber.Map) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	data["Title"] = "Inventario"
	data["Tab"] = tab
	data["MediumTypes"] = validation.MediumTypes
	svc := GetServices(c).Inventory
	editID, _ := data["EditID"].(int64)
	_, prefilled := data["Form"]

	switch tab {
	case "polvos":
		items, err := svc.ListPowders(ctx)
		if err != nil && loadError(c, data, err, "No se pudo cargar el inventario de polvos") {
			return c.Redirect("/login")
		}
		data["Powders"] = items
		if !prefilled {
			if data["Modal"] == "new" {
				data["Form"] = validation.PowderForm{}
			}
			for _, p := range items {
				if data["Modal"] == "edit" && p.ID == editID {
					data["Form"] = validation.PowderEditForm{Name: p.Name}
				}
			}
		}
	case "medios":
		items, err := svc.ListMedia(ctx)
		if err != nil && loadError(c, data, err, "No se pudieron cargar los medios") {
			return c.Redirect("/login")
		}
		data["Media"] = items
		if !prefilled {
			if data["Modal"] == "new" {
				data["Form"] = validation.MediumForm{Type: validation.MediumTypes[0]}
			}
			for _, m := range items {
				if data["Modal"] == "edit" && m.ID == editID {
					data["Form"] = validation.MediumForm{Name: m.Name, Type: m.Type, VolumeML: m.VolumeML.String()}
				}
			}
		}
	case "stock":
		items, err := svc.ListStock(ctx)
		if err != nil && loadError(c, data, err, "No se pudo cargar el stock") {
			return c.Redirect("/login")
		}
		data["Stock"] = items
		delete(data, "Modal")
	}
	if _, ok := data["Form"]; !ok {
		delete(data, "Modal")
	}
	return render(c, status, "inventory", data)
}

// CreatePowder POST /inventory/powders.
func (h *InventoryHandler) CreatePowder(c *fiber.Ctx) error {
	back := inventoryPath + "?tab=polvos"
	if ok, err := allow(c, auth.CapInventoryWrite, back); !ok {
		return err
	}
	var form validation.PowderForm
	if errs := bindForm(c, &form); !errs.Empty() {
		return h.page(c, "polvos", fiber.StatusUnprocessableEntity, fiber.Map{"Modal": "new", "Form": form, "Errors": errs})
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	if _, err := GetServices(c).Inventory.CreatePowder(ctx, form.Payload()); err != nil {
		return fail(c, err, "Error al guardar", back)
	}
	setFlash(c, flashSuccess, "Polvo creado")
	return c.Redirect(back)
}

// UpdatePowder POST /inventory/powders/:id.
func (h *InventoryHandler) UpdatePowder(c *fiber.Ctx) error {
	back := inventoryPath + "?tab=polvos"
	if ok, err := allow(c, auth.CapInventoryWrite, back); !ok {
		return err
	}
	id := paramID(c)
	var form validation.PowderEditForm
	if errs := bindForm(c, &form); !errs.Empty() {
		return h.page(c, "polvos", fiber.StatusUnprocessableEntity, fiber.Map{"Modal": "edit", "EditID": id, "Form": form, "Errors": errs})
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	if _, err := GetServices(c).Inventory.UpdatePowder(ctx, id, form.Payload()); err != nil {
		return fail(c, err, "Error al guardar", back)
	}
	setFlash(c, flashSuccess, "Polvo actualizado")
	return c.Redirect(back)
}

// DeletePowder POST /inventory/powders/:id/delete (baja lógica en el backend).
func (h *InventoryHandler) DeletePowder(c *fiber.Ctx) error {
	back := inventoryPath + "?tab=polvos"
	if ok, err := allow(c, auth.CapInventoryWrite, back); !ok {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	if err := GetServices(c).Inventory.DeletePowder(ctx, paramID(c)); err != nil {
		return fail(c, err, "Error al eliminar", back)
	}
	setFlash(c, flashSuccess, "Polvo eliminado")
	return c.Redirect(back)
}

// SaveMedium POST /inventory/media (alta) y /inventory/media/:id (edición).
func (h *InventoryHandler) SaveMedium(c *fiber.Ctx) error {
	back := inventoryPath + "?tab=medios"
	if ok, err := allow(c, auth.CapInventoryWrite, back); !ok {
		return err
	}
	id := paramID(c)
	modal := "new"
	if id > 0 {
		modal = "edit"
	}
	var form validation.MediumForm
	if errs := bindForm(c, &form); !errs.Empty() {
		return h.page(c, "medios", fiber.StatusUnprocessableEntity, fiber.Map{"Modal": modal, "EditID": id, "Form": form, "Errors": errs})
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	svc := GetServices(c).Inventory
	var err error
	if id > 0 {
		_, err = svc.UpdateMedium(ctx, id, form.Payload())
	} else {
		_, err = svc.CreateMedium(ctx, form.Payload())
	}
	if err != nil {
		return fail(c, err, "Error al guardar", back)
	}
	setFlash(c, flashSuccess, "Medio guardado")
	return c.Redirect(back)
}
