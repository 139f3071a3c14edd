package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/urufarma/lims-web/internal/application/auth"
	"github.com/urufarma/lims-web/internal/application/dto"
	"github.com/urufarma/lims-web/internal/application/validation"
	"github.com/urufarma/lims-web/pkg/textutil"
)

const (
	samplePath   = "/samples"
	analysisPath = "/analysis"
	analysisPage = 20
)

// SampleHandler solicitudes de muestreo.
type SampleHandler struct{}

func NewSampleHandler() *SampleHandler { return &SampleHandler{} }

// List GET /samples[?q=][&modal=new|edit&id=].
func (h *SampleHandler) List(c *fiber.Ctx) error {
	data := fiber.Map{}
	switch c.Query("modal") {
	case "new":
		data["Modal"] = "new"
		data["Form"] = validation.SampleForm{Type: validation.SampleTypes[0]}
	case "edit":
		data["Modal"] = "edit"
		data["EditID"] = queryID(c)
	}
	return h.page(c, fiber.StatusOK, data)
}

func (h *SampleHandler) page(c *fiber.Ctx, status int, data fiber.Map) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	data["Title"] = "Muestreo"
	data["SampleTypes"] = validation.SampleTypes
	q := c.Query("q")
	data["Query"] = q
	svc := GetServices(c)
	items, err := svc.Samples.List(ctx)
	if err != nil && loadError(c, data, err, "No se pudieron cargar las solicitudes") {
		return c.Redirect("/login")
	}
	filtered := items[:0:0]
	for _, s := range items {
		if textutil.MatchAny(q, s.Type, s.Note) {
			filtered = append(filtered, s)
		}
	}
	data["Items"] = filtered

	// la edición sólo cambia la observación: se precarga desde el listado
	if id, ok := data["EditID"].(int64); ok && data["Form"] == nil {
		for _, s := range items {
			if s.ID == id {
				data["Form"] = validation.SampleEditForm{Note: s.Note}
			}
		}
		if data["Form"] == nil {
			delete(data, "Modal")
		}
	}
	equipment, err := svc.Equipment.List(ctx)
	if err == nil {
		data["Equipment"] = equipment
	}
	return render(c, status, "samples", data)
}

// Create POST /samples. El solicitante es el usuario de la sesión.
func (h *SampleHandler) Create(c *fiber.Ctx) error {
	if ok, err := allow(c, auth.CapSampleWrite, samplePath); !ok {
		return err
	}
	var form validation.SampleForm
	if errs := bindForm(c, &form); !errs.Empty() {
		return h.page(c, fiber.StatusUnprocessableEntity, fiber.Map{"Modal": "new", "Form": form, "Errors": errs})
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	if _, err := GetServices(c).Samples.Create(ctx, form.Payload(GetUserID(c))); err != nil {
		return fail(c, err, "Error al guardar", samplePath)
	}
	setFlash(c, flashSuccess, "Solicitud creada")
	return c.Redirect(samplePath)
}

// Update POST /samples/:id.
func (h *SampleHandler) Update(c *fiber.Ctx) error {
	if ok, err := allow(c, auth.CapSampleWrite, samplePath); !ok {
		return err
	}
	id := paramID(c)
	var form validation.SampleEditForm
	if errs := bindForm(c, &form); !errs.Empty() {
		return h.page(c, fiber.StatusUnprocessableEntity, fiber.Map{"Modal": "edit", "EditID": id, "Form": form, "Errors": errs})
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	if _, err := GetServices(c).Samples.Update(ctx, id, form.Payload()); err != nil {
		return fail(c, err, "Error al guardar", samplePath)
	}
	setFlash(c, flashSuccess, "Solicitud actualizada")
	return c.Redirect(samplePath)
}

// Delete POST /samples/:id/delete.
func (h *SampleHandler) Delete(c *fiber.Ctx) error {
	if ok, err := allow(c, auth.CapSampleWrite, samplePath); !ok {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	if err := GetServices(c).Samples.Delete(ctx, paramID(c)); err != nil {
		return fail(c, err, "Error al eliminar", samplePath)
	}
	setFlash(c, flashSuccess, "Solicitud eliminada")
	return c.Redirect(samplePath)
}

// AnalysisHandler análisis de laboratorio (listado paginado).
type AnalysisHandler struct{}

func NewAnalysisHandler() *AnalysisHandler { return &AnalysisHandler{} }

// List GET /analysis[?page=N][&modal=new|edit&id=].
func (h *AnalysisHandler) List(c *fiber.Ctx) error {
	data := fiber.Map{}
	switch c.Query("modal") {
	case "new":
		data["Modal"] = "new"
		data["Form"] = validation.AnalysisForm{Type: validation.AnalysisTypes[0]}
	case "edit":
		ctx, cancel := requestContext(c)
		defer cancel()
		id := queryID(c)
		a, err := GetServices(c).Analyses.Get(ctx, id)
		if err != nil {
			return fail(c, err, "Análisis no encontrado", analysisPath)
		}
		data["Modal"] = "edit"
		data["EditID"] = id
		data["Form"] = validation.AnalysisEditForm{Description: a.Description}
	}
	return h.page(c, fiber.StatusOK, data)
}

func (h *AnalysisHandler) page(c *fiber.Ctx, status int, data fiber.Map) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	pageNum := c.QueryInt("page", 1)
	if pageNum < 1 {
		pageNum = 1
	}
	req := dto.PageRequest{Skip: (pageNum - 1) * analysisPage, Limit: analysisPage}
	req.DefaultPage()

	data["Title"] = "Análisis"
	data["AnalysisTypes"] = validation.AnalysisTypes
	items, err := GetServices(c).Analyses.List(ctx, req)
	if err != nil && loadError(c, data, err, "No se pudieron cargar los análisis") {
		return c.Redirect("/login")
	}
	data["Items"] = items
	data["Page"] = pageNum
	data["PrevPage"] = pageNum - 1
	data["NextPage"] = 0
	if len(items) == analysisPage {
		data["NextPage"] = pageNum + 1
	}
	return render(c, status, "analysis", data)
}

// Create POST /analysis.
func (h *AnalysisHandler) Create(c *fiber.Ctx) error {
	if ok, err := allow(c, auth.CapAnalysisWrite, analysisPath); !ok {
		return err
	}
	var form validation.AnalysisForm
	if errs := bindForm(c, &form); !errs.Empty() {
		return h.page(c, fiber.StatusUnprocessableEntity, fiber.Map{"Modal": "new", "Form": form, "Errors": errs})
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	if _, err := GetServices(c).Analyses.Create(ctx, form.Payload()); err != nil {
		return fail(c, err, "Error al guardar", analysisPath)
	}
	setFlash(c, flashSuccess, "Análisis creado")
	return c.Redirect(analysisPath)
}

// Update POST /analysis/:id.
func (h *AnalysisHandler) Update(c *fiber.Ctx) error {
	if ok, err := allow(c, auth.CapAnalysisWrite, analysisPath); !ok {
		return err
	}
	id := paramID(c)
	var form validation.AnalysisEditForm
	if errs := bindForm(c, &form); !errs.Empty() {
		return h.page(c, fiber.StatusUnprocessableEntity, fiber.Map{"Modal": "edit", "EditID": id, "Form": form, "Errors": errs})
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	if _, err := GetServices(c).Analyses.Update(ctx, id, form.Payload()); err != nil {
		return fail(c, err, "Error al guardar", analysisPath)
	}
	setFlash(c, flashSuccess, "Análisis actualizado")
	return c.Redirect(analysisPath)
}

// Delete POST /analysis/:id/delete.
func (h *AnalysisHandler) Delete(c *fiber.Ctx) error {
	if ok, err := allow(c, auth.CapAnalysisWrite, analysisPath); !ok {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	if err := GetServices(c).Analyses.Delete(ctx, paramID(c)); err != nil {
		return fail(c, err, "Error al eliminar", analysisPath)
	}
	setFlash(c, flashSuccess, "Análisis eliminado")
	return c.Redirect(analysisPath)
}
