package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/urufarma/lims-web/internal/application/auth"
	"github.com/urufarma/lims-web/internal/application/dto"
	"github.com/urufarma/lims-web/internal/application/validation"
)

// DocumentHandler adjuntos de equipos y plantas, y exportaciones CSV.
type DocumentHandler struct{}

func NewDocumentHandler() *DocumentHandler { return &DocumentHandler{} }

// entityPage pantalla a la que se vuelve después de operar sobre un adjunto.
func entityPage(entityType string, id int64) string {
	base := equipmentPath
	if entityType == "planta" {
		base = plantPath
	}
	if id <= 0 {
		return base
	}
	return fmt.Sprintf("%s?modal=edit&id=%d", base, id)
}

// Upload POST /documents (multipart: entidad_tipo, entidad_id, file).
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	var form validation.DocumentForm
	_ = c.BodyParser(&form)
	back := entityPage(form.EntityType, form.EntityRef())
	if ok, err := allow(c, auth.CapDocumentUpload, back); !ok {
		return err
	}
	fh, err := c.FormFile("file")
	if err == nil {
		form.FileName = fh.Filename
		form.Size = fh.Size
	}
	if errs := validation.Validate(&form); !errs.Empty() {
		for _, msg := range errs {
			setFlash(c, flashError, msg)
			break
		}
		return c.Redirect(entityPage(form.EntityType, form.EntityRef()))
	}

	f, err := fh.Open()
	if err != nil {
		return fail(c, err, "No se pudo leer el archivo", back)
	}
	defer f.Close()

	ctx, cancel := requestContext(c)
	defer cancel()
	_, err = GetServices(c).Documents.Upload(ctx, dto.UploadDocumentRequest{
		EntityType: form.EntityType,
		EntityID:   form.EntityRef(),
		FileName:   form.FileName,
		Content:    f,
	})
	if err != nil {
		return fail(c, err, "Error al subir el documento", back)
	}
	setFlash(c, flashSuccess, "Documento subido")
	return c.Redirect(back)
}

// Download GET /documents/:id/download.
func (h *DocumentHandler) Download(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	doc, err := GetServices(c).Documents.Download(ctx, paramID(c))
	if err != nil {
		return fail(c, err, "No se pudo descargar el documento", c.Get(fiber.HeaderReferer, "/"))
	}
	if doc.ContentType != "" {
		c.Set(fiber.HeaderContentType, doc.ContentType)
	}
	c.Attachment(doc.FileName)
	return c.Send(doc.Body)
}

// Delete POST /documents/:id/delete. Vuelve a la entidad indicada en el form.
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	entityID, _ := strconv.ParseInt(c.FormValue("entidad_id"), 10, 64)
	back := entityPage(c.FormValue("entidad_tipo"), entityID)
	if ok, err := allow(c, auth.CapDocumentDelete, back); !ok {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	if err := GetServices(c).Documents.Delete(ctx, paramID(c)); err != nil {
		return fail(c, err, "Error al eliminar", back)
	}
	setFlash(c, flashSuccess, "Documento eliminado")
	return c.Redirect(back)
}

// Export GET /exports/:name (equipos.csv, plantas.csv, ordenes-manufactura.csv).
func (h *DocumentHandler) Export(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	svc := GetServices(c).Exports

	var (
		out  *dto.Export
		err  error
		back string
	)
	switch c.Params("name") {
	case "equipos.csv":
		back = equipmentPath
		out, err = svc.Equipment(ctx)
	case "plantas.csv":
		back = plantPath
		out, err = svc.Plants(ctx)
	case "ordenes-manufactura.csv":
		back = manufacturingPath
		out, err = svc.ManufacturingOrders(ctx)
	default:
		return c.Redirect("/")
	}
	if err != nil {
		return fail(c, err, "No se pudo exportar", back)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Attachment(out.FileName)
	return c.Send(out.Body)
}
