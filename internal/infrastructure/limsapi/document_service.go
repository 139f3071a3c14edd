package limsapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/urufarma/lims-web/internal/application/dto"
	"github.com/urufarma/lims-web/internal/application/ports"
	"github.com/urufarma/lims-web/internal/domain"
	"github.com/urufarma/lims-web/internal/domain/entity"
)

var (
	_ ports.DocumentService = (*DocumentService)(nil)
	_ ports.ExportService   = (*ExportService)(nil)
)

// DocumentService adjuntos (/documentos).
type DocumentService struct {
	c *Client
}

func NewDocumentService(c *Client) *DocumentService { return &DocumentService{c: c} }

// Upload POST /documentos/upload como multipart (file, entidad_tipo, entidad_id).
// Rechaza localmente archivos de más de dto.MaxDocumentBytes.
func (s *DocumentService) Upload(ctx context.Context, in dto.UploadDocumentRequest) (*entity.Document, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", in.FileName)
	if err != nil {
		return nil, fmt.Errorf("limsapi: armar multipart: %w", err)
	}
	n, err := io.Copy(part, io.LimitReader(in.Content, dto.MaxDocumentBytes+1))
	if err != nil {
		return nil, fmt.Errorf("limsapi: leer archivo: %w", err)
	}
	if n > dto.MaxDocumentBytes {
		return nil, fmt.Errorf("%w: el archivo supera el máximo de 50 MB", domain.ErrValidation)
	}
	_ = w.WriteField("entidad_tipo", in.EntityType)
	_ = w.WriteField("entidad_id", strconv.FormatInt(in.EntityID, 10))
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("limsapi: cerrar multipart: %w", err)
	}

	var out entity.Document
	err = s.c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/documentos/upload",
		body:        &buf,
		contentType: w.FormDataContentType(),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *DocumentService) ListByEntity(ctx context.Context, entityType string, entityID int64) ([]entity.Document, error) {
	var out []entity.Document
	path := fmt.Sprintf("/documentos/%s/%d", entityType, entityID)
	if err := s.c.get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *DocumentService) Download(ctx context.Context, id int64) (*dto.DownloadedDocument, error) {
	resp, err := s.c.raw(ctx, idPath("/documentos/descargar/%d", id))
	if err != nil {
		return nil, err
	}
	return &dto.DownloadedDocument{
		FileName:    attachmentName(resp.header, fmt.Sprintf("documento-%d", id)),
		ContentType: contentType(resp.header),
		Body:        resp.body,
	}, nil
}

func (s *DocumentService) Delete(ctx context.Context, id int64) error {
	return s.c.delete(ctx, idPath("/documentos/%d", id))
}

// ExportService CSV generados por el backend (/exports).
type ExportService struct {
	c *Client
}

func NewExportService(c *Client) *ExportService { return &ExportService{c: c} }

func (s *ExportService) Equipment(ctx context.Context) (*dto.Export, error) {
	return s.fetch(ctx, "equipos.csv")
}

func (s *ExportService) Plants(ctx context.Context) (*dto.Export, error) {
	return s.fetch(ctx, "plantas.csv")
}

func (s *ExportService) ManufacturingOrders(ctx context.Context) (*dto.Export, error) {
	return s.fetch(ctx, "ordenes-manufactura.csv")
}

func (s *ExportService) fetch(ctx context.Context, name string) (*dto.Export, error) {
	resp, err := s.c.raw(ctx, "/exports/"+name)
	if err != nil {
		return nil, err
	}
	return &dto.Export{FileName: attachmentName(resp.header, name), Body: resp.body}, nil
}

func attachmentName(h http.Header, fallback string) string {
	_, params, err := mime.ParseMediaType(h.Get("Content-Disposition"))
	if err != nil || params["filename"] == "" {
		return fallback
	}
	return params["filename"]
}

func contentType(h http.Header) string {
	if ct := h.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
