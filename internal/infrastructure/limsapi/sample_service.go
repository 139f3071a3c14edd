package limsapi

import (
	"context"

	"github.com/urufarma/lims-web/internal/application/dto"
	"github.com/urufarma/lims-web/internal/application/ports"
	"github.com/urufarma/lims-web/internal/domain/entity"
)

var (
	_ ports.SampleService   = (*SampleService)(nil)
	_ ports.AnalysisService = (*AnalysisService)(nil)
)

// SampleService /muestreo/solicitudes.
type SampleService struct {
	c *Client
}

func NewSampleService(c *Client) *SampleService { return &SampleService{c: c} }

func (s *SampleService) List(ctx context.Context) ([]entity.SampleRequest, error) {
	var out []entity.SampleRequest
	if err := s.c.get(ctx, "/muestreo/solicitudes", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SampleService) Create(ctx context.Context, in dto.CreateSampleRequest) (*entity.SampleRequest, error) {
	var out entity.SampleRequest
	if err := s.c.post(ctx, "/muestreo/solicitudes", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *SampleService) Update(ctx context.Context, id int64, in dto.UpdateSampleRequest) (*entity.SampleRequest, error) {
	var out entity.SampleRequest
	if err := s.c.put(ctx, idPath("/muestreo/solicitudes/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *SampleService) Delete(ctx context.Context, id int64) error {
	return s.c.delete(ctx, idPath("/muestreo/solicitudes/%d", id))
}

// AnalysisService /analisis/.
type AnalysisService struct {
	c *Client
}

func NewAnalysisService(c *Client) *AnalysisService { return &AnalysisService{c: c} }

func (s *AnalysisService) List(ctx context.Context, page dto.PageRequest) ([]entity.Analysis, error) {
	page.DefaultPage()
	var out []entity.Analysis
	if err := s.c.get(ctx, "/analisis/", page, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *AnalysisService) Get(ctx context.Context, id int64) (*entity.Analysis, error) {
	var out entity.Analysis
	if err := s.c.get(ctx, idPath("/analisis/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AnalysisService) Create(ctx context.Context, in dto.CreateAnalysisRequest) (*entity.Analysis, error) {
	var out entity.Analysis
	if err := s.c.post(ctx, "/analisis/", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AnalysisService) Update(ctx context.Context, id int64, in dto.UpdateAnalysisRequest) (*entity.Analysis, error) {
	var out entity.Analysis
	if err := s.c.put(ctx, idPath("/analisis/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AnalysisService) Delete(ctx context.Context, id int64) error {
	return s.c.delete(ctx, idPath("/analisis/%d", id))
}
