package limsapi

import (
	"context"

	"github.com/urufarma/lims-web/internal/application/dto"
	"github.com/urufarma/lims-web/internal/application/ports"
	"github.com/urufarma/lims-web/internal/domain/entity"
)

var (
	_ ports.EquipmentService = (*EquipmentService)(nil)
	_ ports.PlantService     = (*PlantService)(nil)
)

// EquipmentService /equipos/.
type EquipmentService struct {
	c *Client
}

func NewEquipmentService(c *Client) *EquipmentService { return &EquipmentService{c: c} }

func (s *EquipmentService) List(ctx context.Context) ([]entity.Equipment, error) {
	var out []entity.Equipment
	if err := s.c.get(ctx, "/equipos/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *EquipmentService) Get(ctx context.Context, id int64) (*entity.Equipment, error) {
	var out entity.Equipment
	if err := s.c.get(ctx, idPath("/equipos/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *EquipmentService) Create(ctx context.Context, in dto.EquipmentRequest) (*entity.Equipment, error) {
	var out entity.Equipment
	if err := s.c.post(ctx, "/equipos/", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *EquipmentService) Update(ctx context.Context, id int64, in dto.EquipmentRequest) (*entity.Equipment, error) {
	var out entity.Equipment
	if err := s.c.put(ctx, idPath("/equipos/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *EquipmentService) Delete(ctx context.Context, id int64) error {
	return s.c.delete(ctx, idPath("/equipos/%d", id))
}

// PlantService /ubicaciones/plantas.
type PlantService struct {
	c *Client
}

func NewPlantService(c *Client) *PlantService { return &PlantService{c: c} }

func (s *PlantService) List(ctx context.Context) ([]entity.Plant, error) {
	var out []entity.Plant
	if err := s.c.get(ctx, "/ubicaciones/plantas", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PlantService) Get(ctx context.Context, id int64) (*entity.Plant, error) {
	var out entity.Plant
	if err := s.c.get(ctx, idPath("/ubicaciones/plantas/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create el alta usa la ruta con barra final, como la registra el backend.
func (s *PlantService) Create(ctx context.Context, in dto.PlantRequest) (*entity.Plant, error) {
	var out entity.Plant
	if err := s.c.post(ctx, "/ubicaciones/plantas/", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PlantService) Update(ctx context.Context, id int64, in dto.PlantRequest) (*entity.Plant, error) {
	var out entity.Plant
	if err := s.c.put(ctx, idPath("/ubicaciones/plantas/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PlantService) Delete(ctx context.Context, id int64) error {
	return s.c.delete(ctx, idPath("/ubicaciones/plantas/%d", id))
}
