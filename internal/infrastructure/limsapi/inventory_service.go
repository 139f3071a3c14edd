package limsapi

import (
	"context"

	"github.com/urufarma/lims-web/internal/application/dto"
	"github.com/urufarma/lims-web/internal/application/ports"
	"github.com/urufarma/lims-web/internal/domain/entity"
)

var _ ports.InventoryService = (*InventoryService)(nil)

const (
	powdersPath = "/inventario/polvos"
	mediaPath   = "/inventario/medios"
	stockPath   = "/inventario/stock"
)

// InventoryService polvos/suplementos, medios preparados y stock de medios.
type InventoryService struct {
	c *Client
}

func NewInventoryService(c *Client) *InventoryService { return &InventoryService{c: c} }

func (s *InventoryService) ListPowders(ctx context.Context) ([]entity.Powder, error) {
	var out []entity.Powder
	if err := s.c.get(ctx, powdersPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *InventoryService) CreatePowder(ctx context.Context, in dto.CreatePowderRequest) (*entity.Powder, error) {
	var out entity.Powder
	if err := s.c.post(ctx, powdersPath, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *InventoryService) UpdatePowder(ctx context.Context, id int64, in dto.UpdatePowderRequest) (*entity.Powder, error) {
	var out entity.Powder
	if err := s.c.put(ctx, idPath(powdersPath+"/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *InventoryService) DeletePowder(ctx context.Context, id int64) error {
	return s.c.delete(ctx, idPath(powdersPath+"/%d", id))
}

func (s *InventoryService) ListMedia(ctx context.Context) ([]entity.Medium, error) {
	var out []entity.Medium
	if err := s.c.get(ctx, mediaPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *InventoryService) CreateMedium(ctx context.Context, in dto.MediumRequest) (*entity.Medium, error) {
	var out entity.Medium
	if err := s.c.post(ctx, mediaPath, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *InventoryService) UpdateMedium(ctx context.Context, id int64, in dto.MediumRequest) (*entity.Medium, error) {
	var out entity.Medium
	if err := s.c.put(ctx, idPath(mediaPath+"/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *InventoryService) ListStock(ctx context.Context) ([]entity.MediaStock, error) {
	var out []entity.MediaStock
	if err := s.c.get(ctx, stockPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
