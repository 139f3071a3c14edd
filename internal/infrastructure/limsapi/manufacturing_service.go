package limsapi

import (
	"context"

	"github.com/urufarma/lims-web/internal/application/dto"
	"github.com/urufarma/lims-web/internal/application/ports"
	"github.com/urufarma/lims-web/internal/domain/entity"
)

var _ ports.ManufacturingService = (*ManufacturingService)(nil)

const (
	ordersPath    = "/manufactura/ordenes"
	processesPath = "/manufactura/procesos"
	statesPath    = "/manufactura/estados"
)

// ManufacturingService órdenes, procesos y estados de manufactura.
type ManufacturingService struct {
	c *Client
}

func NewManufacturingService(c *Client) *ManufacturingService {
	return &ManufacturingService{c: c}
}

func (s *ManufacturingService) ListOrders(ctx context.Context, page dto.PageRequest) ([]entity.ManufacturingOrder, error) {
	page.DefaultPage()
	var out []entity.ManufacturingOrder
	if err := s.c.get(ctx, ordersPath, page, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ManufacturingService) CreateOrder(ctx context.Context, in dto.OrderRequest) (*entity.ManufacturingOrder, error) {
	var out entity.ManufacturingOrder
	if err := s.c.post(ctx, ordersPath, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ManufacturingService) UpdateOrder(ctx context.Context, id int64, in dto.OrderRequest) (*entity.ManufacturingOrder, error) {
	var out entity.ManufacturingOrder
	if err := s.c.put(ctx, idPath(ordersPath+"/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ManufacturingService) DeleteOrder(ctx context.Context, id int64) error {
	return s.c.delete(ctx, idPath(ordersPath+"/%d", id))
}

func (s *ManufacturingService) ListProcesses(ctx context.Context, page dto.PageRequest) ([]entity.ManufacturingProcess, error) {
	page.DefaultPage()
	var out []entity.ManufacturingProcess
	if err := s.c.get(ctx, processesPath, page, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ManufacturingService) ListOrderProcesses(ctx context.Context, orderID int64) ([]entity.ManufacturingProcess, error) {
	var out []entity.ManufacturingProcess
	if err := s.c.get(ctx, idPath(ordersPath+"/%d/procesos", orderID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ManufacturingService) CreateProcess(ctx context.Context, in dto.CreateProcessRequest) (*entity.ManufacturingProcess, error) {
	var out entity.ManufacturingProcess
	if err := s.c.post(ctx, processesPath, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangeState POST /manufactura/procesos/{id}/estado. El backend decide si la transición es válida.
func (s *ManufacturingService) ChangeState(ctx context.Context, processID int64, in dto.StateChangeRequest) (*entity.ManufacturingProcess, error) {
	var out entity.ManufacturingProcess
	if err := s.c.post(ctx, idPath(processesPath+"/%d/estado", processID), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ManufacturingService) History(ctx context.Context, processID int64) ([]entity.StateHistoryEntry, error) {
	var out []entity.StateHistoryEntry
	if err := s.c.get(ctx, idPath(processesPath+"/%d/historial", processID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ManufacturingService) States(ctx context.Context) ([]entity.ManufacturingState, error) {
	var out []entity.ManufacturingState
	if err := s.c.get(ctx, statesPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
