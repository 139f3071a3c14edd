package limsapi

import (
	"context"

	"github.com/urufarma/lims-web/internal/application/dto"
	"github.com/urufarma/lims-web/internal/application/ports"
)

var _ ports.DashboardService = (*DashboardService)(nil)

// DashboardService GET /dashboard/stats.
type DashboardService struct {
	c *Client
}

func NewDashboardService(c *Client) *DashboardService { return &DashboardService{c: c} }

func (s *DashboardService) Stats(ctx context.Context) (*dto.DashboardStats, error) {
	var out dto.DashboardStats
	if err := s.c.get(ctx, "/dashboard/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
