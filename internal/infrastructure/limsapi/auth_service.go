package limsapi

import (
	"context"

	"github.com/urufarma/lims-web/internal/application/dto"
	"github.com/urufarma/lims-web/internal/application/ports"
)

var _ ports.AuthService = (*AuthService)(nil)

// AuthService POST /auth/login (OAuth2 password flow, form-urlencoded).
type AuthService struct {
	c *Client
}

func NewAuthService(c *Client) *AuthService { return &AuthService{c: c} }

func (s *AuthService) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	if err := s.c.postForm(ctx, "/auth/login", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
