package handler

import (
	"time"

	"veriport/internal/auth/models"
	"veriport/internal/auth/service"
	id "veriport/pkg/domain"
)

type AccountResponse struct {
	ID          string          `json:"id"`
	Email       string          `json:"email"`
	FullName    string          `json:"full_name"`
	CompanyName string          `json:"company_name,omitempty"`
	Role        id.Role         `json:"role"`
	Permissions []id.Permission `json:"permissions"`
	CreatedAt   time.Time       `json:"created_at"`
	LastLoginAt *time.Time      `json:"last_login_at,omitempty"`
}

type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresAt   time.Time       `json:"expires_at"`
	Account     AccountResponse `json:"account"`
}

func FromAccount(a *models.Account) AccountResponse {
	perms := a.Permissions
	if perms == nil {
		perms = []id.Permission{}
	}
	return AccountResponse{
		ID:          a.ID.String(),
		Email:       a.Email,
		FullName:    a.FullName,
		CompanyName: a.CompanyName,
		Role:        a.Role,
		Permissions: perms,
		CreatedAt:   a.CreatedAt,
		LastLoginAt: a.LastLoginAt,
	}
}

func FromLogin(res *service.LoginResult) LoginResponse {
	return LoginResponse{
		AccessToken: res.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   res.ExpiresAt,
		Account:     FromAccount(res.Account),
	}
}
