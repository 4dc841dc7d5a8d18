package application

import (
	"context"
	"encoding/json"
	"fmt"

	"rental_frontend/domain"
)

type AuthService struct {
	api Requester
}

func NewAuthService(api Requester) *AuthService {
	return &AuthService{
		api: api,
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (service *AuthService) Login(ctx context.Context, input domain.LoginInput) (*domain.AuthResponse, error) {
	path := fmt.Sprintf("/auth/%s/login", input.Role)
	raw, err := service.api.Post(ctx, path, credentials{Email: input.Email, Password: input.Password})
	if err != nil {
		return nil, err
	}
	return decodeAuthResponse(raw)
}

func (service *AuthService) RegisterTenant(ctx context.Context, input domain.TenantRegistration) (*domain.AuthResponse, error) {
	raw, err := service.api.Post(ctx, "/auth/tenant/register", input.WithoutConfirmation())
	if err != nil {
		return nil, err
	}
	return decodeAuthResponse(raw)
}

func (service *AuthService) RegisterLandlord(ctx context.Context, input domain.LandlordRegistration) (*domain.AuthResponse, error) {
	raw, err := service.api.Post(ctx, "/auth/landlord/register", input.WithoutConfirmation())
	if err != nil {
		return nil, err
	}
	return decodeAuthResponse(raw)
}

func (service *AuthService) ForgotPassword(ctx context.Context, email string) (*MessageResult, error) {
	raw, err := service.api.Post(ctx, "/auth/forgot-password", map[string]string{"email": email})
	if err != nil {
		return nil, err
	}
	return messageResult(raw), nil
}

func (service *AuthService) ResetPassword(ctx context.Context, input domain.ResetPasswordInput) (*MessageResult, error) {
	raw, err := service.api.Post(ctx, "/auth/reset-password", input.WithoutConfirmation())
	if err != nil {
		return nil, err
	}
	return messageResult(raw), nil
}

func decodeAuthResponse(raw []byte) (*domain.AuthResponse, error) {
	var response domain.AuthResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, fmt.Errorf("decode auth response: %w", err)
	}
	return &response, nil
}
