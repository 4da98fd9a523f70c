package services

import (
	"context"
	"strings"

	"tripflow/internal/models/db_models"
	"tripflow/internal/models/request_models"
	"tripflow/internal/models/response_models"
	"tripflow/internal/repositories"
	"tripflow/pkg/utils"
)

type AccountServiceInterface interface {
	Register(ctx context.Context, req request_models.SignUpRequest) (*response_models.TokenResponse, error)
	Login(ctx context.Context, req request_models.LoginRequest) (*response_models.TokenResponse, error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
}

func NewAccountService(accountRepo repositories.AccountRepository) AccountServiceInterface {
	return &AccountService{accountRepo: accountRepo}
}

func (s *AccountService) Register(ctx context.Context, req request_models.SignUpRequest) (*response_models.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	account := &db_models.Account{
		Name:         req.DisplayName,
		Email:        email,
		PasswordHash: hash,
		Role:         "user",
	}
	if err := s.accountRepo.Insert(ctx, account); err != nil {
		return nil, utils.ErrDatabaseError
	}

	token, err := utils.CreateToken(account.ID, account.Role)
	if err != nil {
		return nil, err
	}
	return &response_models.TokenResponse{Token: token}, nil
}

func (s *AccountService) Login(ctx context.Context, req request_models.LoginRequest) (*response_models.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.PasswordHash, req.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(account.ID, account.Role)
	if err != nil {
		return nil, err
	}
	return &response_models.TokenResponse{Token: token}, nil
}
