package services

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tripflow/internal/models/db_models"
	"tripflow/internal/models/request_models"
	"tripflow/internal/repositories"
	"tripflow/pkg/utils"
)

func newAccountService(t *testing.T) AccountServiceInterface {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&db_models.Account{}))
	return NewAccountService(repositories.NewAccountRepository(db))
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAccountService(t)

	token, err := svc.Register(context.Background(), request_models.SignUpRequest{
		DisplayName: "Ada",
		Email:       "Ada@Example.com",
		Password:    "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)

	// Email lookup is case-insensitive because registration lowercases it.
	login, err := svc.Login(context.Background(), request_models.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAccountService(t)

	req := request_models.SignUpRequest{DisplayName: "Ada", Email: "ada@example.com", Password: "correct horse"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAccountService(t)

	_, err := svc.Register(context.Background(), request_models.SignUpRequest{
		DisplayName: "Ada", Email: "ada@example.com", Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), request_models.LoginRequest{
		Email: "ada@example.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), request_models.LoginRequest{
		Email: "nobody@example.com", Password: "whatever",
	})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}
