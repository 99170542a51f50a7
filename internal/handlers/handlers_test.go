package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"warehouse/internal/cache"
	"warehouse/internal/models"
	"warehouse/internal/repository"
	"warehouse/internal/service"
)

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB
	P  *ProductHandler
	A  *AuthHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.User{}))

	productRepo := &repository.ProductRepo{DB: db}
	userRepo := &repository.UserRepo{DB: db}

	authService := &service.AuthService{
		Users:     userRepo,
		JWTSecret: []byte("test-jwt-secret"),
		Issuer:    "warehouse",
		Audience:  "warehouse-web",
	}
	listService := &service.ProductList{Repo: productRepo, Cache: cache.NewMemory()}

	return &testEnv{
		T:  t,
		E:  echo.New(),
		DB: db,
		P:  &ProductHandler{Repo: productRepo, List: listService},
		A:  &AuthHandler{Auth: authService},
	}
}

func (env *testEnv) doJSONRequest(method, target string, payload any) (*httptest.ResponseRecorder, echo.Context) {
	env.T.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(env.T, json.NewEncoder(&body).Encode(payload))
	}

	req := httptest.NewRequest(method, target, &body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, env.E.NewContext(req, rec)
}

func (env *testEnv) productCount() int64 {
	env.T.Helper()

	var count int64
	require.NoError(env.T, env.DB.Model(&models.Product{}).Count(&count).Error)
	return count
}

func (env *testEnv) userCount() int64 {
	env.T.Helper()

	var count int64
	require.NoError(env.T, env.DB.Model(&models.User{}).Count(&count).Error)
	return count
}
