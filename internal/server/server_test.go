package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"marketplace-api/internal/config"
	"marketplace-api/internal/dto"
	"marketplace-api/internal/model"
	"marketplace-api/internal/repository"
	"marketplace-api/internal/service"
	"marketplace-api/internal/testutil"

	glog "github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	server     *Server
	db         *gorm.DB
	userToken  string
	otherToken string
	adminToken string
	product    *model.Product
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.OpenDB(t)

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	authService := service.NewAuthService(config.JWT{Secret: "test-secret", TTLHours: 1}, userRepo)
	userService := service.NewUserService(userRepo)
	catalogService := service.NewCatalogService(db, productRepo, categoryRepo)
	orderService := service.NewOrderService(db, orderRepo, productRepo)

	srv := NewServer(config.Log{Level: "error"}, authService, userService, catalogService, orderService)

	env := &testEnv{server: srv, db: db}
	env.userToken = env.registerAndLogin(t, "alice", "alice@example.com", false)
	env.otherToken = env.registerAndLogin(t, "bob", "bob@example.com", false)
	env.adminToken = env.registerAndLogin(t, "root", "root@example.com", true)

	category := &model.Category{Name: "drinks"}
	require.NoError(t, db.Create(category).Error)
	inventory := &model.Inventory{Quantity: 10}
	require.NoError(t, db.Create(inventory).Error)
	env.product = &model.Product{
		Name:        "Cold Brew",
		CategoryID:  category.ID,
		InventoryID: inventory.ID,
		Price:       decimal.NewFromInt(9500),
	}
	require.NoError(t, db.Create(env.product).Error)

	return env
}

func (e *testEnv) registerAndLogin(t *testing.T, username, email string, admin bool) string {
	t.Helper()

	rec := e.request(t, http.MethodPost, "/api/auth/register", "",
		fmt.Sprintf(`{"username":%q,"email":%q,"password":"pw"}`, username, email))
	require.Equal(t, http.StatusCreated, rec.Code)

	if admin {
		require.NoError(t, e.db.Model(&model.User{}).
			Where("username = ?", username).
			Update("role", model.RoleAdmin).Error)
	}

	rec = e.request(t, http.MethodPost, "/api/auth/login", "",
		fmt.Sprintf(`{"username":%q,"password":"pw"}`, username))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data dto.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func (e *testEnv) request(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.server.Echo().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func (e *testEnv) orderBody() string {
	return fmt.Sprintf(
		`{"items":[{"productId":%d,"quantity":2}],"shipping":{"shippingAddress":"123 St","phone":"555-1"}}`,
		e.product.ID)
}

func TestServer_LogLevel(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, glog.ERROR, env.server.Echo().Logger.Level())
}

func TestServer_Health(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/api/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_OrderRoutes(t *testing.T) {
	env := newTestEnv(t)

	t.Run("unauthenticated request is rejected", func(t *testing.T) {
		rec := env.request(t, http.MethodPost, "/api/orders", "", env.orderBody())
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.False(t, decode(t, rec).Success)
	})

	rec := env.request(t, http.MethodPost, "/api/orders", env.userToken, env.orderBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decode(t, rec)
	require.True(t, created.Success)

	var detail dto.OrderDetail
	raw, err := json.Marshal(created.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &detail))
	require.Equal(t, model.OrderStatusPending, detail.Status)
	require.Len(t, detail.Items, 1)

	orderPath := fmt.Sprintf("/api/orders/%d", detail.ID)

	t.Run("empty items yields 400", func(t *testing.T) {
		rec := env.request(t, http.MethodPost, "/api/orders", env.userToken,
			`{"items":[],"shipping":{"shippingAddress":"123 St","phone":"555-1"}}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.False(t, decode(t, rec).Success)
	})

	t.Run("owner reads own order", func(t *testing.T) {
		rec := env.request(t, http.MethodGet, orderPath, env.userToken, "")
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("another user gets 403", func(t *testing.T) {
		rec := env.request(t, http.MethodGet, orderPath, env.otherToken, "")
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin reads any order", func(t *testing.T) {
		rec := env.request(t, http.MethodGet, orderPath, env.adminToken, "")
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("list is role scoped", func(t *testing.T) {
		rec := env.request(t, http.MethodGet, "/api/orders", env.otherToken, "")
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode(t, rec)
		require.NotNil(t, resp.Count)
		require.Zero(t, *resp.Count)

		rec = env.request(t, http.MethodGet, "/api/orders", env.adminToken, "")
		resp = decode(t, rec)
		require.NotNil(t, resp.Count)
		require.Equal(t, 1, *resp.Count)
	})

	t.Run("status update is admin only", func(t *testing.T) {
		rec := env.request(t, http.MethodPut, orderPath+"/status", env.userToken, `{"status":"shipped"}`)
		require.Equal(t, http.StatusForbidden, rec.Code)

		rec = env.request(t, http.MethodPut, orderPath+"/status", env.adminToken, `{"status":"archived"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		rec = env.request(t, http.MethodPut, orderPath+"/status", env.adminToken, `{"status":"shipped"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("payment upsert", func(t *testing.T) {
		rec := env.request(t, http.MethodPut, orderPath+"/payment", env.userToken,
			`{"paymentMethod":"card","paymentStatus":"paid"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = env.request(t, http.MethodPut, orderPath+"/payment", env.userToken,
			`{"paymentMethod":"card"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("delete is admin only and cascades", func(t *testing.T) {
		rec := env.request(t, http.MethodDelete, orderPath, env.userToken, "")
		require.Equal(t, http.StatusForbidden, rec.Code)

		rec = env.request(t, http.MethodDelete, orderPath, env.adminToken, "")
		require.Equal(t, http.StatusOK, rec.Code)

		rec = env.request(t, http.MethodGet, orderPath, env.adminToken, "")
		require.Equal(t, http.StatusNotFound, rec.Code)

		rec = env.request(t, http.MethodDelete, orderPath, env.adminToken, "")
		require.Equal(t, http.StatusNotFound, rec.Code)

		resp := decode(t, rec)
		require.False(t, resp.Success)
		require.Equal(t, "order not found", resp.Message)
		require.Equal(t, http.StatusText(http.StatusNotFound), resp.Error)
	})
}

func TestServer_CartStub(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/cart/add", env.userToken,
		`{"productId":1,"name":"Cold Brew","price":"9500","quantity":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, decode(t, rec).Success)

	rec = env.request(t, http.MethodGet, "/api/cart", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServer_AdminGuards(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/products", env.userToken,
		`{"name":"Mug","category_id":1,"price":"500"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/users", env.userToken, "")
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/users", env.adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/users/me", env.userToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	require.True(t, resp.Success)
}
