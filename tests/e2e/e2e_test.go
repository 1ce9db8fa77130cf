//go:build integration

package e2e

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/prajapatkavitha/restaurant-management-project/internal/config"
	"github.com/prajapatkavitha/restaurant-management-project/internal/infra"
	"github.com/prajapatkavitha/restaurant-management-project/internal/router"
	"github.com/prajapatkavitha/restaurant-management-project/internal/worker"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Suite setup ──────────────────────────────────────────────────────────────

type testEnv struct {
	server     *httptest.Server
	adminToken string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("restaurant_test"),
		tcPostgres.WithUsername("restaurant"),
		tcPostgres.WithPassword("restaurant"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:                  8000,
		Env:                   "test",
		JWTSecret:             "test-secret-key",
		JWTExpirationHours:    8,
		JWTRefreshHours:       24,
		DatabaseURL:           pgURL,
		RedisURL:              rdURL,
		WorkerPoolSize:        1,
		ReportTimezone:        "UTC",
		ReportCacheTTLMinutes: 0,
		ReportStoragePath:     t.TempDir(),
		CouponCodeLength:      10,
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed admin user via bcrypt password (plaintext: "password")
	require.NoError(t, db.Exec(`INSERT INTO users (id, username, full_name, email, password_hash, role, active, created_at, updated_at)
		VALUES (gen_random_uuid(), 'admin', 'Admin E2E', 'admin@e2e.test',
		        '$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy', 'admin', true, NOW(), NOW())
		ON CONFLICT DO NOTHING`).Error)

	dispatcher := worker.NewDispatcher(rdb)
	r := router.New(cfg, db, rdb, dispatcher)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin", "password": "password"}), "")
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{server: srv, adminToken: loginBody.AccessToken}
}

func (env *testEnv) createDish(t *testing.T, name, price string) string {
	t.Helper()
	catResp := do(t, env.server, "POST", "/v1/categories",
		jsonBody(t, map[string]any{"name": name + " Category"}), env.adminToken)
	require.Equal(t, http.StatusCreated, catResp.StatusCode)
	var cat struct {
		ID string `json:"id"`
	}
	decodeJSON(t, catResp, &cat)

	dishResp := do(t, env.server, "POST", "/v1/menu",
		jsonBody(t, map[string]any{"name": name, "price": price, "category_id": cat.ID}), env.adminToken)
	require.Equal(t, http.StatusCreated, dishResp.StatusCode)
	var dish struct {
		ID string `json:"id"`
	}
	decodeJSON(t, dishResp, &dish)
	return dish.ID
}

func (env *testEnv) registerCustomer(t *testing.T, username string) string {
	t.Helper()
	regResp := do(t, env.server, "POST", "/v1/auth/register",
		jsonBody(t, map[string]string{
			"username": username, "full_name": "E2E Customer",
			"email": username + "@e2e.test", "password": "customer123",
		}), "")
	require.Equal(t, http.StatusCreated, regResp.StatusCode)
	regResp.Body.Close()

	loginResp := do(t, env.server, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": username, "password": "customer123"}), "")
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var body struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &body)
	return body.AccessToken
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_OrderLifecycle(t *testing.T) {
	env := setupTestEnv(t)
	dishID := env.createDish(t, "Margherita", "12.00")
	customerToken := env.registerCustomer(t, "diner1")

	// Customer places an order.
	orderResp := do(t, env.server, "POST", "/v1/orders",
		jsonBody(t, map[string]any{
			"table_number": 4,
			"items":        []map[string]any{{"menu_item_id": dishID, "quantity": 2}},
		}), customerToken)
	require.Equal(t, http.StatusCreated, orderResp.StatusCode)
	var order struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Total  string `json:"total"`
	}
	decodeJSON(t, orderResp, &order)
	assert.Equal(t, "pending", order.Status)
	total, err := decimal.NewFromString(order.Total)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(24)), "total = %s", order.Total)

	// Customers cannot move the workflow.
	forbidden := do(t, env.server, "PATCH", "/v1/orders/"+order.ID+"/status",
		jsonBody(t, map[string]string{"status": "in_progress"}), customerToken)
	assert.Equal(t, http.StatusForbidden, forbidden.StatusCode)
	forbidden.Body.Close()

	// Admin walks it through to completion.
	for _, next := range []string{"in_progress", "ready", "completed"} {
		resp := do(t, env.server, "PATCH", "/v1/orders/"+order.ID+"/status",
			jsonBody(t, map[string]string{"status": next}), env.adminToken)
		require.Equal(t, http.StatusOK, resp.StatusCode, "transition to %s", next)
		resp.Body.Close()
	}

	// Completed is terminal.
	conflict := do(t, env.server, "PATCH", "/v1/orders/"+order.ID+"/status",
		jsonBody(t, map[string]string{"status": "cancelled"}), env.adminToken)
	assert.Equal(t, http.StatusConflict, conflict.StatusCode)
	conflict.Body.Close()

	// Feedback is now accepted, once.
	fbResp := do(t, env.server, "POST", "/v1/orders/"+order.ID+"/feedback",
		jsonBody(t, map[string]any{"rating": 5, "comment": "great"}), customerToken)
	require.Equal(t, http.StatusCreated, fbResp.StatusCode)
	fbResp.Body.Close()

	dup := do(t, env.server, "POST", "/v1/orders/"+order.ID+"/feedback",
		jsonBody(t, map[string]any{"rating": 1}), customerToken)
	assert.Equal(t, http.StatusConflict, dup.StatusCode)
	dup.Body.Close()
}

func TestE2E_CouponIssueAndRedeem(t *testing.T) {
	env := setupTestEnv(t)
	customerToken := env.registerCustomer(t, "diner2")

	issueResp := do(t, env.server, "POST", "/v1/coupons",
		jsonBody(t, map[string]any{"discount_percent": "15"}), env.adminToken)
	require.Equal(t, http.StatusCreated, issueResp.StatusCode)
	var coupon struct {
		Code string `json:"code"`
	}
	decodeJSON(t, issueResp, &coupon)
	require.Len(t, coupon.Code, 10)

	// Customers may redeem but not issue.
	denied := do(t, env.server, "POST", "/v1/coupons",
		jsonBody(t, map[string]any{"discount_percent": "15"}), customerToken)
	assert.Equal(t, http.StatusForbidden, denied.StatusCode)
	denied.Body.Close()

	redeemResp := do(t, env.server, "POST", "/v1/coupons/redeem",
		jsonBody(t, map[string]string{"code": coupon.Code}), customerToken)
	require.Equal(t, http.StatusOK, redeemResp.StatusCode)
	var redeemed struct {
		DiscountPercent decimal.Decimal `json:"discount_percent"`
	}
	decodeJSON(t, redeemResp, &redeemed)
	assert.True(t, redeemed.DiscountPercent.Equal(decimal.NewFromInt(15)))

	missing := do(t, env.server, "POST", "/v1/coupons/redeem",
		jsonBody(t, map[string]string{"code": "NOPE123456"}), customerToken)
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
	missing.Body.Close()
}

func TestE2E_ReservationsAndReports(t *testing.T) {
	env := setupTestEnv(t)
	customerToken := env.registerCustomer(t, "diner3")

	resResp := do(t, env.server, "POST", "/v1/reservations",
		jsonBody(t, map[string]any{"table_number": 8, "date": "2026-10-01", "time": "20:00", "guest_count": 2}),
		customerToken)
	require.Equal(t, http.StatusCreated, resResp.StatusCode)
	resResp.Body.Close()

	// Reports are staff-only.
	denied := do(t, env.server, "GET", "/v1/reports/top-customers", nil, customerToken)
	assert.Equal(t, http.StatusForbidden, denied.StatusCode)
	denied.Body.Close()

	topResp := do(t, env.server, "GET", "/v1/reports/top-customers", nil, env.adminToken)
	require.Equal(t, http.StatusOK, topResp.StatusCode)
	topResp.Body.Close()

	sumResp := do(t, env.server, "GET", "/v1/reports/daily-summary?date=2026-10-01", nil, env.adminToken)
	require.Equal(t, http.StatusOK, sumResp.StatusCode)
	var summary struct {
		TotalOrders int `json:"total_orders"`
	}
	decodeJSON(t, sumResp, &summary)
	assert.Equal(t, 0, summary.TotalOrders)
}
