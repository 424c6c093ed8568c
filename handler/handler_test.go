package handler_test

import (
	"booking_manager/config"
	"booking_manager/gateway"
	"booking_manager/handler"
	"booking_manager/helper"
	"booking_manager/model"
	"booking_manager/router"
	"booking_manager/security"
	"booking_manager/testutil"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

const (
	webhookSecret = "test-webhook-secret"
	jwtSecret     = "test-jwt-secret"
	adminPassword = "letmein"
)

type codeRegistry map[string]bool

func (r codeRegistry) IsValid(_ context.Context, code string) bool {
	return r[model.NormalizeInviteCode(code)]
}

type noopNotifier struct{}

func (noopNotifier) BookingCompleted(model.Booking)      {}
func (noopNotifier) PaymentFailed(model.Booking, string) {}

type fakeCheckout struct {
	err     error
	lastReq gateway.OrderRequest
}

func (f *fakeCheckout) CreateOrder(_ context.Context, req gateway.OrderRequest) (*gateway.OrderSession, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &gateway.OrderSession{
		PaymentSessionID: "session_test",
		PaymentLink:      "https://payments.example/session_test",
		OrderStatus:      "ACTIVE",
	}, nil
}

type testEnv struct {
	app      *fiber.App
	store    *testutil.MemStore
	wlog     *testutil.MemWebhookLog
	gw       *gateway.Client
	checkout *fakeCheckout
}

func newTestEnv(t *testing.T, codes ...string) *testEnv {
	return newTestEnvWithGateway(t, "http://unused", codes...)
}

// newTestEnvWithGateway points the reconciler's gateway client at baseURL;
// tests of the verify endpoint pass an httptest server here.
func newTestEnvWithGateway(t *testing.T, baseURL string, codes ...string) *testEnv {
	t.Helper()
	t.Setenv("JWT_SECRET", jwtSecret)

	set := make(codeRegistry, len(codes))
	for _, c := range codes {
		set[c] = true
	}

	store := testutil.NewMemStore()
	wlog := testutil.NewMemWebhookLog()
	clock := helper.NewSystemClock()
	gw := gateway.NewClient(gateway.Config{AppID: "app_test", SecretKey: webhookSecret, BaseURL: baseURL})

	manager := helper.NewBookingManager(store, set, helper.NewReferenceGenerator("DIW", clock), clock)
	reconciler := helper.NewReconciler(store, wlog, gw, noopNotifier{}, clock)

	hash, err := helper.HashPassword(adminPassword)
	require.NoError(t, err)
	cfg := config.App{
		AdminUsername:     "admin",
		AdminPasswordHash: hash,
		JWTSecret:         jwtSecret,
		EventName:         "Slanup Diwali Night",
		EventPrefix:       "DIW",
	}

	checkout := &fakeCheckout{}
	app := fiber.New()
	router.SetupRoutes(app, handler.New(cfg, manager, reconciler, checkout), security.NewRateLimiter(nil, 30, time.Minute))

	return &testEnv{app: app, store: store, wlog: wlog, gw: gw, checkout: checkout}
}

func (e *testEnv) request(t *testing.T, method, path string, body interface{}, headers map[string]string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func (e *testEnv) createInput(code string) map[string]interface{} {
	return map[string]interface{}{
		"inviteCode":    code,
		"customerName":  "Asha Rao",
		"customerEmail": "asha@example.com",
		"customerPhone": "9876543210",
		"ticketType":    "ultimate",
		"ticketCount":   1,
	}
}
