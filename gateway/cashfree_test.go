package gateway

import (
	"booking_manager/model"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) *Client {
	return NewClient(Config{
		AppID:     "app_test",
		SecretKey: "s3cret",
		BaseURL:   baseURL,
		ReturnURL: "https://slanup.example/diwali/payment/return",
		NotifyURL: "https://slanup.example/cashfree/webhook",
	})
}

func TestClient_CreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "app_test", r.Header.Get("x-client-id"))
		assert.Equal(t, "s3cret", r.Header.Get("x-client-secret"))
		assert.Equal(t, "2022-09-01", r.Header.Get("x-api-version"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "order_abc", body["order_id"])
		assert.Equal(t, "1699.00", body["order_amount"])
		assert.Equal(t, "INR", body["order_currency"], "currency defaults")

		meta := body["order_meta"].(map[string]interface{})
		assert.Equal(t, "https://slanup.example/cashfree/webhook", meta["notify_url"])
		assert.Contains(t, meta["return_url"], "order_id={order_id}")

		json.NewEncoder(w).Encode(map[string]string{
			"payment_session_id": "session_xyz",
			"payment_link":       "https://payments.example/session_xyz",
			"order_status":       "ACTIVE",
		})
	}))
	defer srv.Close()

	session, err := testClient(srv.URL).CreateOrder(context.Background(), OrderRequest{
		OrderID:       "order_abc",
		OrderAmount:   "1699.00",
		CustomerName:  "Asha Rao",
		CustomerEmail: "asha@example.com",
		CustomerPhone: "9876543210",
	})
	require.NoError(t, err)
	assert.Equal(t, "session_xyz", session.PaymentSessionID)
	assert.Equal(t, "ACTIVE", session.OrderStatus)
}

func TestClient_CreateOrder_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid credentials"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CreateOrder(context.Background(), OrderRequest{OrderID: "order_abc", OrderAmount: "899.00"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestClient_OrderStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders/order_abc", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{
			"order_id":     "order_abc",
			"order_status": "PAID",
		})
	}))
	defer srv.Close()

	status, err := testClient(srv.URL).OrderStatus(context.Background(), "order_abc")
	require.NoError(t, err)
	assert.Equal(t, "PAID", status)
}

func TestClient_SignatureRoundTrip(t *testing.T) {
	c := testClient("http://unused")

	p := model.WebhookPayload{
		OrderID:     "order_abc",
		OrderAmount: "1699.00",
		ReferenceID: "ref_777",
		TxStatus:    model.TxStatusSuccess,
		PaymentMode: "UPI",
		TxMsg:       "Transaction Successful",
		TxTime:      "2025-10-18 19:05:00",
	}
	p.Signature = c.Sign(p)
	assert.True(t, c.VerifySignature(p))

	t.Run("tampered amount fails verification", func(t *testing.T) {
		tampered := p
		tampered.OrderAmount = "1.00"
		assert.False(t, c.VerifySignature(tampered))
	})

	t.Run("wrong secret fails verification", func(t *testing.T) {
		other := NewClient(Config{SecretKey: "different"})
		assert.False(t, other.VerifySignature(p))
	})

	t.Run("empty signature fails verification", func(t *testing.T) {
		unsigned := p
		unsigned.Signature = ""
		assert.False(t, c.VerifySignature(unsigned))
	})
}
