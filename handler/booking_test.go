package handler_test

import (
	"booking_manager/constants"
	"booking_manager/model"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBooking(t *testing.T) {
	t.Run("valid request returns the booking and a checkout session", func(t *testing.T) {
		env := newTestEnv(t, "SLANUP2025")

		resp, body := env.request(t, http.MethodPost, "/api/v1/bookings/", env.createInput("slanup2025"), nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		assert.Equal(t, "session_test", body["paymentSessionId"])
		assert.NotEmpty(t, body["paymentLink"])

		booking := body["booking"].(map[string]interface{})
		assert.Equal(t, "SLANUP2025", booking["inviteCode"])
		assert.Equal(t, "pending", booking["paymentStatus"])
		assert.Regexp(t, `^DIW\d{6}[A-Z0-9]{4}$`, booking["referenceNumber"])

		assert.Equal(t, booking["id"], env.checkout.lastReq.OrderID)
		assert.Equal(t, "1699.00", env.checkout.lastReq.OrderAmount)
	})

	t.Run("validation failure", func(t *testing.T) {
		env := newTestEnv(t, "SLANUP2025")

		input := env.createInput("SLANUP2025")
		input["customerEmail"] = "not-an-email"
		resp, _ := env.request(t, http.MethodPost, "/api/v1/bookings/", input, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("invalid invite code", func(t *testing.T) {
		env := newTestEnv(t, "SLANUP2025")

		resp, body := env.request(t, http.MethodPost, "/api/v1/bookings/", env.createInput("WRONGCODE"), nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, constants.INVALID_INVITE_CODE, body["message"])
	})

	t.Run("used invite code answers conflict with the existing booking", func(t *testing.T) {
		env := newTestEnv(t, "SLANUP2025")

		resp, first := env.request(t, http.MethodPost, "/api/v1/bookings/", env.createInput("SLANUP2025"), nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		firstID := first["booking"].(map[string]interface{})["id"]

		resp, body := env.request(t, http.MethodPost, "/api/v1/bookings/", env.createInput("SLANUP2025"), nil)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, constants.INVITE_CODE_USED, body["message"])
		assert.Equal(t, firstID, body["booking"].(map[string]interface{})["id"])
	})

	t.Run("ticket count over the maximum", func(t *testing.T) {
		env := newTestEnv(t, "SLANUP2025")

		input := env.createInput("SLANUP2025")
		input["ticketCount"] = 3
		resp, body := env.request(t, http.MethodPost, "/api/v1/bookings/", input, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, constants.INVALID_TICKET_COUNT, body["message"])
	})

	t.Run("gateway outage keeps the pending booking and answers 502", func(t *testing.T) {
		env := newTestEnv(t, "SLANUP2025")
		env.checkout.err = errors.New("gateway timeout")

		resp, body := env.request(t, http.MethodPost, "/api/v1/bookings/", env.createInput("SLANUP2025"), nil)
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		assert.Equal(t, constants.PAYMENT_GATEWAY_ERROR, body["message"])

		// The row exists and will free the code once it expires.
		all, err := env.store.ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, model.StatusPending, all[0].PaymentStatus)
	})
}

func TestGetBooking(t *testing.T) {
	env := newTestEnv(t, "SLANUP2025")

	t.Run("unknown order", func(t *testing.T) {
		resp, body := env.request(t, http.MethodGet, "/api/v1/bookings/"+uuid.NewString(), nil, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, constants.BOOKING_NOT_FOUND, body["message"])
	})

	t.Run("existing order", func(t *testing.T) {
		b := seedPendingBooking(env)
		resp, body := env.request(t, http.MethodGet, "/api/v1/bookings/"+b.ID, nil, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		data := body["data"].(map[string]interface{})
		assert.Equal(t, b.ID, data["id"])
		assert.Equal(t, b.ReferenceNumber, data["referenceNumber"])
	})
}

func TestCheckInvite(t *testing.T) {
	env := newTestEnv(t, "SLANUP2025")

	t.Run("unused valid code", func(t *testing.T) {
		resp, body := env.request(t, http.MethodPost, "/api/v1/invite/check",
			map[string]string{"inviteCode": "SLANUP2025"}, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		data := body["data"].(map[string]interface{})
		assert.Equal(t, true, data["isValid"])
		assert.Equal(t, false, data["isUsed"])
	})

	t.Run("invalid code", func(t *testing.T) {
		resp, body := env.request(t, http.MethodPost, "/api/v1/invite/check",
			map[string]string{"inviteCode": "GHOST99"}, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		data := body["data"].(map[string]interface{})
		assert.Equal(t, false, data["isValid"])
	})

	t.Run("code tied to a live booking", func(t *testing.T) {
		seedPendingBooking(env)
		resp, body := env.request(t, http.MethodPost, "/api/v1/invite/check",
			map[string]string{"inviteCode": " slanup2025 "}, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		data := body["data"].(map[string]interface{})
		assert.Equal(t, true, data["isUsed"])
		assert.NotNil(t, data["booking"])
	})
}
