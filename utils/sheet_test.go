package utils

import (
	"booking_manager/model"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSheetClient_FetchInviteCodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "codes", r.URL.Query().Get("action"))
		require.Equal(t, "Bearer tok_123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string][]string{
			"codes": {"SLANUP2025", "DIWVIP01"},
		})
	}))
	defer srv.Close()

	codes, err := NewSheetClient(srv.URL, "tok_123").FetchInviteCodes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"SLANUP2025", "DIWVIP01"}, codes)
}

func TestSheetClient_FetchInviteCodesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewSheetClient(srv.URL, "bad").FetchInviteCodes(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestSheetClient_UpsertBooking(t *testing.T) {
	var row map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&row))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	b := model.Booking{
		ID:              "order_abc",
		InviteCode:      "SLANUP2025",
		CustomerName:    "Asha Rao",
		TicketType:      "ultimate",
		TicketCount:     1,
		TotalAmount:     decimal.NewFromInt(1699),
		PaymentStatus:   model.StatusCompleted,
		ReferenceNumber: "DIW123456ABCD",
		CreatedAt:       time.Date(2025, 10, 18, 19, 0, 0, 0, time.UTC),
	}
	err := NewSheetClient(srv.URL, "tok_123").UpsertBooking(context.Background(), b)
	require.NoError(t, err)

	assert.Equal(t, "SLANUP2025", row["inviteCode"], "rows are keyed by invite code")
	assert.Equal(t, "1699.00", row["totalAmount"])
	assert.Equal(t, "completed", row["paymentStatus"])
	assert.Equal(t, "2025-10-18T19:00:00Z", row["bookedAt"])
}
