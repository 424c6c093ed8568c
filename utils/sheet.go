package utils

import (
	"booking_manager/model"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SheetClient talks to the spreadsheet web endpoint that doubles as the
// invite-code source of truth and the sales ledger. Rows are keyed by invite
// code, so re-sending a booking is an upsert, not a duplicate.
type SheetClient struct {
	endpoint string
	token    string
	http     *http.Client
}

func NewSheetClient(endpoint, token string) *SheetClient {
	return &SheetClient{
		endpoint: endpoint,
		token:    token,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchInviteCodes pulls the flat list of valid codes.
func (s *SheetClient) FetchInviteCodes(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?action=codes", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sheet fetch codes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("sheet fetch codes: status %d: %s", resp.StatusCode, msg)
	}

	var out struct {
		Codes []string `json:"codes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("sheet fetch codes: decode: %w", err)
	}
	return out.Codes, nil
}

// UpsertBooking writes the booking row keyed by its invite code.
func (s *SheetClient) UpsertBooking(ctx context.Context, b model.Booking) error {
	row := map[string]interface{}{
		"inviteCode":      b.InviteCode,
		"referenceNumber": b.ReferenceNumber,
		"customerName":    b.CustomerName,
		"customerEmail":   b.CustomerEmail,
		"customerPhone":   b.CustomerPhone,
		"ticketType":      b.TicketType,
		"ticketCount":     b.TicketCount,
		"totalAmount":     b.TotalAmount.StringFixed(2),
		"paymentStatus":   string(b.PaymentStatus),
		"bookedAt":        b.CreatedAt.Format(time.RFC3339),
	}
	body, err := json.Marshal(row)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("sheet upsert: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("sheet upsert: status %d: %s", resp.StatusCode, msg)
	}
	return nil
}
