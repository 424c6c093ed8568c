package gateway

import (
	"booking_manager/model"
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Config struct {
	AppID      string
	SecretKey  string
	BaseURL    string
	ReturnURL  string
	NotifyURL  string
	APIVersion string
}

// Client wraps the payment gateway's order APIs and the webhook signature
// scheme.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2022-09-01"
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

type OrderRequest struct {
	OrderID       string
	OrderAmount   string
	Currency      string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	OrderNote     string
}

type OrderSession struct {
	PaymentSessionID string `json:"payment_session_id"`
	PaymentLink      string `json:"payment_link"`
	OrderStatus      string `json:"order_status"`
}

// CreateOrder registers the booking with the gateway and returns the checkout
// session the client needs to open the payment page.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*OrderSession, error) {
	if req.Currency == "" {
		req.Currency = "INR"
	}
	payload := map[string]interface{}{
		"order_id":       req.OrderID,
		"order_amount":   req.OrderAmount,
		"order_currency": req.Currency,
		"order_note":     req.OrderNote,
		"customer_details": map[string]string{
			"customer_id":    req.OrderID,
			"customer_name":  req.CustomerName,
			"customer_email": req.CustomerEmail,
			"customer_phone": req.CustomerPhone,
		},
		"order_meta": map[string]string{
			"return_url": c.cfg.ReturnURL + "?order_id={order_id}",
			"notify_url": c.cfg.NotifyURL,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.setHeaders(httpReq)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gateway create order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("gateway create order: status %d: %s", resp.StatusCode, msg)
	}

	var session OrderSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("gateway create order: decode: %w", err)
	}
	return &session, nil
}

// OrderStatus queries the gateway directly for the authoritative order state
// (PAID, ACTIVE, EXPIRED, ...). This is what the return-redirect verification
// trusts instead of the redirect itself.
func (c *Client) OrderStatus(ctx context.Context, orderID string) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/orders/"+orderID, nil)
	if err != nil {
		return "", err
	}
	c.setHeaders(httpReq)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("gateway order status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("gateway order status: status %d: %s", resp.StatusCode, msg)
	}

	var out struct {
		OrderID     string `json:"order_id"`
		OrderStatus string `json:"order_status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("gateway order status: decode: %w", err)
	}
	return out.OrderStatus, nil
}

// Sign computes the webhook signature: base64 of an HMAC-SHA256 over the
// canonical field concatenation.
func (c *Client) Sign(p model.WebhookPayload) string {
	data := p.OrderID + p.OrderAmount + p.ReferenceID + p.TxStatus + p.PaymentMode + p.TxMsg + p.TxTime
	h := hmac.New(sha256.New, []byte(c.cfg.SecretKey))
	h.Write([]byte(data))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

func (c *Client) VerifySignature(p model.WebhookPayload) bool {
	return hmac.Equal([]byte(c.Sign(p)), []byte(p.Signature))
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-version", c.cfg.APIVersion)
	req.Header.Set("x-client-id", c.cfg.AppID)
	req.Header.Set("x-client-secret", c.cfg.SecretKey)
}
