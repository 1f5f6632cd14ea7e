package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Order is the provider's handle for a created order. It is returned to
// the client so the checkout UI can open the payment flow; the server
// keeps no copy.
type Order struct {
	ID     string
	Amount int64 // minor units (paise)
}

// OrderCreator creates an order with the payment provider.
type OrderCreator interface {
	CreateOrder(ctx context.Context, amountPaise int64) (Order, error)
}

const razorpayBaseURL = "https://api.razorpay.com/v1"

// Ensure the client implements the port at compile time.
var _ OrderCreator = (*RazorpayClient)(nil)

// RazorpayClient creates orders through the Razorpay Orders API using
// basic auth with the key ID and secret.
type RazorpayClient struct {
	keyID     string
	keySecret string
	baseURL   string
	http      *http.Client
}

// NewRazorpayClient returns a client for the given API credentials.
func NewRazorpayClient(keyID, keySecret string) *RazorpayClient {
	return &RazorpayClient{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   razorpayBaseURL,
		http:      &http.Client{Timeout: 15 * time.Second},
	}
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type createOrderResponse struct {
	ID     string `json:"id"`
	Amount int64  `json:"amount"`
	Error  struct {
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder submits an order for the given amount in paise with a
// generated receipt identifier and returns the provider's handle.
func (c *RazorpayClient) CreateOrder(ctx context.Context, amountPaise int64) (Order, error) {
	body, err := json.Marshal(createOrderRequest{
		Amount:   amountPaise,
		Currency: "INR",
		Receipt:  "receipt_" + uuid.NewString(),
	})
	if err != nil {
		return Order{}, fmt.Errorf("razorpay: encode order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return Order{}, fmt.Errorf("razorpay: build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return Order{}, fmt.Errorf("razorpay: create order: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Order{}, fmt.Errorf("razorpay: read order response: %w", err)
	}

	var out createOrderResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return Order{}, fmt.Errorf("razorpay: decode order response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if out.Error.Description != "" {
			return Order{}, fmt.Errorf("razorpay: create order: %s", out.Error.Description)
		}
		return Order{}, fmt.Errorf("razorpay: create order: unexpected status %d", resp.StatusCode)
	}

	return Order{ID: out.ID, Amount: out.Amount}, nil
}
