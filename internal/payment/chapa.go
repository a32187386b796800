package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config represents Chapa payment provider configuration.
type Config struct {
	BaseURL     string
	SecretKey   string
	Currency    string
	ReturnURL   string
	CallbackURL string
}

// Client initializes hosted-checkout transactions with Chapa. The gateway
// only needs the redirect URL back; verification happens via the backend
// callback, outside this subsystem.
type Client struct {
	config Config
	http   *http.Client
}

// New creates a Chapa payment client.
func New(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = "https://api.chapa.co"
	}
	return &Client{
		config: config,
		http:   &http.Client{Timeout: 30 * time.Second},
	}
}

// InitRequest describes one transaction initialization.
type InitRequest struct {
	AmountCents int64
	Email       string
	FirstName   string
	LastName    string
	Phone       string
	TxRef       string
}

type initPayload struct {
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number,omitempty"`
	TxRef       string `json:"tx_ref"`
	ReturnURL   string `json:"return_url,omitempty"`
	CallbackURL string `json:"callback_url,omitempty"`
}

type initResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		CheckoutURL string `json:"checkout_url"`
	} `json:"data"`
}

// Transaction is the result of a successful initialization.
type Transaction struct {
	TxRef       string
	CheckoutURL string
}

// Initialize creates a hosted transaction and returns the checkout redirect
// URL. Any failure leaves nothing to roll back; the caller simply must not
// proceed to order creation.
func (c *Client) Initialize(ctx context.Context, in InitRequest) (*Transaction, error) {
	payload := initPayload{
		Amount:      formatAmount(in.AmountCents),
		Currency:    c.config.Currency,
		Email:       in.Email,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		PhoneNumber: in.Phone,
		TxRef:       in.TxRef,
		ReturnURL:   c.config.ReturnURL,
		CallbackURL: c.config.CallbackURL,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payment request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.config.BaseURL, "/")+"/v1/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build payment request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.SecretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("initialize payment: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read payment response: %w", err)
	}

	var parsed initResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode payment response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("initialize payment: status %d: %s", resp.StatusCode, parsed.Message)
	}
	if parsed.Status != "success" || parsed.Data.CheckoutURL == "" {
		return nil, fmt.Errorf("initialize payment: %s", parsed.Message)
	}

	return &Transaction{TxRef: in.TxRef, CheckoutURL: parsed.Data.CheckoutURL}, nil
}

// formatAmount renders cents as a decimal string, which is what the
// provider expects for the charge amount.
func formatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
