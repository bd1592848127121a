package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Client talks to the hosted payments API. Construct it once at startup;
// a nil Client means the payment flow runs in disabled mode.
type Client struct {
	httpClient *http.Client
	secretKey  string
	baseURL    string
	logger     zerolog.Logger
}

func NewClient(secretKey, baseURL string, logger zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = "https://api.stripe.com"
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		secretKey:  secretKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		logger:     logger.With().Str("component", "stripe_client").Logger(),
	}
}

// CheckoutParams describes a single-item hosted checkout page.
type CheckoutParams struct {
	ProductName string
	Description string
	Currency    string
	AmountCents int64
	SuccessURL  string
	CancelURL   string
}

// CheckoutSession is the subset of the session object we use.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateCheckoutSession creates a one-off payment session and returns
// the hosted checkout URL.
func (c *Client) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][price_data][currency]", params.Currency)
	form.Set("line_items[0][price_data][product_data][name]", params.ProductName)
	form.Set("line_items[0][price_data][product_data][description]", params.Description)
	form.Set("line_items[0][price_data][unit_amount]", fmt.Sprint(params.AmountCents))
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.secretKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return nil, fmt.Errorf("checkout session returned status %d: %s", resp.StatusCode, apiErr.Error.Message)
	}

	var session CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("decode checkout session: %w", err)
	}
	if session.URL == "" {
		return nil, fmt.Errorf("checkout session missing url")
	}
	return &session, nil
}
