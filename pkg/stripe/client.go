// Package stripe provides a lightweight Stripe API client.
// Uses raw HTTP calls (no SDK); only PaymentIntents are needed.
package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.stripe.com"

// PaymentIntentParams are the inputs for POST /v1/payment_intents.
type PaymentIntentParams struct {
	Amount             int64  // minor units (cents)
	Currency           string // "usd"
	PaymentMethodTypes []string
	// AutomaticPaymentMethods is sent as automatic_payment_methods[enabled].
	AutomaticPaymentMethods bool
	Metadata                map[string]string
}

// PaymentIntent is the subset of the Stripe object the backend reads.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

// Client is the Stripe API surface used by the payment service.
type Client interface {
	// CreatePaymentIntent creates a PaymentIntent that the browser confirms
	// with the returned client secret.
	CreatePaymentIntent(ctx context.Context, params PaymentIntentParams) (*PaymentIntent, error)
}

// RealClient is the raw HTTP implementation of Client.
type RealClient struct {
	SecretKey  string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a RealClient. An empty secretKey yields a client whose
// calls fail with ErrNotConfigured.
func NewClient(secretKey string) *RealClient {
	return &RealClient{
		SecretKey:  secretKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

var _ Client = (*RealClient)(nil)

// ErrNotConfigured is returned when no secret key is set.
var ErrNotConfigured = errors.New("stripe: not configured")

// APIError is an error object returned by Stripe.
type APIError struct {
	StatusCode int
	Type       string `json:"type"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("stripe: http %d", e.StatusCode)
	}
	return e.Message
}

// CreatePaymentIntent calls POST /v1/payment_intents.
func (c *RealClient) CreatePaymentIntent(ctx context.Context, params PaymentIntentParams) (*PaymentIntent, error) {
	if c.SecretKey == "" {
		return nil, ErrNotConfigured
	}

	data := url.Values{}
	data.Set("amount", strconv.FormatInt(params.Amount, 10))
	data.Set("currency", params.Currency)
	for _, t := range params.PaymentMethodTypes {
		data.Add("payment_method_types[]", t)
	}
	data.Set("automatic_payment_methods[enabled]", strconv.FormatBool(params.AutomaticPaymentMethods))
	for k, v := range params.Metadata {
		data.Set("metadata["+k+"]", v)
	}

	var pi PaymentIntent
	if err := c.postForm(ctx, "/v1/payment_intents", data, &pi); err != nil {
		return nil, err
	}
	return &pi, nil
}

func (c *RealClient) postForm(ctx context.Context, path string, data url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(data.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.SecretKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error APIError `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		errResp.Error.StatusCode = resp.StatusCode
		return &errResp.Error
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
