package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	pkgstripe "github.com/helpinghands/backend/pkg/stripe"
)

// PaymentService creates card-only payment intents for donors.
type PaymentService interface {
	// CreatePaymentIntent returns the client secret the browser confirms with.
	// amount is in major units.
	CreatePaymentIntent(ctx context.Context, amount float64, currency string) (string, error)
}

// PaymentServiceImpl is the PaymentService implementation.
type PaymentServiceImpl struct {
	client pkgstripe.Client
}

// NewPaymentService creates a PaymentServiceImpl.
func NewPaymentService(client pkgstripe.Client) *PaymentServiceImpl {
	return &PaymentServiceImpl{client: client}
}

var _ PaymentService = (*PaymentServiceImpl)(nil)

func (s *PaymentServiceImpl) CreatePaymentIntent(ctx context.Context, amount float64, currency string) (string, error) {
	if math.IsNaN(amount) || amount < 1 {
		return "", ErrInvalidAmount
	}
	currency = strings.ToLower(strings.TrimSpace(currency))
	if currency == "" {
		currency = "usd"
	}

	pi, err := s.client.CreatePaymentIntent(ctx, pkgstripe.PaymentIntentParams{
		Amount:                  int64(math.Round(amount * 100)),
		Currency:                currency,
		PaymentMethodTypes:      []string{"card"},
		AutomaticPaymentMethods: false,
	})
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return pi.ClientSecret, nil
}
