package stripeclient

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// headerIdempotentReplayed выставляется Stripe, когда ответ повторен по Idempotency-Key
const headerIdempotentReplayed = "Idempotent-Replayed"

// Client клиент Stripe PaymentIntents
type Client struct {
	intents IntentAPI
	log     Logger
}

// NewClient создает клиента поверх API Stripe с секретным ключом
func NewClient(secretKey string, log Logger) *Client {
	return NewClientWithAPI(&paymentintent.Client{
		B:   stripe.GetBackend(stripe.APIBackend),
		Key: secretKey,
	}, log)
}

// NewClientWithAPI создает клиента поверх произвольной реализации IntentAPI
func NewClientWithAPI(intents IntentAPI, log Logger) *Client {
	return &Client{intents: intents, log: log}
}

// CreateIntent создает payment intent с автоматическим выбором способа оплаты
func (c *Client) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(req.Amount),
		Currency: stripe.String(req.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	pi, err := c.intents.New(params)
	if err != nil {
		c.log.Error("Stripe: create payment intent (amount=%d %s) failed: %v", req.Amount, req.Currency, err)
		return nil, mapError(err)
	}

	intent := toIntent(pi)
	if intent.Replayed {
		c.log.Info("Stripe: payment intent %s replayed for idempotency key", pi.ID)
		return intent, nil
	}
	c.log.Info("Stripe: payment intent %s created (amount=%d %s)", pi.ID, pi.Amount, pi.Currency)
	return intent, nil
}

// UpdateIntent обновляет сумму и метаданные существующего intent
func (c *Client) UpdateIntent(ctx context.Context, id string, req IntentRequest) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(req.Amount),
		Currency: stripe.String(req.Currency),
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := c.intents.Update(id, params)
	if err != nil {
		c.log.Error("Stripe: update payment intent %s failed: %v", id, err)
		return nil, mapError(err)
	}

	c.log.Info("Stripe: payment intent %s updated (amount=%d %s)", pi.ID, pi.Amount, pi.Currency)
	return toIntent(pi), nil
}

// GetIntent получает актуальное состояние intent
func (c *Client) GetIntent(ctx context.Context, id string) (*Intent, error) {
	pi, err := c.intents.Get(id, &stripe.PaymentIntentParams{Params: stripe.Params{Context: ctx}})
	if err != nil {
		c.log.Warn("Stripe: get payment intent %s failed: %v", id, err)
		return nil, mapError(err)
	}
	return toIntent(pi), nil
}

func mapError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		switch stripeErr.Code {
		case stripe.ErrorCodeResourceMissing:
			return fmt.Errorf("%w: %s", ErrIntentNotFound, stripeErr.Msg)
		case stripe.ErrorCodePaymentIntentUnexpectedState:
			return fmt.Errorf("%w: %s", ErrIntentNotMutable, stripeErr.Msg)
		}
	}
	return fmt.Errorf("%w: %v", ErrRequest, err)
}

func toIntent(pi *stripe.PaymentIntent) *Intent {
	intent := &Intent{
		ID:             pi.ID,
		ClientSecret:   pi.ClientSecret,
		Amount:         pi.Amount,
		AmountReceived: pi.AmountReceived,
		Currency:       string(pi.Currency),
		Status:         string(pi.Status),
		Metadata:       pi.Metadata,
	}
	if pi.LastPaymentError != nil {
		intent.FailureMessage = pi.LastPaymentError.Msg
	}
	if pi.LastResponse != nil && pi.LastResponse.Header.Get(headerIdempotentReplayed) == "true" {
		intent.Replayed = true
	}
	return intent
}
