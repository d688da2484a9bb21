package stripeclient

import "errors"

var (
	// ErrIntentNotFound Stripe не знает такой payment intent
	ErrIntentNotFound = errors.New("stripe client: payment intent not found")

	// ErrIntentNotMutable intent уже оплачен или отменен
	ErrIntentNotMutable = errors.New("stripe client: payment intent can no longer be updated")

	// ErrRequest Stripe отклонил запрос или недоступен
	ErrRequest = errors.New("stripe client: request failed")

	// ErrInvalidSignature подпись webhook не прошла проверку
	ErrInvalidSignature = errors.New("stripe client: invalid webhook signature")

	// ErrInvalidPayload тело webhook не удалось разобрать
	ErrInvalidPayload = errors.New("stripe client: invalid webhook payload")
)
