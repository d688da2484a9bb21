package intents

import "errors"

var (
	// ErrIntentNotFound процессор не знает переданный payment intent
	ErrIntentNotFound = errors.New("payment intent not found")

	// ErrIntentNotMutable intent уже оплачен или отменен, менять его нельзя
	ErrIntentNotMutable = errors.New("payment intent can no longer be updated")
)
