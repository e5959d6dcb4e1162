package swap

import "errors"

var (
	// ErrInvalidInput is returned by AssetInput.Validate before any
	// network call is attempted.
	ErrInvalidInput = errors.New("invalid swap input")

	// ErrUnableToCreateTx means the provider accepted a route but
	// returned no executable call data for it. Not retried.
	ErrUnableToCreateTx = errors.New("unable to create swap transaction")

	// ErrOrderTooSmall means the input cannot cover the provider's
	// minimum fee.
	ErrOrderTooSmall = errors.New("order size too small")

	// ErrMaxBuyExceeded means the buy amount exceeds the pool's
	// configured per-trade cap.
	ErrMaxBuyExceeded = errors.New("max buy exceeded")
)
