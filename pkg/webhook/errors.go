package webhook

import "errors"

var (
	// ErrDeliveryFailed indicates all retry attempts were exhausted.
	ErrDeliveryFailed = errors.New("webhook delivery failed")
	// ErrPermanentFailure indicates a 4xx response; retrying cannot help.
	ErrPermanentFailure = errors.New("permanent webhook failure")
	// ErrInvalidURL indicates the endpoint URL failed validation.
	ErrInvalidURL = errors.New("invalid webhook URL")
	// ErrInvalidPayload indicates the payload could not be serialized.
	ErrInvalidPayload = errors.New("invalid webhook payload")
)
