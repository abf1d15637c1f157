package email

import "errors"

var (
	ErrNoRecipient    = errors.New("email: no recipient")
	ErrDeliveryFailed = errors.New("email: delivery failed")
)
