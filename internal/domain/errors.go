package domain

import "errors"

var (
	ErrKeyNotFound         = errors.New("key not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrCartEmpty           = errors.New("cart is empty")
	ErrInvalidCheckoutStep = errors.New("invalid checkout step")
	ErrChatBusy            = errors.New("chat reply already pending")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidOrderID      = errors.New("Please enter a valid Order ID (e.g., GB-8492)")
)
