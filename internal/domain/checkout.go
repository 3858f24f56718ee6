package domain

import "context"

type CheckoutStep int

const (
	StepShipping     CheckoutStep = 1
	StepPayment      CheckoutStep = 2
	StepConfirmation CheckoutStep = 3
)

type PaymentDetails struct {
	CardNumber string `json:"card_number"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

type CheckoutState struct {
	Step      CheckoutStep     `json:"step"`
	Shipping  *ShippingDetails `json:"shipping,omitempty"`
	LastOrder *Order           `json:"last_order,omitempty"`
}

type CheckoutUseCase interface {
	GetState(clientID string) CheckoutState
	SubmitShipping(clientID string, details ShippingDetails) (CheckoutState, error)
	SubmitPayment(ctx context.Context, clientID string, payment PaymentDetails) (*Order, error)
	Reset(clientID string) CheckoutState
}
