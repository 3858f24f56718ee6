package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/gabinork/Gabi-Nork-Tech-2/internal/domain"
	"github.com/gabinork/Gabi-Nork-Tech-2/pkg/async"
	"github.com/sirupsen/logrus"
)

const orderIDAttempts = 3

var (
	cardNumberPattern = regexp.MustCompile(`^\d{16}$`)
	expiryPattern     = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvPattern        = regexp.MustCompile(`^\d{3}$`)
)

// NewOrderID returns GB- followed by four digits.
func NewOrderID() string {
	return fmt.Sprintf("GB-%04d", 1000+rand.IntN(9000))
}

type checkoutEntry struct {
	mu         sync.Mutex
	state      domain.CheckoutState
	processing bool
}

var _ domain.CheckoutUseCase = (*checkoutUseCase)(nil)

type checkoutUseCase struct {
	mu        sync.Mutex
	entries   map[string]*checkoutEntry
	carts     domain.CartUseCase
	orders    domain.OrderRepository
	publisher domain.OrderPublisher
	delay     time.Duration
	now       func() time.Time
	newID     func() string
	log       *logrus.Logger
}

func NewCheckoutUseCase(
	carts domain.CartUseCase,
	orders domain.OrderRepository,
	publisher domain.OrderPublisher,
	delay time.Duration,
	logger *logrus.Logger,
) domain.CheckoutUseCase {
	return &checkoutUseCase{
		entries:   make(map[string]*checkoutEntry),
		carts:     carts,
		orders:    orders,
		publisher: publisher,
		delay:     delay,
		now:       time.Now,
		newID:     NewOrderID,
		log:       logger,
	}
}

func (uc *checkoutUseCase) entry(clientID string) *checkoutEntry {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	e, ok := uc.entries[clientID]
	if !ok {
		e = &checkoutEntry{state: domain.CheckoutState{Step: domain.StepShipping}}
		uc.entries[clientID] = e
	}
	return e
}

func copyState(state domain.CheckoutState) domain.CheckoutState {
	out := state
	if state.Shipping != nil {
		shipping := *state.Shipping
		out.Shipping = &shipping
	}
	return out
}

func (uc *checkoutUseCase) GetState(clientID string) domain.CheckoutState {
	e := uc.entry(clientID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return copyState(e.state)
}

func validateShipping(details domain.ShippingDetails) error {
	required := map[string]string{
		"first name": details.FirstName,
		"last name":  details.LastName,
		"address":    details.Address,
		"city":       details.City,
		"state":      details.State,
		"phone":      details.Phone,
	}
	for _, field := range []string{"first name", "last name", "address", "city", "state", "phone"} {
		if strings.TrimSpace(required[field]) == "" {
			return fmt.Errorf("invalid shipping details: %s cannot be empty", field)
		}
	}
	if !isValidEmail(details.Email) {
		return errors.New("invalid shipping details: invalid email format")
	}
	return nil
}

func (uc *checkoutUseCase) SubmitShipping(clientID string, details domain.ShippingDetails) (domain.CheckoutState, error) {
	if err := validateShipping(details); err != nil {
		return domain.CheckoutState{}, err
	}
	if uc.carts.GetCart(clientID).IsEmpty() {
		return domain.CheckoutState{}, domain.ErrCartEmpty
	}

	e := uc.entry(clientID)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.processing {
		return domain.CheckoutState{}, fmt.Errorf("payment in progress: %w", domain.ErrInvalidCheckoutStep)
	}
	e.state = domain.CheckoutState{Step: domain.StepPayment, Shipping: &details}
	uc.log.Infof("Use Case: Shipping details accepted for client %s", clientID)
	return copyState(e.state), nil
}

func validatePayment(payment domain.PaymentDetails) error {
	card := strings.ReplaceAll(payment.CardNumber, " ", "")
	if !cardNumberPattern.MatchString(card) {
		return errors.New("invalid card number: must be 16 digits")
	}
	if !expiryPattern.MatchString(strings.TrimSpace(payment.Expiry)) {
		return errors.New("invalid expiry date: use MM/YY")
	}
	if !cvvPattern.MatchString(strings.TrimSpace(payment.CVV)) {
		return errors.New("invalid CVV: must be 3 digits")
	}
	return nil
}

// SubmitPayment simulates card processing, then turns the cart into a placed
// order. Only the ordered lines leave the cart, and only after the order is
// stored.
func (uc *checkoutUseCase) SubmitPayment(ctx context.Context, clientID string, payment domain.PaymentDetails) (*domain.Order, error) {
	if err := validatePayment(payment); err != nil {
		return nil, err
	}

	e := uc.entry(clientID)
	e.mu.Lock()
	if e.state.Step != domain.StepPayment || e.state.Shipping == nil {
		e.mu.Unlock()
		return nil, fmt.Errorf("payment requires step %d: %w", domain.StepPayment, domain.ErrInvalidCheckoutStep)
	}
	if e.processing {
		e.mu.Unlock()
		return nil, fmt.Errorf("payment in progress: %w", domain.ErrInvalidCheckoutStep)
	}
	if uc.carts.GetCart(clientID).IsEmpty() {
		e.mu.Unlock()
		return nil, domain.ErrCartEmpty
	}
	e.processing = true
	shipping := *e.state.Shipping
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.processing = false
		e.mu.Unlock()
	}()

	uc.log.Infof("Use Case: Processing payment for client %s", clientID)
	task := async.Go(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, async.Sleep(ctx, uc.delay)
	})
	if _, err := task.Await(ctx); err != nil {
		uc.log.Warnf("Use Case: Payment for client %s cancelled: %v", clientID, err)
		return nil, fmt.Errorf("payment cancelled: %w", err)
	}

	cart := uc.carts.GetCart(clientID)
	if cart.IsEmpty() {
		return nil, domain.ErrCartEmpty
	}

	order, err := uc.placeOrder(ctx, clientID, shipping, cart.Items)
	if err != nil {
		return nil, err
	}

	if err := uc.publisher.PublishOrderPlaced(ctx, order); err != nil {
		uc.log.Errorf("Use Case: Failed to publish OrderPlaced for %s, order stands: %v", order.ID, err)
	}

	uc.carts.Deduct(clientID, cart.Items)

	e.mu.Lock()
	e.state = domain.CheckoutState{Step: domain.StepConfirmation, Shipping: &shipping, LastOrder: order}
	e.mu.Unlock()

	uc.log.Infof("Use Case: Order %s placed for client %s, total %d", order.ID, clientID, order.Total)
	return order, nil
}

func (uc *checkoutUseCase) placeOrder(ctx context.Context, clientID string, shipping domain.ShippingDetails, lines []domain.LineItem) (*domain.Order, error) {
	var lastErr error
	for attempt := 0; attempt < orderIDAttempts; attempt++ {
		order := domain.NewOrder(uc.newID(), clientID, shipping, lines, uc.now())
		err := uc.orders.CreateOrder(ctx, order)
		if err == nil {
			return order, nil
		}
		lastErr = err
		if !strings.Contains(err.Error(), "already exists") {
			break
		}
		uc.log.Warnf("Use Case: Order id %s taken, retrying", order.ID)
	}
	uc.log.Errorf("Use Case: Failed to store order for client %s: %v", clientID, lastErr)
	return nil, fmt.Errorf("failed to save order: %w", lastErr)
}

func (uc *checkoutUseCase) Reset(clientID string) domain.CheckoutState {
	e := uc.entry(clientID)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = domain.CheckoutState{Step: domain.StepShipping}
	return copyState(e.state)
}
