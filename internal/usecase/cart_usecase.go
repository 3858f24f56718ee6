package usecase

import (
	"sync"

	"github.com/gabinork/Gabi-Nork-Tech-2/internal/domain"
	"github.com/sirupsen/logrus"
)

var _ domain.CartUseCase = (*cartUseCase)(nil)

type cartEntry struct {
	mu   sync.Mutex
	cart domain.Cart
}

type cartUseCase struct {
	mu    sync.Mutex
	carts map[string]*cartEntry
	log   *logrus.Logger
}

// NewCartUseCase keeps one in-memory cart per client for the process lifetime.
func NewCartUseCase(logger *logrus.Logger) domain.CartUseCase {
	return &cartUseCase{
		carts: make(map[string]*cartEntry),
		log:   logger,
	}
}

func (uc *cartUseCase) entry(clientID string) *cartEntry {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	e, ok := uc.carts[clientID]
	if !ok {
		e = &cartEntry{}
		uc.carts[clientID] = e
	}
	return e
}

func (uc *cartUseCase) mutate(clientID string, fn func(c *domain.Cart)) domain.Cart {
	e := uc.entry(clientID)
	e.mu.Lock()
	defer e.mu.Unlock()
	if fn != nil {
		fn(&e.cart)
	}
	return e.cart.Snapshot()
}

func (uc *cartUseCase) GetCart(clientID string) domain.Cart {
	return uc.mutate(clientID, nil)
}

func (uc *cartUseCase) AddItem(clientID string, product domain.Product, openCart bool) domain.Cart {
	cart := uc.mutate(clientID, func(c *domain.Cart) { c.Add(product, openCart) })
	uc.log.Infof("Use Case: Added product %s to cart of client %s (%d items)", product.ID, clientID, cart.Totals().ItemCount)
	return cart
}

func (uc *cartUseCase) RemoveItem(clientID, productID string) domain.Cart {
	cart := uc.mutate(clientID, func(c *domain.Cart) { c.Remove(productID) })
	uc.log.Infof("Use Case: Removed product %s from cart of client %s", productID, clientID)
	return cart
}

func (uc *cartUseCase) UpdateQuantity(clientID, productID string, quantity int) domain.Cart {
	cart := uc.mutate(clientID, func(c *domain.Cart) { c.UpdateQuantity(productID, quantity) })
	uc.log.Infof("Use Case: Set quantity of product %s to %d for client %s", productID, quantity, clientID)
	return cart
}

func (uc *cartUseCase) Clear(clientID string) domain.Cart {
	cart := uc.mutate(clientID, func(c *domain.Cart) { c.Clear() })
	uc.log.Infof("Use Case: Cleared cart of client %s", clientID)
	return cart
}

func (uc *cartUseCase) Deduct(clientID string, lines []domain.LineItem) domain.Cart {
	cart := uc.mutate(clientID, func(c *domain.Cart) { c.Deduct(lines) })
	uc.log.Infof("Use Case: Took %d ordered lines out of cart of client %s, %d left", len(lines), clientID, len(cart.Items))
	return cart
}

func (uc *cartUseCase) Toggle(clientID string) domain.Cart {
	return uc.mutate(clientID, func(c *domain.Cart) { c.Toggle() })
}

func (uc *cartUseCase) Open(clientID string) domain.Cart {
	return uc.mutate(clientID, func(c *domain.Cart) { c.Open() })
}

func (uc *cartUseCase) Close(clientID string) domain.Cart {
	return uc.mutate(clientID, func(c *domain.Cart) { c.Close() })
}
