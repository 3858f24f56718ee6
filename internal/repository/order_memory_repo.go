package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/gabinork/Gabi-Nork-Tech-2/internal/domain"
	"github.com/sirupsen/logrus"
)

type memoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
	log    *logrus.Logger
}

func NewMemoryOrderRepository(logger *logrus.Logger) domain.OrderRepository {
	return &memoryOrderRepository{
		orders: make(map[string]domain.Order),
		log:    logger,
	}
}

func cloneOrder(order domain.Order) domain.Order {
	items := make([]domain.OrderItem, len(order.Items))
	copy(items, order.Items)
	order.Items = items
	return order
}

func (r *memoryOrderRepository) CreateOrder(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.orders[order.ID]; exists {
		return fmt.Errorf("order %s already exists", order.ID)
	}
	r.orders[order.ID] = cloneOrder(*order)
	r.log.Infof("Repository: Order %s stored in memory with %d items", order.ID, len(order.Items))
	return nil
}

func (r *memoryOrderRepository) GetOrderByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with id %s: %w", id, domain.ErrOrderNotFound)
	}
	out := cloneOrder(order)
	return &out, nil
}

func (r *memoryOrderRepository) ListOrdersByClientID(_ context.Context, clientID string) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	orders := []domain.Order{}
	for _, order := range r.orders {
		if order.ClientID == clientID {
			orders = append(orders, cloneOrder(order))
		}
	}
	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].ID > orders[j].ID
		}
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}
