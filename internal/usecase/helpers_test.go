package usecase

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/gabinork/Gabi-Nork-Tech-2/internal/domain"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type stubProductRepo struct {
	products []domain.Product
}

func (r stubProductRepo) ListProducts() []domain.Product {
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out
}

func (r stubProductRepo) GetProductByID(id string) (*domain.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

var (
	powerBank = domain.Product{ID: "6", Name: "Nomad PowerBank 20k", Description: "Fast charging 20,000mAh power bank for all your devices.", Price: 45000, Category: domain.CategoryAccessories}
	earbuds   = domain.Product{ID: "3", Name: "SonicBlast Pro Earbuds", Description: "Active noise cancelling earbuds with immersive spatial audio.", Price: 150000, Category: domain.CategoryAudio}
	probook   = domain.Product{ID: "1", Name: "GabNork ProBook X1", Description: "Ultra-slim laptop.", Price: 1200000, Category: domain.CategoryLaptops}
	beast     = domain.Product{ID: "5", Name: "Gaming Beast G7", Description: "High-performance gaming laptop with RTX 4080 graphics.", Price: 2800000, Category: domain.CategoryLaptops}
)

// failingStorage fails every call with err.
type failingStorage struct {
	err error
}

func (s failingStorage) Get(context.Context, string) (string, error) { return "", s.err }
func (s failingStorage) Set(context.Context, string, string) error   { return s.err }
func (s failingStorage) Delete(context.Context, string) error        { return s.err }

var errStorageDown = errors.New("storage unavailable")

type recordingPublisher struct {
	mu     sync.Mutex
	orders []*domain.Order
	err    error
}

func (p *recordingPublisher) PublishOrderPlaced(_ context.Context, order *domain.Order) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.orders = append(p.orders, order)
	return p.err
}

func (p *recordingPublisher) published() []*domain.Order {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*domain.Order(nil), p.orders...)
}

type failingOrderRepo struct {
	err error
}

func (r failingOrderRepo) CreateOrder(context.Context, *domain.Order) error { return r.err }
func (r failingOrderRepo) GetOrderByID(context.Context, string) (*domain.Order, error) {
	return nil, r.err
}
func (r failingOrderRepo) ListOrdersByClientID(context.Context, string) ([]domain.Order, error) {
	return nil, r.err
}
