package usecase

import (
	"strings"

	"github.com/gabinork/Gabi-Nork-Tech-2/internal/domain"
	"github.com/sirupsen/logrus"
)

const (
	DefaultMaxPrice = 3000000
	maxSuggestions  = 5
)

var _ domain.CatalogUseCase = (*catalogUseCase)(nil)

type catalogUseCase struct {
	repo domain.ProductRepository
	log  *logrus.Logger
}

func NewCatalogUseCase(repo domain.ProductRepository, logger *logrus.Logger) domain.CatalogUseCase {
	return &catalogUseCase{
		repo: repo,
		log:  logger,
	}
}

// FilterProducts keeps the products that satisfy every predicate in filter,
// preserving their order. The query is matched as given, whitespace included.
func FilterProducts(products []domain.Product, filter domain.ProductFilter) []domain.Product {
	query := strings.ToLower(filter.Query)
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if len(filter.Categories) > 0 && !containsCategory(filter.Categories, p.Category) {
			continue
		}
		if p.Price > filter.MaxPrice {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) &&
			!strings.Contains(strings.ToLower(string(p.Category)), query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func containsCategory(categories []domain.Category, c domain.Category) bool {
	for _, candidate := range categories {
		if candidate == c {
			return true
		}
	}
	return false
}

func (uc *catalogUseCase) ListProducts(filter domain.ProductFilter) []domain.Product {
	products := FilterProducts(uc.repo.ListProducts(), filter)
	uc.log.Debugf("Use Case: Filter %+v matched %d products", filter, len(products))
	return products
}

func (uc *catalogUseCase) GetProductByID(id string) (*domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrProductNotFound
	}
	return uc.repo.GetProductByID(id)
}

func (uc *catalogUseCase) Suggestions(query string) []domain.Product {
	q := strings.ToLower(query)
	if q == "" {
		return []domain.Product{}
	}
	out := make([]domain.Product, 0, maxSuggestions)
	for _, p := range uc.repo.ListProducts() {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
			if len(out) == maxSuggestions {
				break
			}
		}
	}
	return out
}

func (uc *catalogUseCase) Categories() []domain.Category {
	return domain.Categories()
}
