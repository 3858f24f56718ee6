package repository

import (
	"fmt"

	"github.com/gabinork/Gabi-Nork-Tech-2/internal/domain"
	"github.com/sirupsen/logrus"
)

var catalogProducts = []domain.Product{
	{
		ID:          "1",
		Name:        "GabNork ProBook X1",
		Description: "Ultra-slim laptop with M3 chip equivalent performance, 16GB RAM, and 512GB SSD. Perfect for professionals.",
		Price:       1200000,
		Category:    domain.CategoryLaptops,
		Image:       "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?auto=format&fit=crop&w=800&q=80",
		Specs:       []string{`14" 4K Retina Display`, "16GB RAM", "512GB SSD", "20h Battery Life"},
		Rating:      4.8,
		Reviews:     124,
		IsNew:       true,
	},
	{
		ID:          "2",
		Name:        "TechnoSphere Z5 Phone",
		Description: "Flagship smartphone featuring a 108MP camera and AI-enhanced photography.",
		Price:       850000,
		Category:    domain.CategoryPhones,
		Image:       "https://images.unsplash.com/photo-1592286927505-1def25115558?auto=format&fit=crop&w=800&q=80",
		Specs:       []string{`6.7" OLED 120Hz`, "256GB Storage", "108MP Camera", "5000mAh"},
		Rating:      4.7,
		Reviews:     89,
		IsNew:       true,
	},
	{
		ID:          "3",
		Name:        "SonicBlast Pro Earbuds",
		Description: "Active noise cancelling earbuds with immersive spatial audio.",
		Price:       150000,
		Category:    domain.CategoryAudio,
		Image:       "https://images.unsplash.com/photo-1572569028738-411a9cebd27e?auto=format&fit=crop&w=800&q=80",
		Specs:       []string{"ANC", "30h Playtime", "Water Resistant", "Transparency Mode"},
		Rating:      4.5,
		Reviews:     230,
	},
	{
		ID:          "4",
		Name:        "Chronos Smartwatch 4",
		Description: "Advanced health tracking, ECG, and seamless connectivity.",
		Price:       250000,
		Category:    domain.CategorySmartwatches,
		Image:       "https://images.unsplash.com/photo-1508685096489-7aacd43bd3b1?auto=format&fit=crop&w=800&q=80",
		Specs:       []string{"Always-on Display", "ECG Monitor", "GPS", "Waterproof 50m"},
		Rating:      4.6,
		Reviews:     56,
	},
	{
		ID:          "5",
		Name:        "Gaming Beast G7",
		Description: "High-performance gaming laptop with RTX 4080 graphics.",
		Price:       2800000,
		Category:    domain.CategoryLaptops,
		Image:       "https://images.unsplash.com/photo-1603302576837-37561b2e2302?auto=format&fit=crop&w=800&q=80",
		Specs:       []string{`17" 240Hz Display`, "RTX 4080", "32GB RAM", "1TB SSD"},
		Rating:      4.9,
		Reviews:     42,
	},
	{
		ID:          "6",
		Name:        "Nomad PowerBank 20k",
		Description: "Fast charging 20,000mAh power bank for all your devices.",
		Price:       45000,
		Category:    domain.CategoryAccessories,
		Image:       "https://images.unsplash.com/photo-1609091839311-d5365f9ff1c5?auto=format&fit=crop&w=800&q=80",
		Specs:       []string{"20,000mAh", "65W PD Output", "USB-C & A", "Digital Display"},
		Rating:      4.4,
		Reviews:     310,
	},
	{
		ID:          "7",
		Name:        "StudioOne Over-Ear",
		Description: "Professional grade studio headphones for audiophiles.",
		Price:       350000,
		Category:    domain.CategoryAudio,
		Image:       "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?auto=format&fit=crop&w=800&q=80",
		Specs:       []string{"Hi-Res Audio", "Memory Foam", "Wired/Wireless", "50mm Drivers"},
		Rating:      4.8,
		Reviews:     78,
	},
	{
		ID:          "8",
		Name:        `PixelView Monitor 27"`,
		Description: "4K IPS monitor with 99% sRGB color accuracy.",
		Price:       450000,
		Category:    domain.CategoryAccessories,
		Image:       "https://images.unsplash.com/photo-1527443224154-c4a3942d3acf?auto=format&fit=crop&w=800&q=80",
		Specs:       []string{"4K UHD", "IPS Panel", "USB-C Hub", "HDR10"},
		Rating:      4.5,
		Reviews:     22,
	},
}

type staticProductRepository struct {
	products []domain.Product
	byID     map[string]int
	log      *logrus.Logger
}

// NewStaticProductRepository serves the built-in catalog.
func NewStaticProductRepository(logger *logrus.Logger) domain.ProductRepository {
	return NewProductRepositoryFrom(catalogProducts, logger)
}

// NewProductRepositoryFrom serves an arbitrary fixed product list, keeping its order.
func NewProductRepositoryFrom(products []domain.Product, logger *logrus.Logger) domain.ProductRepository {
	r := &staticProductRepository{
		products: make([]domain.Product, len(products)),
		byID:     make(map[string]int, len(products)),
		log:      logger,
	}
	for i, p := range products {
		r.products[i] = cloneProduct(p)
		r.byID[p.ID] = i
	}
	return r
}

// cloneProduct copies p including its specs, so callers never share the
// catalog's backing arrays.
func cloneProduct(p domain.Product) domain.Product {
	if p.Specs != nil {
		p.Specs = append([]string(nil), p.Specs...)
	}
	return p
}

func (r *staticProductRepository) ListProducts() []domain.Product {
	out := make([]domain.Product, len(r.products))
	for i, p := range r.products {
		out[i] = cloneProduct(p)
	}
	return out
}

func (r *staticProductRepository) GetProductByID(id string) (*domain.Product, error) {
	i, ok := r.byID[id]
	if !ok {
		r.log.Warnf("Repository: Product with ID %s not found", id)
		return nil, fmt.Errorf("product with id %s: %w", id, domain.ErrProductNotFound)
	}
	p := cloneProduct(r.products[i])
	return &p, nil
}
