package domain

type Category string

const (
	CategoryLaptops      Category = "Laptops"
	CategoryPhones       Category = "Phones"
	CategorySmartwatches Category = "Smartwatches"
	CategoryAudio        Category = "Audio"
	CategoryAccessories  Category = "Accessories"
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{
		CategoryLaptops,
		CategoryPhones,
		CategorySmartwatches,
		CategoryAudio,
		CategoryAccessories,
	}
}

func IsValidCategory(category Category) bool {
	switch category {
	case CategoryLaptops, CategoryPhones, CategorySmartwatches, CategoryAudio, CategoryAccessories:
		return true
	default:
		return false
	}
}

type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	Category    Category `json:"category"`
	Image       string   `json:"image"`
	Specs       []string `json:"specs"`
	Rating      float64  `json:"rating"`
	Reviews     int      `json:"reviews"`
	IsNew       bool     `json:"is_new,omitempty"`
}

// ProductFilter holds the shop listing inputs. An empty Categories slice and an
// empty Query match everything.
type ProductFilter struct {
	Categories []Category
	MaxPrice   int64
	Query      string
}

type ProductRepository interface {
	ListProducts() []Product
	GetProductByID(id string) (*Product, error)
}

type CatalogUseCase interface {
	ListProducts(filter ProductFilter) []Product
	GetProductByID(id string) (*Product, error)
	Suggestions(query string) []Product
	Categories() []Category
}
