package delivery

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gabinork/Gabi-Nork-Tech-2/internal/domain"
	"github.com/gabinork/Gabi-Nork-Tech-2/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ProductHandler struct {
	useCase domain.CatalogUseCase
	log     *logrus.Logger
}

func NewProductHandler(uc domain.CatalogUseCase, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *ProductHandler) RegisterRoutes(router gin.IRouter) {
	products := router.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/suggestions", h.Suggestions)
		products.GET("/:id", h.GetProductByID)
	}
	router.GET("/categories", h.ListCategories)
}

func parseProductFilter(c *gin.Context) (domain.ProductFilter, error) {
	filter := domain.ProductFilter{
		MaxPrice: usecase.DefaultMaxPrice,
		Query:    c.Query("q"),
	}

	if raw := c.Query("cat"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			name := strings.TrimSpace(part)
			if name == "" {
				continue
			}
			category := domain.Category(name)
			if !domain.IsValidCategory(category) {
				return filter, fmt.Errorf("invalid category '%s'", name)
			}
			filter.Categories = append(filter.Categories, category)
		}
	}

	if raw := c.Query("max_price"); raw != "" {
		maxPrice, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || maxPrice < 0 {
			return filter, fmt.Errorf("invalid max_price '%s'", raw)
		}
		filter.MaxPrice = maxPrice
	}
	return filter, nil
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	filter, err := parseProductFilter(c)
	if err != nil {
		h.log.Warnf("Invalid product filter: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters: "+err.Error())
		return
	}

	products := h.useCase.ListProducts(filter)
	SuccessResponse(c, http.StatusOK, "Products retrieved successfully", gin.H{
		"products": toProductViews(products),
		"count":    len(products),
	})
}

func (h *ProductHandler) Suggestions(c *gin.Context) {
	products := h.useCase.Suggestions(c.Query("q"))
	SuccessResponse(c, http.StatusOK, "Suggestions retrieved successfully", toProductViews(products))
}

func (h *ProductHandler) GetProductByID(c *gin.Context) {
	id := c.Param("id")
	product, err := h.useCase.GetProductByID(id)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Warnf("Failed to get product by ID %s: %v", id, err)
		ErrorResponse(c, statusCode, "Failed to retrieve product: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Product retrieved successfully", toProductView(*product))
}

func (h *ProductHandler) ListCategories(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "Categories retrieved successfully", h.useCase.Categories())
}
