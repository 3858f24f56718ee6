package delivery

import (
	"net/http"

	"github.com/gabinork/Gabi-Nork-Tech-2/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CartHandler struct {
	carts   domain.CartUseCase
	catalog domain.CatalogUseCase
	log     *logrus.Logger
}

func NewCartHandler(carts domain.CartUseCase, catalog domain.CatalogUseCase, logger *logrus.Logger) *CartHandler {
	return &CartHandler{
		carts:   carts,
		catalog: catalog,
		log:     logger,
	}
}

func (h *CartHandler) RegisterRoutes(router gin.IRouter) {
	cart := router.Group("/cart")
	{
		cart.GET("", h.GetCart)
		cart.DELETE("", h.ClearCart)
		cart.POST("/items", h.AddItem)
		cart.PATCH("/items/:productID", h.UpdateQuantity)
		cart.DELETE("/items/:productID", h.RemoveItem)
		cart.POST("/open", h.OpenCart)
		cart.POST("/close", h.CloseCart)
		cart.POST("/toggle", h.ToggleCart)
	}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "Cart retrieved successfully", toCartView(h.carts.GetCart(clientID(c))))
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var requestBody struct {
		ProductID string `json:"product_id" binding:"required"`
		OpenCart  *bool  `json:"open_cart"`
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		h.log.Warnf("Failed to bind JSON for add to cart: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.catalog.GetProductByID(requestBody.ProductID)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Warnf("Cannot add product %s to cart: %v", requestBody.ProductID, err)
		ErrorResponse(c, statusCode, "Failed to add item: "+err.Error())
		return
	}

	openCart := true
	if requestBody.OpenCart != nil {
		openCart = *requestBody.OpenCart
	}
	cart := h.carts.AddItem(clientID(c), *product, openCart)
	SuccessResponse(c, http.StatusOK, "Item added to cart", toCartView(cart))
}

func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var requestBody struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		h.log.Warnf("Failed to bind JSON for quantity update: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: quantity must be an integer")
		return
	}

	cart := h.carts.UpdateQuantity(clientID(c), c.Param("productID"), *requestBody.Quantity)
	SuccessResponse(c, http.StatusOK, "Cart updated", toCartView(cart))
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	cart := h.carts.RemoveItem(clientID(c), c.Param("productID"))
	SuccessResponse(c, http.StatusOK, "Item removed from cart", toCartView(cart))
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	cart := h.carts.Clear(clientID(c))
	SuccessResponse(c, http.StatusOK, "Cart cleared", toCartView(cart))
}

func (h *CartHandler) OpenCart(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "Cart opened", toCartView(h.carts.Open(clientID(c))))
}

func (h *CartHandler) CloseCart(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "Cart closed", toCartView(h.carts.Close(clientID(c))))
}

func (h *CartHandler) ToggleCart(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "Cart toggled", toCartView(h.carts.Toggle(clientID(c))))
}
