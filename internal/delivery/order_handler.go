package delivery

import (
	"errors"
	"net/http"

	"github.com/gabinork/Gabi-Nork-Tech-2/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type OrderHandler struct {
	useCase domain.TrackingUseCase
	log     *logrus.Logger
}

func NewOrderHandler(uc domain.TrackingUseCase, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *OrderHandler) RegisterRoutes(router gin.IRouter) {
	orders := router.Group("/orders")
	{
		orders.GET("", h.ListOrders)
		orders.GET("/track/:id", h.TrackOrder)
	}
}

func (h *OrderHandler) TrackOrder(c *gin.Context) {
	id := c.Param("id")
	result, err := h.useCase.TrackOrder(c.Request.Context(), id)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Warnf("Failed to track order %s: %v", id, err)
		message := "Failed to track order: " + err.Error()
		if errors.Is(err, domain.ErrInvalidOrderID) {
			message = err.Error()
		}
		ErrorResponse(c, statusCode, message)
		return
	}
	SuccessResponse(c, http.StatusOK, "Order tracked successfully", result)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	id := clientID(c)
	orders, err := h.useCase.ListOrders(c.Request.Context(), id)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to list orders for client %s: %v", id, err)
		ErrorResponse(c, statusCode, "Failed to list orders: "+err.Error())
		return
	}

	views := make([]orderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, toOrderView(order))
	}
	SuccessResponse(c, http.StatusOK, "Orders retrieved successfully", views)
}
