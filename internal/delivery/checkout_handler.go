package delivery

import (
	"net/http"

	"github.com/gabinork/Gabi-Nork-Tech-2/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CheckoutHandler struct {
	checkout domain.CheckoutUseCase
	carts    domain.CartUseCase
	log      *logrus.Logger
}

func NewCheckoutHandler(checkout domain.CheckoutUseCase, carts domain.CartUseCase, logger *logrus.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		carts:    carts,
		log:      logger,
	}
}

func (h *CheckoutHandler) RegisterRoutes(router gin.IRouter) {
	checkout := router.Group("/checkout")
	{
		checkout.GET("", h.GetCheckout)
		checkout.POST("/shipping", h.SubmitShipping)
		checkout.POST("/payment", h.SubmitPayment)
		checkout.POST("/reset", h.Reset)
	}
}

type checkoutView struct {
	domain.CheckoutState
	Cart      cartView `json:"cart"`
	CartEmpty bool     `json:"cart_empty"`
}

func (h *CheckoutHandler) view(clientID string, state domain.CheckoutState) checkoutView {
	cart := h.carts.GetCart(clientID)
	return checkoutView{
		CheckoutState: state,
		Cart:          toCartView(cart),
		CartEmpty:     cart.IsEmpty() && state.Step == domain.StepShipping,
	}
}

func (h *CheckoutHandler) GetCheckout(c *gin.Context) {
	id := clientID(c)
	SuccessResponse(c, http.StatusOK, "Checkout retrieved successfully", h.view(id, h.checkout.GetState(id)))
}

func (h *CheckoutHandler) SubmitShipping(c *gin.Context) {
	var requestBody struct {
		FirstName string `json:"first_name" binding:"required"`
		LastName  string `json:"last_name" binding:"required"`
		Email     string `json:"email" binding:"required,email"`
		Address   string `json:"address" binding:"required"`
		City      string `json:"city" binding:"required"`
		State     string `json:"state" binding:"required"`
		Phone     string `json:"phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		h.log.Warnf("Failed to bind JSON for shipping details: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	id := clientID(c)
	state, err := h.checkout.SubmitShipping(id, domain.ShippingDetails{
		FirstName: requestBody.FirstName,
		LastName:  requestBody.LastName,
		Email:     requestBody.Email,
		Address:   requestBody.Address,
		City:      requestBody.City,
		State:     requestBody.State,
		Phone:     requestBody.Phone,
	})
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Warnf("Shipping step failed for client %s: %v", id, err)
		ErrorResponse(c, statusCode, "Failed to save shipping details: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Shipping details saved", h.view(id, state))
}

func (h *CheckoutHandler) SubmitPayment(c *gin.Context) {
	var requestBody struct {
		CardNumber string `json:"card_number" binding:"required"`
		Expiry     string `json:"expiry" binding:"required"`
		CVV        string `json:"cvv" binding:"required"`
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		h.log.Warnf("Failed to bind JSON for payment: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	id := clientID(c)
	order, err := h.checkout.SubmitPayment(c.Request.Context(), id, domain.PaymentDetails{
		CardNumber: requestBody.CardNumber,
		Expiry:     requestBody.Expiry,
		CVV:        requestBody.CVV,
	})
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Warnf("Payment failed for client %s: %v", id, err)
		ErrorResponse(c, statusCode, "Payment failed: "+err.Error())
		return
	}
	h.log.Infof("Order %s placed for client %s", order.ID, id)
	SuccessResponse(c, http.StatusCreated, "Order placed successfully", toOrderView(*order))
}

func (h *CheckoutHandler) Reset(c *gin.Context) {
	id := clientID(c)
	SuccessResponse(c, http.StatusOK, "Checkout reset", h.view(id, h.checkout.Reset(id)))
}
