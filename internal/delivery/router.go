package delivery

import (
	"net/http"

	"github.com/gabinork/Gabi-Nork-Tech-2/internal/domain"
	"github.com/gabinork/Gabi-Nork-Tech-2/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UseCases bundles everything the HTTP surface serves.
type UseCases struct {
	Catalog  domain.CatalogUseCase
	Carts    domain.CartUseCase
	Sessions domain.SessionUseCase
	Accounts domain.AccountUseCase
	Checkout domain.CheckoutUseCase
	Tracking domain.TrackingUseCase
	Chat     domain.ChatUseCase
}

func NewRouter(uc UseCases, logger *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.RedirectTrailingSlash = false
	router.Use(gin.Recovery(), middleware.ClientIdentity(logger), middleware.RequestLogger(logger))

	router.GET("/health", func(c *gin.Context) {
		SuccessResponse(c, http.StatusOK, "OK", nil)
	})

	NewProductHandler(uc.Catalog, logger).RegisterRoutes(router)
	NewCartHandler(uc.Carts, uc.Catalog, logger).RegisterRoutes(router)
	NewAuthHandler(uc.Sessions, uc.Accounts, logger).RegisterRoutes(router)
	NewCheckoutHandler(uc.Checkout, uc.Carts, logger).RegisterRoutes(router)
	NewOrderHandler(uc.Tracking, logger).RegisterRoutes(router)
	NewChatHandler(uc.Chat, logger).RegisterRoutes(router)

	router.NoRoute(func(c *gin.Context) {
		ErrorResponse(c, http.StatusNotFound, "Route not found")
	})
	return router
}
