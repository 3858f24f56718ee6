package delivery

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gabinork/Gabi-Nork-Tech-2/internal/domain"
	"github.com/gabinork/Gabi-Nork-Tech-2/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Response struct {
	Status  string      `json:"Status"`
	Message string      `json:"Message"`
	Data    interface{} `json:"Data,omitempty"`
}

func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Status:  "Success",
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Status:  "Fail",
		Message: message,
	})
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrOrderNotFound), errors.Is(err, domain.ErrKeyNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrChatBusy), errors.Is(err, domain.ErrInvalidCheckoutStep), errors.Is(err, domain.ErrCartEmpty):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidOrderID):
		return http.StatusBadRequest
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "not found") {
		return http.StatusNotFound
	}
	if strings.Contains(errMsg, "already exists") {
		return http.StatusConflict
	}
	if strings.Contains(errMsg, "invalid") || strings.Contains(errMsg, "cannot be empty") || strings.Contains(errMsg, "must be") {
		return http.StatusBadRequest
	}
	if strings.Contains(errMsg, "context canceled") || strings.Contains(errMsg, "deadline exceeded") {
		return http.StatusRequestTimeout
	}
	return http.StatusInternalServerError
}

func clientID(c *gin.Context) string {
	return middleware.ClientID(c)
}
