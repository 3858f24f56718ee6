package delivery

import (
	"net/http"
	"strings"

	"github.com/gabinork/Gabi-Nork-Tech-2/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const defaultLoginName = "Emmanuel Doe"

type AuthHandler struct {
	sessions domain.SessionUseCase
	accounts domain.AccountUseCase
	log      *logrus.Logger
}

func NewAuthHandler(sessions domain.SessionUseCase, accounts domain.AccountUseCase, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		accounts: accounts,
		log:      logger,
	}
}

func (h *AuthHandler) RegisterRoutes(router gin.IRouter) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", h.Me)
	}
	router.POST("/admin/login", h.AdminLogin)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var requestBody struct {
		Name            string `json:"name" binding:"required"`
		Email           string `json:"email" binding:"required"`
		Password        string `json:"password" binding:"required"`
		ConfirmPassword string `json:"confirm_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		h.log.Warnf("Failed to bind JSON for register: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	err := h.accounts.Register(c.Request.Context(), domain.Registration{
		Name:            requestBody.Name,
		Email:           requestBody.Email,
		Password:        requestBody.Password,
		ConfirmPassword: requestBody.ConfirmPassword,
	})
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Warnf("Registration rejected for %s: %v", requestBody.Email, err)
		ErrorResponse(c, statusCode, "Registration failed: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusCreated, "Registration successful", gin.H{"email": requestBody.Email})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var requestBody struct {
		Email string `json:"email" binding:"required"`
		Name  string `json:"name"`
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		h.log.Warnf("Failed to bind JSON for login: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	name := strings.TrimSpace(requestBody.Name)
	if name == "" {
		name = defaultLoginName
	}
	identity := h.sessions.Login(c.Request.Context(), clientID(c), requestBody.Email, name)
	SuccessResponse(c, http.StatusOK, "Login successful", identity)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Logout(c.Request.Context(), clientID(c))
	SuccessResponse(c, http.StatusOK, "Logout successful", nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := h.sessions.CurrentIdentity(c.Request.Context(), clientID(c))
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "Not authenticated")
		return
	}
	SuccessResponse(c, http.StatusOK, "Identity retrieved successfully", identity)
}

func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var requestBody struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		h.log.Warnf("Failed to bind JSON for admin login: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	identity, err := h.accounts.AdminLogin(c.Request.Context(), clientID(c), requestBody.Email, requestBody.Password)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Warnf("Admin login failed for %s: %v", requestBody.Email, err)
		ErrorResponse(c, statusCode, "Admin login failed: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Admin login successful", identity)
}
