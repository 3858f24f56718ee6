package delivery

import (
	"net/http"

	"github.com/gabinork/Gabi-Nork-Tech-2/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ChatHandler struct {
	useCase domain.ChatUseCase
	log     *logrus.Logger
}

func NewChatHandler(uc domain.ChatUseCase, logger *logrus.Logger) *ChatHandler {
	return &ChatHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *ChatHandler) RegisterRoutes(router gin.IRouter) {
	chat := router.Group("/chat")
	{
		chat.GET("", h.Transcript)
		chat.DELETE("", h.Reset)
		chat.POST("/messages", h.SendMessage)
	}
}

func (h *ChatHandler) Transcript(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "Transcript retrieved successfully", h.useCase.Transcript(clientID(c)))
}

func (h *ChatHandler) Reset(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "Conversation reset", h.useCase.Reset(clientID(c)))
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	var requestBody struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		h.log.Warnf("Failed to bind JSON for chat message: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	id := clientID(c)
	reply, err := h.useCase.Send(c.Request.Context(), id, requestBody.Text)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Warnf("Chat message rejected for client %s: %v", id, err)
		ErrorResponse(c, statusCode, "Failed to send message: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Reply received", reply)
}
