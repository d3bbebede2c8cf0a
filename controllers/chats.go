package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"Roomio/middleware"
	"Roomio/services"

	"github.com/gin-gonic/gin"
)

type openChatRequest struct {
	UserID string `json:"userId"`
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

type pinRequest struct {
	ChatID    string `json:"chatId"`
	MessageID string `json:"messageId"`
	UserID    string `json:"userId"`
}

// @Summary List my chats
// @Tags chats
// @Produce json
// @Param Authorization header string false "Bearer JWT token"
// @Success 200 {object} object{chats=[]services.ChatView}
// @Router /api/chats [get]
// @Security ApiKeyAuth
func ListChats(chats *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := chats.ListChats(c.Request.Context(), middleware.CurrentUserID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"chats": list})
	}
}

// @Summary Open a chat
// @Description Returns the chat with a friend or match, creating it if needed
// @Tags chats
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer JWT token"
// @Param body body openChatRequest true "Counterpart"
// @Success 200 {object} services.ChatView
// @Failure 403 {object} object{error=string}
// @Router /api/chats [post]
// @Security ApiKeyAuth
func OpenChat(chats *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req openChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidBody(c)
			return
		}

		chat, err := chats.OpenChat(c.Request.Context(), middleware.CurrentUserID(c), req.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, chat)
	}
}

// @Summary Chat history
// @Description Messages oldest first. Pass before (RFC3339) to page backwards
// @Tags chats
// @Produce json
// @Param Authorization header string false "Bearer JWT token"
// @Param chatId path string true "Chat id"
// @Param limit query int false "Page size (default 50, max 100)"
// @Param before query string false "Only messages older than this instant"
// @Success 200 {object} object{messages=[]services.MessageView}
// @Failure 403 {object} object{error=string}
// @Router /api/chats/{chatId}/messages [get]
// @Security ApiKeyAuth
func GetMessages(chats *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.Query("limit"))

		var before time.Time
		if raw := c.Query("before"); raw != "" {
			parsed, err := time.Parse(time.RFC3339Nano, raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "before must be an RFC3339 timestamp"})
				return
			}
			before = parsed
		}

		messages, err := chats.Messages(c.Request.Context(), middleware.CurrentUserID(c), c.Param("chatId"), limit, before)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"messages": messages})
	}
}

// @Summary Send a message
// @Description Stores the message and broadcasts new_message to the chat room
// @Tags chats
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer JWT token"
// @Param chatId path string true "Chat id"
// @Param body body sendMessageRequest true "Message"
// @Success 201 {object} services.MessageView
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /api/chats/{chatId}/messages [post]
// @Security ApiKeyAuth
func SendMessage(chats *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req sendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidBody(c)
			return
		}

		msg, err := chats.SendMessage(c.Request.Context(), middleware.CurrentUserID(c), c.Param("chatId"), req.Content)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, msg)
	}
}

// @Summary Pin a message
// @Tags chats
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer JWT token"
// @Param body body pinRequest true "Message to pin"
// @Success 200 {object} object{success=bool}
// @Failure 403 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/pin [post]
// @Security ApiKeyAuth
func PinMessage(chats *services.ChatService) gin.HandlerFunc {
	return pinHandler(chats.Pin)
}

// @Summary Unpin a message
// @Tags chats
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer JWT token"
// @Param body body pinRequest true "Message to unpin"
// @Success 200 {object} object{success=bool}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/pin [delete]
// @Security ApiKeyAuth
func UnpinMessage(chats *services.ChatService) gin.HandlerFunc {
	return pinHandler(chats.Unpin)
}

func pinHandler(apply func(ctx context.Context, userID string, in services.PinInput) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req pinRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
			return
		}

		userID := middleware.CurrentUserID(c)
		in := services.PinInput{ChatID: req.ChatID, MessageID: req.MessageID, UserID: req.UserID}
		if err := apply(c.Request.Context(), userID, in); err != nil {
			respondFailure(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// @Summary List pinned messages
// @Tags chats
// @Produce json
// @Param Authorization header string false "Bearer JWT token"
// @Param chatId path string true "Chat id"
// @Success 200 {object} object{success=bool,pins=[]services.PinView}
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/chats/{chatId}/pins [get]
// @Security ApiKeyAuth
func ListPins(chats *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		pins, err := chats.ListPins(c.Request.Context(), middleware.CurrentUserID(c), c.Param("chatId"))
		if err != nil {
			respondFailure(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "pins": pins})
	}
}
