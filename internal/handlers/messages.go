package handlers

import (
	"errors"
	"log"
	"time"

	"truefeedback/internal/middleware"
	"truefeedback/internal/models"
	"truefeedback/internal/store"
	"truefeedback/internal/utils"
	"truefeedback/internal/validation"
	"truefeedback/pkg/response"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	users store.UserStore
}

func NewMessageHandler(users store.UserStore) *MessageHandler {
	return &MessageHandler{users: users}
}

// GetAcceptMessages returns the session user's accept-messages toggle.
// GET /api/accept-messages
func (h *MessageHandler) GetAcceptMessages(c *gin.Context) {
	user := middleware.CurrentUser(c)
	response.OKWith(c, "Successfully retrieved message acceptance status", gin.H{
		"isAcceptingMessages": user.IsAcceptingMessages,
	})
}

type acceptMessagesRequest struct {
	// Pointer so that an explicit false still binds.
	AcceptMessages *bool `json:"acceptMessages" binding:"required"`
}

// UpdateAcceptMessages flips the session user's accept-messages toggle.
// POST /api/accept-messages
func (h *MessageHandler) UpdateAcceptMessages(c *gin.Context) {
	var req acceptMessagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "acceptMessages boolean is required")
		return
	}

	user := middleware.CurrentUser(c)
	updated, err := h.users.SetAcceptingMessages(user.ID, *req.AcceptMessages)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			response.NotFound(c, "Unable to find user to update message acceptance status")
			return
		}
		log.Printf("Error updating accept messages: %v", err)
		response.InternalError(c, "Error occurred while updating accept messages")
		return
	}

	response.OKWith(c, "Message acceptance status updated successfully", gin.H{
		"updatedUser": updated.Public(),
	})
}

// GetMessages lists the session user's messages newest first. An empty inbox
// is a valid 200 with an empty array.
// GET /api/get-messages
func (h *MessageHandler) GetMessages(c *gin.Context) {
	user := middleware.CurrentUser(c)

	messages, err := h.users.MessagesByUser(user.ID)
	if err != nil {
		log.Printf("Error fetching messages: %v", err)
		response.InternalError(c, "Internal server error")
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}

	response.OKWith(c, "Messages retrieved successfully", gin.H{
		"messages": messages,
	})
}

type sendMessageRequest struct {
	Username string `json:"username" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

// SendMessage delivers an anonymous message to the named recipient. No
// session needed; the recipient's accept-messages toggle is the only gate.
// POST /api/send-message
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "username and content are required")
		return
	}

	content := utils.SanitizeContent(req.Content)
	if err := validation.Content(content); err != nil {
		response.Forbidden(c, err.Error())
		return
	}

	user, err := h.users.ByUsername(req.Username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		log.Printf("Error looking up recipient: %v", err)
		response.InternalError(c, "Internal server error")
		return
	}

	if !user.IsAcceptingMessages {
		response.Forbidden(c, "User is not accepting messages")
		return
	}

	msg := &models.Message{
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := h.users.AppendMessage(user.ID, msg); err != nil {
		log.Printf("Error adding message: %v", err)
		response.InternalError(c, "Internal server error")
		return
	}

	response.Created(c, "Message sent successfully")
}

// DeleteMessage removes exactly one message owned by the session user.
// DELETE /api/delete-message/:messageID
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	messageID := c.Param("messageID")
	user := middleware.CurrentUser(c)

	if err := h.users.DeleteMessage(user.ID, messageID); err != nil {
		if errors.Is(err, store.ErrMessageNotFound) {
			response.NotFound(c, "Message not found or already deleted")
			return
		}
		log.Printf("Error deleting message: %v", err)
		response.InternalError(c, "Error while deleting message")
		return
	}

	response.OK(c, "Message deleted successfully")
}
