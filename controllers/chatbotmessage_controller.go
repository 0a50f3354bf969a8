package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"motel-backoffice/models"
	"motel-backoffice/repository"
	"motel-backoffice/utils"
)

// ChatbotMessageController manages the admin-editable reply templates.
type ChatbotMessageController struct {
	store repository.Store
}

func NewChatbotMessageController(store repository.Store) *ChatbotMessageController {
	return &ChatbotMessageController{store: store}
}

// GET /api/chatbot-messages
func (mc *ChatbotMessageController) List(c *gin.Context) {
	messages, err := mc.store.GetChatbotMessages()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, messages)
}

type chatbotMessageRequest struct {
	Situation string `json:"situation" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// PUT /api/chatbot-messages — upsert by situation key.
func (mc *ChatbotMessageController) Upsert(c *gin.Context) {
	var req chatbotMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "situation and message are required")
		return
	}
	m := &models.ChatbotMessage{Situation: req.Situation, Message: req.Message}
	if err := mc.store.UpsertChatbotMessage(m); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, m)
}

// DELETE /api/chatbot-messages/:id
func (mc *ChatbotMessageController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := mc.store.DeleteChatbotMessage(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "message not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

// PendingReservationController exposes read-only admin visibility into the
// chat users' outstanding booking slots.
type PendingReservationController struct {
	store repository.Store
}

func NewPendingReservationController(store repository.Store) *PendingReservationController {
	return &PendingReservationController{store: store}
}

// GET /api/pending-reservations
func (pc *PendingReservationController) List(c *gin.Context) {
	pendings, err := pc.store.GetPendingReservations()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, pendings)
}

// ChatHistoryController lists the conversation log per chat user.
type ChatHistoryController struct {
	store repository.Store
}

func NewChatHistoryController(store repository.Store) *ChatHistoryController {
	return &ChatHistoryController{store: store}
}

// GET /api/chat-histories?userId=
func (hc *ChatHistoryController) List(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		utils.JSONError(c, http.StatusBadRequest, "userId is required")
		return
	}
	histories, err := hc.store.GetChatHistories(userID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, histories)
}
