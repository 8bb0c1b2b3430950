package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"supportchat/config"
	"supportchat/model"
	"supportchat/platform"
	"supportchat/service"
)

var logger = platform.Logger

// ChatController handles the chat-turn and history endpoints. The store
// and reply service are injected at startup so tests can run against a
// throwaway database and a disabled completion client.
type ChatController struct {
	store *model.Store
	reply *service.ReplyService
	cfg   *config.Config
}

func NewChatController(store *model.Store, reply *service.ReplyService, cfg *config.Config) *ChatController {
	return &ChatController{store: store, reply: reply, cfg: cfg}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":     message,
		"timestamp": time.Now().UnixMilli(),
	})
}

func (ctrl *ChatController) serverError(c *gin.Context, err error) {
	body := gin.H{"error": "Internal server error"}
	if ctrl.cfg.IsDev() && err != nil {
		body["details"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}

// Message runs one chat turn: validate, resolve the session, persist the
// user message, obtain a reply, persist it, respond. Once the user
// message is stored the turn always answers 200; a failed generation
// substitutes a fixed fallback string and is still persisted as the ai
// message so the log keeps strict user/ai alternation.
func (ctrl *ChatController) Message(c *gin.Context) {
	requestID := c.GetString("requestId")

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		logger.Warnf("[%s] Invalid request body, %s", requestID, err)
		badRequest(c, "Invalid request body")
		return
	}

	input, err := service.ValidateChatMessage(payload)
	if err != nil {
		logger.Warnf("[%s] Validation failed: %s", requestID, err)
		badRequest(c, err.Error())
		return
	}

	sessionID := input.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	if !ctrl.store.ConversationExists(sessionID) {
		// A concurrent turn may have created it between the check and the
		// insert; a duplicate key is benign here.
		if _, err := ctrl.store.CreateConversation(sessionID); err != nil && !errors.Is(err, model.ErrDuplicateKey) {
			logger.Warnf("[%s] Failed to create conversation %s: %s", requestID, sessionID, err)
			ctrl.serverError(c, err)
			return
		}
	}

	if _, err := ctrl.store.CreateMessage(uuid.NewString(), sessionID, model.SenderUser, input.Message); err != nil {
		logger.Warnf("[%s] Failed to persist user message: %s", requestID, err)
		ctrl.serverError(c, err)
		return
	}

	// The freshly persisted user message is part of the window on purpose.
	history, err := ctrl.store.GetConversationHistory(sessionID, 10)
	if err != nil {
		logger.Warnf("[%s] Failed to fetch history for %s: %s", requestID, sessionID, err)
		history = nil
	}

	reply := service.ReplyUnavailable
	if ctrl.reply.Enabled() {
		generated, err := ctrl.reply.GenerateReply(c.Request.Context(), history, input.Message)
		if err != nil {
			logger.Warnf("[%s] Reply generation failed: %s", requestID, err)
			reply = service.FallbackReply(err)
		} else {
			reply = generated
		}
	}

	if _, err := ctrl.store.CreateMessage(uuid.NewString(), sessionID, model.SenderAI, reply); err != nil {
		// The turn still answers 200; the reply just isn't in the log.
		logger.Warnf("[%s] Failed to persist ai message: %s", requestID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"reply":     reply,
		"sessionId": sessionID,
	})
}

// History returns the full ordered message log of one conversation.
func (ctrl *ChatController) History(c *gin.Context) {
	requestID := c.GetString("requestId")

	sessionID := c.Param("sessionId")
	if err := service.ValidateSessionID(sessionID); err != nil {
		logger.Warnf("[%s] Invalid history session id %q: %s", requestID, sessionID, err)
		badRequest(c, err.Error())
		return
	}

	if !ctrl.store.ConversationExists(sessionID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}

	messages, err := ctrl.store.GetMessages(sessionID)
	if err != nil {
		logger.Warnf("[%s] Failed to fetch messages for %s: %s", requestID, sessionID, err)
		ctrl.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId": sessionID,
		"messages":  messages,
	})
}
