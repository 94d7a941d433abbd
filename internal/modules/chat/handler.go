package chat

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	jwtsvc "fikhidmatik/internal/pkg/jwt"
	"fikhidmatik/internal/pkg/logger"
	"fikhidmatik/internal/pkg/response"
	"fikhidmatik/internal/pkg/validator"
)

// Origin checking is handled by the CORS layer in front of the API.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	service *Service
	hub     *Hub
	jwt     *jwtsvc.Service
}

func NewHandler(service *Service, hub *Hub, jwt *jwtsvc.Service) *Handler {
	return &Handler{service: service, hub: hub, jwt: jwt}
}

// RegisterRoutes wires the REST endpoints onto the authenticated group and
// the websocket endpoint onto the public one. The websocket carries its own
// token because browsers cannot set headers on the upgrade request.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	protected.POST("/conversations", h.CreateConversation)
	protected.GET("/conversations", h.ListConversations)
	protected.GET("/conversations/:id/messages", h.GetMessages)
	protected.POST("/conversations/:id/messages", h.SendMessage)

	public.GET("/ws", h.HandleWebSocket)
}

func (h *Handler) CreateConversation(c *gin.Context) {
	var req CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Validation failed", errs)
		return
	}

	conv, msg, err := h.service.StartConversation(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	out := gin.H{"conversation": conv}
	if msg != nil {
		out["initial_message"] = msg
	}
	response.Success(c, http.StatusCreated, out)
}

func (h *Handler) ListConversations(c *gin.Context) {
	convs, err := h.service.ListConversations(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"conversations": convs})
}

func (h *Handler) GetMessages(c *gin.Context) {
	id, ok := h.conversationID(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	msgs, err := h.service.Messages(c.Request.Context(), c.GetInt64("user_id"), id, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"messages": msgs})
}

func (h *Handler) SendMessage(c *gin.Context) {
	id, ok := h.conversationID(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Validation failed", errs)
		return
	}

	msg, err := h.service.SendMessage(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"message": msg})
}

// HandleWebSocket authenticates via ?token=, upgrades the connection and
// keeps it registered until the client goes away.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Token is required")
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Invalid or expired token")
		return
	}
	userID := claims.UserID

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	h.hub.Register(userID, conn)
	logger.L().Debug("websocket connected", zap.Int64("user_id", userID))

	defer func() {
		h.hub.Unregister(userID)
		logger.L().Debug("websocket disconnected", zap.Int64("user_id", userID))
	}()

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	})
	go pingLoop(conn)

	// The socket is push-only; reads just keep the connection alive and
	// surface the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func pingLoop(conn *websocket.Conn) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			return
		}
	}
}

func (h *Handler) conversationID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid conversation ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrConversationNotFound:
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Conversation not found")
	case ErrArtisanNotFound:
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Artisan not found")
	case ErrNotParticipant:
		response.Error(c, http.StatusForbidden, response.CodeForbidden, "Not a participant of this conversation")
	case ErrSelfConversation:
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Cannot start a conversation with yourself")
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Chat operation failed")
	}
}
