package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"pmupro/config"
	"pmupro/internal/auth"
	"pmupro/internal/models"
	"pmupro/internal/repository"
	"pmupro/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	staffWriteWait  = 10 * time.Second
	staffPongWait   = 60 * time.Second
	staffPingPeriod = (staffPongWait * 9) / 10
)

var staffUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// UpgradeStaffWS upgrades to WebSocket for the studio staff room; query: token.
// Messages are persisted and fanned out to every connected staff member.
func UpgradeStaffWS(cfg *config.JWTConfig, hub *ws.Hub, messageRepo *repository.MessageRepository, userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := c.Query("token")
		if tok == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "token required"})
			return
		}
		claims, err := auth.ParseAccessToken(cfg, tok)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		u, err := userRepo.GetByID(claims.UserID)
		if err != nil || !u.Active {
			c.JSON(http.StatusForbidden, gin.H{"error": "account inactive"})
			return
		}
		conn, err := staffUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		client := &ws.Client{
			UserID: claims.UserID,
			Name:   u.Name,
			Send:   make(chan []byte, 256),
		}
		hub.Register(client)
		defer client.Close()

		conn.SetReadDeadline(time.Now().Add(staffPongWait))
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(staffPongWait))
			return nil
		})
		go func() {
			ticker := time.NewTicker(staffPingPeriod)
			defer ticker.Stop()
			for {
				select {
				case msg, ok := <-client.Send:
					if !ok {
						return
					}
					conn.SetWriteDeadline(time.Now().Add(staffWriteWait))
					if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
						return
					}
				case <-ticker.C:
					conn.SetWriteDeadline(time.Now().Add(staffWriteWait))
					if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
						return
					}
				}
			}
		}()
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				break
			}
			var msg struct {
				Type     string `json:"type"`
				Content  string `json:"content"`
				MediaURL string `json:"media_url"`
			}
			if json.Unmarshal(raw, &msg) != nil || msg.Type != "message" {
				continue
			}
			m := &models.Message{
				SenderID: claims.UserID,
				Content:  msg.Content,
				MediaURL: msg.MediaURL,
			}
			if err := messageRepo.Create(m); err != nil {
				continue
			}
			hub.Broadcast(nil, map[string]interface{}{
				"type":        "message",
				"id":          m.ID,
				"sender_id":   m.SenderID,
				"sender_name": u.Name,
				"content":     m.Content,
				"media_url":   m.MediaURL,
				"created_at":  m.CreatedAt,
			})
		}
	}
}

// MessageHandler serves staff room history over REST.
type MessageHandler struct {
	messageRepo *repository.MessageRepository
}

func NewMessageHandler(messageRepo *repository.MessageRepository) *MessageHandler {
	return &MessageHandler{messageRepo: messageRepo}
}

func (h *MessageHandler) History(c *gin.Context) {
	limit, offset := pagination(c)
	list, err := h.messageRepo.ListRecent(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": list})
}
