package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"shoom_backend/internal/models"
	"shoom_backend/internal/service"
)

// 定義 WebSocket 升級器
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 注意：在生產環境中，應該檢查 origin
	},
}

// WebSocketHandler 處理 WebSocket 連接
type WebSocketHandler struct {
	gateway *service.Gateway
}

// NewWebSocketHandler 創建一個新的 WebSocketHandler 實例
func NewWebSocketHandler(gateway *service.Gateway) *WebSocketHandler {
	return &WebSocketHandler{gateway: gateway}
}

// HandleWebSocket 處理 WebSocket 連接請求
// 房間 ID 來自路徑，角色與顯示名稱來自握手時的查詢參數
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	roomID := c.Param("id")
	role := models.ParseRole(c.Query("role"))

	name := c.Query("name")
	if name == "" {
		name = string(role) + "-" + uuid.NewString()[:8]
	}

	// 升級 HTTP 連接為 WebSocket 連接
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "升級WebSocket失敗"})
		return
	}

	// 交給網關處理，直到斷線才返回
	h.gateway.HandleConnection(conn, roomID, name, role)
}
