package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shoom_backend/internal/service"
	"shoom_backend/internal/utils"
)

// RoomHandler 處理與辯論房間相關的請求
type RoomHandler struct {
	registry *service.RoomRegistry
}

// NewRoomHandler 創建一個新的 RoomHandler 實例
func NewRoomHandler(registry *service.RoomRegistry) *RoomHandler {
	return &RoomHandler{registry: registry}
}

// CreateRoom 處理創建新房間的請求，從辯題推導房間 ID
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var input struct {
		Topic string `json:"topic" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.registry.CreateFromTopic(input.Topic)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidTopic) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "創建房間失敗"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": room.ID, "title": room.Title})
}

// ListRooms 處理大廳的房間列表請求
func (h *RoomHandler) ListRooms(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.ListActive())
}

// GetRoom 處理獲取單一房間摘要的請求
func (h *RoomHandler) GetRoom(c *gin.Context) {
	room, err := h.registry.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "房間不存在"})
		return
	}

	summary, err := room.Summary()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "房間不存在"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
