package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shoom_backend/internal/models"
	"shoom_backend/internal/service"
)

// TokenHandler 處理會議憑證的簽發請求
type TokenHandler struct {
	tokenService *service.TokenService
}

// NewTokenHandler 創建一個新的 TokenHandler 實例
func NewTokenHandler(tokenService *service.TokenService) *TokenHandler {
	return &TokenHandler{tokenService: tokenService}
}

// IssueToken 簽發限定 (房間, 參與者, 角色) 的會議存取憑證
// 房間不需要已經存在，Registry 會在第一次真正使用時惰性創建
func (h *TokenHandler) IssueToken(c *gin.Context) {
	roomName := c.Query("roomName")
	participantName := c.Query("participantName")
	role := models.ParseRole(c.Query("role"))

	token, err := h.tokenService.Issue(roomName, participantName, role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"url":   h.tokenService.URL(),
	})
}
