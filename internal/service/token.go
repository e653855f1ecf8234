package service

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt"

	"shoom_backend/internal/models"
)

// tokenTTL 是會議憑證的有效期，過期後由會議後端拒絕
const tokenTTL = 6 * time.Hour

// TokenService 為 (房間, 參與者, 角色) 簽發會議後端的存取憑證
// 憑證是帶 video 授權聲明的 JWT，以會議後端的 API 密鑰簽名
type TokenService struct {
	apiKey    string
	apiSecret string
	url       string
}

// NewTokenService 創建憑證簽發服務
func NewTokenService(apiKey, apiSecret, url string) *TokenService {
	return &TokenService{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		url:       url,
	}
}

// Issue 簽發一張限定房間與能力範圍的憑證
// 不要求房間已經存在，進房與簽發憑證是兩件獨立的事
func (s *TokenService) Issue(roomName, participantName string, role models.Role) (string, error) {
	if strings.TrimSpace(roomName) == "" {
		return "", ErrEmptyRoomName
	}
	if strings.TrimSpace(participantName) == "" {
		return "", ErrEmptyParticipantName
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss": s.apiKey,
		"sub": participantName,
		"nbf": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
		"video": map[string]interface{}{
			"room":     roomName,
			"roomJoin": true,
			// 只有辯手能推送音視頻，觀眾和管理員僅能訂閱
			"canPublish":   role == models.RoleDebater,
			"canSubscribe": true,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.apiSecret))
}

// URL 回傳會議後端的連線位址，對核心來說是不透明配置
func (s *TokenService) URL() string {
	return s.url
}
