package service

import (
	"shoom_backend/internal/models"
)

// ChatLog 是房間的追加式消息記錄
// 以消息 ID 去重，重複追加同一條消息不會出現兩次
type ChatLog struct {
	messages []models.ChatMessage
	seen     map[string]bool
}

// NewChatLog 創建一個空的消息記錄
func NewChatLog() *ChatLog {
	return &ChatLog{seen: make(map[string]bool)}
}

// Append 追加一條消息，ID 重複時回傳 false 且不改動記錄
func (l *ChatLog) Append(msg models.ChatMessage) bool {
	if l.seen[msg.ID] {
		return false
	}
	l.seen[msg.ID] = true
	l.messages = append(l.messages, msg)
	return true
}

// Messages 回傳按追加順序排列的消息副本
func (l *ChatLog) Messages() []models.ChatMessage {
	out := make([]models.ChatMessage, len(l.messages))
	copy(out, l.messages)
	return out
}

// Donations 過濾出金額為正的贊助消息
func (l *ChatLog) Donations() []models.Donation {
	out := make([]models.Donation, 0)
	for _, msg := range l.messages {
		if msg.IsDonation && msg.Amount > 0 {
			out = append(out, models.Donation{User: msg.User, Amount: msg.Amount})
		}
	}
	return out
}

// Len 回傳目前的消息數量
func (l *ChatLog) Len() int {
	return len(l.messages)
}
