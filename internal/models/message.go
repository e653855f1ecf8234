package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage 代表一條聊天消息，追加到記錄後不可修改
// ID 在房間生命週期內唯一，消費端以此去除重複投遞
type ChatMessage struct {
	ID         string    `json:"id"`
	User       string    `json:"user"`
	Text       string    `json:"text"`
	IsDonation bool      `json:"isDonation"`
	Amount     int       `json:"amount,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewChatMessage 創建一條新的聊天消息
func NewChatMessage(user, text string, isDonation bool, amount int) ChatMessage {
	return ChatMessage{
		ID:         uuid.NewString(),
		User:       user,
		Text:       text,
		IsDonation: isDonation,
		Amount:     amount,
		Timestamp:  time.Now(),
	}
}

// Donation 是聊天消息中標記為贊助的部分，金額原樣透傳
// 付款驗證是外部系統的職責
type Donation struct {
	User   string `json:"user"`
	Amount int    `json:"amount"`
}

// Reaction 是即時表情，直接廣播、不進入聊天記錄
type Reaction struct {
	Type string `json:"type"`
}

const (
	ReactionHeart = "heart"
	ReactionPoop  = "poop"
)

// ValidReaction 檢查表情類型是否合法
func ValidReaction(t string) bool {
	return t == ReactionHeart || t == ReactionPoop
}
