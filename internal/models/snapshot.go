package models

// RoomSnapshot 是房間完整狀態的不可變副本
// 每次狀態變更或計時器跳動時整份廣播，晚加入的客戶端不需要重放增量
type RoomSnapshot struct {
	Phase        Phase         `json:"phase"`
	TimeLeft     int           `json:"timeLeft"`
	ActivePlayer Side          `json:"activePlayer"`
	ViewersCount int           `json:"viewersCount"`
	ChatMessages []ChatMessage `json:"chatMessages"`
	Donations    []Donation    `json:"donations"`
	Winner       Outcome       `json:"winner,omitempty"`
}

// RoomSummary 是大廳列表用的房間摘要
type RoomSummary struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Status  Phase  `json:"status"`
	Viewers int    `json:"viewers"`
}
