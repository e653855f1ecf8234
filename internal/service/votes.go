package service

import (
	"shoom_backend/internal/models"
)

// VoteTally 是投票階段的計票器，以連線 ID 為鍵
// 同一條連線重複投票時覆蓋前一票，確保一人一票
type VoteTally struct {
	votes map[string]models.Side
}

// NewVoteTally 創建一個空的計票器
func NewVoteTally() *VoteTally {
	return &VoteTally{votes: make(map[string]models.Side)}
}

// Cast 記錄一票，立場只接受 A 或 B
func (t *VoteTally) Cast(connID string, side models.Side) {
	if side != models.SideA && side != models.SideB {
		return
	}
	t.votes[connID] = side
}

// Counts 回傳雙方目前的票數
func (t *VoteTally) Counts() (a, b int) {
	for _, side := range t.votes {
		if side == models.SideA {
			a++
		} else {
			b++
		}
	}
	return a, b
}

// Outcome 結算勝方，平手時明確回報 draw 而不是默認某一方
func (t *VoteTally) Outcome() models.Outcome {
	a, b := t.Counts()
	switch {
	case a > b:
		return models.OutcomeA
	case b > a:
		return models.OutcomeB
	default:
		return models.OutcomeDraw
	}
}

// Reset 清空所有票
func (t *VoteTally) Reset() {
	t.votes = make(map[string]models.Side)
}
