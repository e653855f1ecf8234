package models

// Phase 定義辯論房間生命週期的階段
type Phase string

const (
	PhaseWaiting  Phase = "waiting"  // 等待管理員開始
	PhaseIntro    Phase = "intro"    // 開場介紹
	PhaseRoundA   Phase = "roundA"   // 正方（紅方）發言回合
	PhaseRoundB   Phase = "roundB"   // 反方（藍方）發言回合
	PhaseAd       Phase = "ad"       // 廣告時間
	PhaseVoting   Phase = "voting"   // 觀眾投票
	PhaseRage     Phase = "rage"     // 宣布結果前的緩衝階段
	PhaseFinished Phase = "finished" // 辯論結束
)

// Side 表示辯手的立場（A 為紅方，B 為藍方）
type Side string

const (
	SideA    Side = "A"
	SideB    Side = "B"
	SideNone Side = ""
)

// MarshalJSON 讓空立場序列化為 null，與前端的 'A' | 'B' | null 對齊
func (s Side) MarshalJSON() ([]byte, error) {
	if s == SideNone {
		return []byte("null"), nil
	}
	return []byte(`"` + string(s) + `"`), nil
}

// UnmarshalJSON 將 null 解析回空立場
func (s *Side) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "null", `""`:
		*s = SideNone
	case `"A"`:
		*s = SideA
	case `"B"`:
		*s = SideB
	default:
		*s = SideNone
	}
	return nil
}

// Role 定義連線在房間中的角色，於握手時指定且之後不可變更
type Role string

const (
	RoleViewer  Role = "viewer"
	RoleDebater Role = "debater"
	RoleAdmin   Role = "admin"
)

// ParseRole 解析角色字串，未知值一律視為觀眾
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleDebater:
		return RoleDebater
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleViewer
	}
}

// Outcome 表示投票結算的結果
type Outcome string

const (
	OutcomeA    Outcome = "A"
	OutcomeB    Outcome = "B"
	OutcomeDraw Outcome = "draw"
	OutcomeNone Outcome = ""
)
