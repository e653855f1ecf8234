package service

import (
	"shoom_backend/internal/models"
)

// PhaseDurations 定義各計時階段的秒數，未列出的階段不計時
type PhaseDurations map[models.Phase]int

// DefaultPhaseDurations 回傳正式環境使用的階段時長
func DefaultPhaseDurations() PhaseDurations {
	return PhaseDurations{
		models.PhaseIntro:  30,
		models.PhaseRoundA: 120,
		models.PhaseRoundB: 120,
		models.PhaseAd:     15,
		models.PhaseVoting: 30,
		models.PhaseRage:   10,
	}
}

// nextPhase 定義階段的標準順序
var nextPhase = map[models.Phase]models.Phase{
	models.PhaseWaiting: models.PhaseIntro,
	models.PhaseIntro:   models.PhaseRoundA,
	models.PhaseRoundA:  models.PhaseRoundB,
	models.PhaseRoundB:  models.PhaseAd,
	models.PhaseAd:      models.PhaseVoting,
	models.PhaseVoting:  models.PhaseRage,
	models.PhaseRage:    models.PhaseFinished,
}

// PhaseMachine 是單一房間的權威階段狀態機
// 它本身不做任何同步，所有呼叫都必須來自房間的事件迴圈
type PhaseMachine struct {
	phase        models.Phase
	timeLeft     int
	activePlayer models.Side
	durations    PhaseDurations
}

// NewPhaseMachine 創建一個處於 waiting 階段的狀態機
func NewPhaseMachine(durations PhaseDurations) *PhaseMachine {
	if durations == nil {
		durations = DefaultPhaseDurations()
	}
	return &PhaseMachine{
		phase:     models.PhaseWaiting,
		durations: durations,
	}
}

func (m *PhaseMachine) Phase() models.Phase       { return m.phase }
func (m *PhaseMachine) TimeLeft() int             { return m.timeLeft }
func (m *PhaseMachine) ActivePlayer() models.Side { return m.activePlayer }

// Timed 回報當前階段是否在倒數
func (m *PhaseMachine) Timed() bool {
	return m.durations[m.phase] > 0
}

// Start 由管理員的 start 指令觸發，只允許從 waiting 進入 intro
func (m *PhaseMachine) Start() error {
	if m.phase != models.PhaseWaiting {
		return ErrInvalidTransition
	}
	m.enter(models.PhaseIntro)
	return nil
}

// Advance 強制進入下一階段，不管剩餘時間
// 已經 finished 時拒絕，回傳轉換前的階段供呼叫端結算投票
func (m *PhaseMachine) Advance() (models.Phase, error) {
	next, ok := nextPhase[m.phase]
	if !ok {
		return m.phase, ErrInvalidTransition
	}
	prev := m.phase
	m.enter(next)
	return prev, nil
}

// Tick 在計時階段將 timeLeft 減一秒
// 倒數歸零時恰好推進一個階段，回傳轉換前的階段與是否發生了轉換
func (m *PhaseMachine) Tick() (models.Phase, bool) {
	if !m.Timed() {
		return m.phase, false
	}
	m.timeLeft--
	if m.timeLeft > 0 {
		return m.phase, false
	}
	prev := m.phase
	m.enter(nextPhase[m.phase])
	return prev, true
}

// Reset 無條件回到 waiting，清除計時器與發言方
func (m *PhaseMachine) Reset() {
	m.phase = models.PhaseWaiting
	m.timeLeft = 0
	m.activePlayer = models.SideNone
}

// enter 進入指定階段並載入其時長
// activePlayer 只在 roundA/roundB 期間有值
func (m *PhaseMachine) enter(p models.Phase) {
	m.phase = p
	m.timeLeft = m.durations[p]
	switch p {
	case models.PhaseRoundA:
		m.activePlayer = models.SideA
	case models.PhaseRoundB:
		m.activePlayer = models.SideB
	default:
		m.activePlayer = models.SideNone
	}
}
