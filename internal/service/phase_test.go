package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoom_backend/internal/models"
)

func testDurations() PhaseDurations {
	return PhaseDurations{
		models.PhaseIntro:  3,
		models.PhaseRoundA: 2,
		models.PhaseRoundB: 2,
		models.PhaseAd:     1,
		models.PhaseVoting: 2,
		models.PhaseRage:   1,
	}
}

func TestPhaseMachine_StartOnlyFromWaiting(t *testing.T) {
	m := NewPhaseMachine(testDurations())
	assert.Equal(t, models.PhaseWaiting, m.Phase())
	assert.False(t, m.Timed())

	require.NoError(t, m.Start())
	assert.Equal(t, models.PhaseIntro, m.Phase())
	assert.Equal(t, 3, m.TimeLeft())

	// 已經開始後再收到 start 是無效轉換
	assert.ErrorIs(t, m.Start(), ErrInvalidTransition)
	assert.Equal(t, models.PhaseIntro, m.Phase())
}

func TestPhaseMachine_TickRunsFullSequence(t *testing.T) {
	m := NewPhaseMachine(testDurations())
	require.NoError(t, m.Start())

	tickUntilTransition := func() models.Phase {
		for i := 0; i < 100; i++ {
			if prev, advanced := m.Tick(); advanced {
				return prev
			}
		}
		t.Fatal("machine never advanced")
		return models.PhaseWaiting
	}

	// intro 倒數結束後自動進入 roundA，正方發言
	assert.Equal(t, models.PhaseIntro, tickUntilTransition())
	assert.Equal(t, models.PhaseRoundA, m.Phase())
	assert.Equal(t, models.SideA, m.ActivePlayer())

	assert.Equal(t, models.PhaseRoundA, tickUntilTransition())
	assert.Equal(t, models.PhaseRoundB, m.Phase())
	assert.Equal(t, models.SideB, m.ActivePlayer())

	assert.Equal(t, models.PhaseRoundB, tickUntilTransition())
	assert.Equal(t, models.PhaseAd, m.Phase())
	assert.Equal(t, models.SideNone, m.ActivePlayer())

	assert.Equal(t, models.PhaseAd, tickUntilTransition())
	assert.Equal(t, models.PhaseVoting, m.Phase())

	assert.Equal(t, models.PhaseVoting, tickUntilTransition())
	assert.Equal(t, models.PhaseRage, m.Phase())

	assert.Equal(t, models.PhaseRage, tickUntilTransition())
	assert.Equal(t, models.PhaseFinished, m.Phase())
	assert.False(t, m.Timed())

	// finished 之後不再倒數
	_, advanced := m.Tick()
	assert.False(t, advanced)
}

func TestPhaseMachine_AdvanceForcesNextPhase(t *testing.T) {
	m := NewPhaseMachine(testDurations())

	prev, err := m.Advance() // waiting -> intro
	require.NoError(t, err)
	assert.Equal(t, models.PhaseWaiting, prev)
	assert.Equal(t, models.PhaseIntro, m.Phase())

	// 剩餘時間不影響強制推進
	prev, err = m.Advance()
	require.NoError(t, err)
	assert.Equal(t, models.PhaseIntro, prev)
	assert.Equal(t, models.PhaseRoundA, m.Phase())
	assert.Equal(t, 2, m.TimeLeft())
}

func TestPhaseMachine_AdvanceRejectedWhenFinished(t *testing.T) {
	m := NewPhaseMachine(testDurations())
	for m.Phase() != models.PhaseFinished {
		_, err := m.Advance()
		require.NoError(t, err)
	}

	_, err := m.Advance()
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, models.PhaseFinished, m.Phase())
}

func TestPhaseMachine_Reset(t *testing.T) {
	m := NewPhaseMachine(testDurations())
	require.NoError(t, m.Start())
	m.Tick()

	m.Reset()
	assert.Equal(t, models.PhaseWaiting, m.Phase())
	assert.Equal(t, 0, m.TimeLeft())
	assert.Equal(t, models.SideNone, m.ActivePlayer())

	// Reset 後可以重新 start
	require.NoError(t, m.Start())
	assert.Equal(t, models.PhaseIntro, m.Phase())
}
