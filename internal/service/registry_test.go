package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoom_backend/internal/models"
	"shoom_backend/internal/utils"
)

func newTestRegistry(t *testing.T, cfg RoomConfig) *RoomRegistry {
	t.Helper()
	reg := NewRoomRegistry(cfg)
	t.Cleanup(func() {
		for _, s := range reg.ListActive() {
			_ = reg.Destroy(s.ID)
		}
	})
	return reg
}

func TestRegistry_CreateFromTopicDerivesID(t *testing.T) {
	reg := newTestRegistry(t, slowCfg())

	room, err := reg.CreateFromTopic("  Elon Musk vs Mark  ")
	require.NoError(t, err)
	assert.Equal(t, "elon-musk-vs-mark", room.ID)
	assert.Equal(t, "Elon Musk vs Mark", room.Title)

	// 同一個辯題再創建一次，合流到同一個實例
	again, err := reg.CreateFromTopic("Elon Musk vs Mark")
	require.NoError(t, err)
	assert.Same(t, room, again)
}

func TestRegistry_CreateFromInvalidTopic(t *testing.T) {
	reg := newTestRegistry(t, slowCfg())

	_, err := reg.CreateFromTopic("???")
	assert.ErrorIs(t, err, utils.ErrInvalidTopic)
}

func TestRegistry_GetOrCreateConvergesUnderContention(t *testing.T) {
	reg := newTestRegistry(t, slowCfg())

	// 十個分頁同時打開同一個房間，必須落在同一個實例上
	rooms := make([]*Room, 10)
	var wg sync.WaitGroup
	for i := range rooms {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			room, err := reg.GetOrCreate("same-room", "Same Room")
			assert.NoError(t, err)
			rooms[i] = room
		}(i)
	}
	wg.Wait()

	for _, room := range rooms[1:] {
		assert.Same(t, rooms[0], room)
	}
	assert.Len(t, reg.ListActive(), 1)
}

func TestRegistry_GetNotFound(t *testing.T) {
	reg := newTestRegistry(t, slowCfg())

	_, err := reg.Get("no-such-room")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRegistry_ListActiveSortedByID(t *testing.T) {
	reg := newTestRegistry(t, slowCfg())

	_, err := reg.CreateFromTopic("zebra debate")
	require.NoError(t, err)
	_, err = reg.CreateFromTopic("apple debate")
	require.NoError(t, err)

	list := reg.ListActive()
	require.Len(t, list, 2)
	assert.Equal(t, "apple-debate", list[0].ID)
	assert.Equal(t, "zebra-debate", list[1].ID)
	assert.Equal(t, models.PhaseWaiting, list[0].Status)
	assert.Equal(t, 0, list[0].Viewers)
}

func TestRegistry_IdleRoomReaped(t *testing.T) {
	reg := newTestRegistry(t, RoomConfig{
		Durations:    testDurations(),
		TickInterval: 5 * time.Millisecond,
		IdleGrace:    20 * time.Millisecond,
	})

	room, err := reg.CreateFromTopic("empty room")
	require.NoError(t, err)

	// 一直沒有人加入，房間自我回收並從註冊表消失
	assert.Eventually(t, room.Closed, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool {
		_, err := reg.Get(room.ID)
		return err == ErrRoomNotFound
	}, time.Second, 5*time.Millisecond)
}

func TestRegistry_OccupiedRoomNotReaped(t *testing.T) {
	reg := newTestRegistry(t, RoomConfig{
		Durations:    testDurations(),
		TickInterval: 5 * time.Millisecond,
		IdleGrace:    20 * time.Millisecond,
	})

	room, err := reg.CreateFromTopic("busy room")
	require.NoError(t, err)
	joinTestClient(t, room, models.RoleViewer)

	time.Sleep(100 * time.Millisecond)
	assert.False(t, room.Closed())
	got, err := reg.Get(room.ID)
	require.NoError(t, err)
	assert.Same(t, room, got)
}

func TestRegistry_RecreateAfterDestroy(t *testing.T) {
	reg := newTestRegistry(t, slowCfg())

	room, err := reg.CreateFromTopic("short lived")
	require.NoError(t, err)

	require.NoError(t, reg.Destroy(room.ID))
	assert.Eventually(t, room.Closed, time.Second, 5*time.Millisecond)

	// 同名房間可以重建，拿到的是全新的實例
	fresh, err := reg.GetOrCreate(room.ID, "Short Lived")
	require.NoError(t, err)
	assert.NotSame(t, room, fresh)
	assert.False(t, fresh.Closed())
}

func TestRegistry_DestroyNotFound(t *testing.T) {
	reg := newTestRegistry(t, slowCfg())

	err := reg.Destroy("never-existed")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}
