package service

import (
	"sort"
	"strings"
	"sync"

	"shoom_backend/internal/models"
	"shoom_backend/internal/utils"
)

// RoomRegistry 擁有所有房間的生命週期，是外部連線的唯一入口
// 房間只會由它創建，回收則由房間自我了斷後回呼 detach 移除
type RoomRegistry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
	cfg   RoomConfig
}

// NewRoomRegistry 創建一個空的房間註冊表
func NewRoomRegistry(cfg RoomConfig) *RoomRegistry {
	return &RoomRegistry{
		rooms: make(map[string]*Room),
		cfg:   cfg,
	}
}

// CreateFromTopic 從自由輸入的辯題產生房間 ID 並確保房間存在
func (reg *RoomRegistry) CreateFromTopic(topic string) (*Room, error) {
	id, err := utils.DeriveRoomID(topic)
	if err != nil {
		return nil, err
	}
	return reg.GetOrCreate(id, strings.TrimSpace(topic))
}

// GetOrCreate 以房間 ID 查找，不存在時惰性創建
// 兩個分頁同時用同一個 ID 創建時會合流到同一個房間實例
func (reg *RoomRegistry) GetOrCreate(id, title string) (*Room, error) {
	id, err := utils.DeriveRoomID(id)
	if err != nil {
		return nil, err
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	if room, ok := reg.rooms[id]; ok && !room.Closed() {
		return room, nil
	}

	room := NewRoom(id, title, reg.cfg, reg.remove)
	reg.rooms[id] = room
	go room.Run()
	return room, nil
}

// Get 查找既有房間，不做創建
func (reg *RoomRegistry) Get(id string) (*Room, error) {
	reg.mu.RLock()
	room, ok := reg.rooms[id]
	reg.mu.RUnlock()

	if !ok || room.Closed() {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// ListActive 產生大廳顯示用的房間摘要，是一次性的快照而非訂閱
func (reg *RoomRegistry) ListActive() []models.RoomSummary {
	reg.mu.RLock()
	rooms := make([]*Room, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		rooms = append(rooms, room)
	}
	reg.mu.RUnlock()

	out := make([]models.RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		summary, err := room.Summary()
		if err != nil {
			continue // 正在回收的房間不列出
		}
		out = append(out, summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Destroy 立即關閉並移除指定房間
func (reg *RoomRegistry) Destroy(id string) error {
	room, err := reg.Get(id)
	if err != nil {
		return err
	}
	room.Close()
	return nil
}

// remove 由房間在關閉時回呼，只移除仍指向該實例的條目
// 指標比對讓回收與同名房間的重建互不干擾
func (reg *RoomRegistry) remove(r *Room) {
	reg.mu.Lock()
	if reg.rooms[r.ID] == r {
		delete(reg.rooms, r.ID)
	}
	reg.mu.Unlock()
}
