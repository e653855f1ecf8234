package service

import (
	"strings"
	"time"

	"shoom_backend/internal/models"
)

// 管理員指令
const (
	ActionStart     = "start"
	ActionNextRound = "next_round"
	ActionReset     = "reset"
)

// RoomConfig 控制房間的時間參數，測試時可以縮短
type RoomConfig struct {
	Durations    PhaseDurations
	TickInterval time.Duration // 計時器間隔，預設一秒
	IdleGrace    time.Duration // 無人房間的回收寬限期，預設五分鐘
}

func (c RoomConfig) withDefaults() RoomConfig {
	if c.Durations == nil {
		c.Durations = DefaultPhaseDurations()
	}
	if c.TickInterval <= 0 {
		c.TickInterval = time.Second
	}
	if c.IdleGrace <= 0 {
		c.IdleGrace = 5 * time.Minute
	}
	return c
}

// Room 代表一個辯論房間，聚合狀態機、聊天記錄、計票器與連線集合
// 所有狀態只由 Run 啟動的那個 goroutine 讀寫，外部透過指令通道溝通，
// 因此計時器跳動和管理員指令永遠不會交錯出撕裂的狀態
type Room struct {
	ID    string
	Title string

	cfg     RoomConfig
	machine *PhaseMachine
	chat    *ChatLog
	tally   *VoteTally
	winner  models.Outcome

	clients map[*Client]bool
	seatA   *Client // 紅方辯手席
	seatB   *Client // 藍方辯手席

	inbox      chan roomCommand
	done       chan struct{}
	emptySince time.Time
	detach     func(*Room) // 由 Registry 提供，回收時移除註冊
}

type roomCommand interface{}

type joinCmd struct {
	client *Client
	reply  chan error
}

type leaveCmd struct{ client *Client }

type adminCmd struct {
	client *Client
	action string
}

type messageCmd struct {
	client  *Client
	payload MessagePayload
}

type reactionCmd struct {
	client *Client
	kind   string
}

type snapshotCmd struct{ reply chan models.RoomSnapshot }

type closeCmd struct{}

// NewRoom 創建一個房間，呼叫方負責啟動 Run
func NewRoom(id, title string, cfg RoomConfig, detach func(*Room)) *Room {
	cfg = cfg.withDefaults()
	return &Room{
		ID:      id,
		Title:   title,
		cfg:     cfg,
		machine: NewPhaseMachine(cfg.Durations),
		chat:    NewChatLog(),
		tally:   NewVoteTally(),
		clients: make(map[*Client]bool),
		inbox:   make(chan roomCommand, 64),
		done:    make(chan struct{}),
		detach:  detach,
	}
}

// Run 是房間的事件迴圈，獨佔房間狀態直到房間被回收
func (r *Room) Run() {
	ticker := time.NewTicker(r.cfg.TickInterval)
	defer ticker.Stop()
	defer close(r.done)

	r.emptySince = time.Now()
	for {
		select {
		case cmd := <-r.inbox:
			switch c := cmd.(type) {
			case joinCmd:
				r.handleJoin(c)
			case leaveCmd:
				r.handleLeave(c.client)
			case adminCmd:
				r.handleAdmin(c.client, c.action)
			case messageCmd:
				r.handleMessage(c.client, c.payload)
			case reactionCmd:
				r.handleReaction(c.client, c.kind)
			case snapshotCmd:
				c.reply <- r.snapshot()
			case closeCmd:
				r.shutdown()
				return
			}

		case <-ticker.C:
			r.handleTick()
			// 空房超過寬限期就自我回收，迴圈結束後不會再有任何 tick
			if len(r.clients) == 0 && time.Since(r.emptySince) >= r.cfg.IdleGrace {
				r.shutdown()
				return
			}
		}
	}
}

// Join 把連線註冊進房間，房間已關閉時回傳 ErrRoomClosed
func (r *Room) Join(c *Client) error {
	reply := make(chan error, 1)
	select {
	case r.inbox <- joinCmd{client: c, reply: reply}:
	case <-r.done:
		return ErrRoomClosed
	}
	select {
	case err := <-reply:
		return err
	case <-r.done:
		return ErrRoomClosed
	}
}

// Leave 把連線移出房間，重複呼叫是安全的
func (r *Room) Leave(c *Client) { r.post(leaveCmd{client: c}) }

// AdminAction 投遞一個管理員指令，結果以 error 事件回覆給發送者
func (r *Room) AdminAction(c *Client, action string) {
	r.post(adminCmd{client: c, action: action})
}

// SendMessage 投遞一條聊天消息
func (r *Room) SendMessage(c *Client, p MessagePayload) {
	r.post(messageCmd{client: c, payload: p})
}

// SendReaction 投遞一個即時表情
func (r *Room) SendReaction(c *Client, kind string) {
	r.post(reactionCmd{client: c, kind: kind})
}

// Snapshot 取得房間當前的完整狀態
func (r *Room) Snapshot() (models.RoomSnapshot, error) {
	reply := make(chan models.RoomSnapshot, 1)
	select {
	case r.inbox <- snapshotCmd{reply: reply}:
	case <-r.done:
		return models.RoomSnapshot{}, ErrRoomClosed
	}
	select {
	case snap := <-reply:
		return snap, nil
	case <-r.done:
		return models.RoomSnapshot{}, ErrRoomClosed
	}
}

// Summary 取得大廳列表用的房間摘要
func (r *Room) Summary() (models.RoomSummary, error) {
	snap, err := r.Snapshot()
	if err != nil {
		return models.RoomSummary{}, err
	}
	return models.RoomSummary{
		ID:      r.ID,
		Title:   r.Title,
		Status:  snap.Phase,
		Viewers: snap.ViewersCount,
	}, nil
}

// Close 立即關閉房間並斷開所有連線
func (r *Room) Close() { r.post(closeCmd{}) }

// Closed 回報房間的事件迴圈是否已結束
func (r *Room) Closed() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

func (r *Room) post(cmd roomCommand) {
	select {
	case r.inbox <- cmd:
	case <-r.done:
	}
}

func (r *Room) handleJoin(cmd joinCmd) {
	c := cmd.client
	if c.Role == models.RoleDebater {
		// 辯手席位是明確指派的，不依賴任何到場順序
		switch {
		case r.seatA == nil:
			r.seatA = c
			c.Side = models.SideA
		case r.seatB == nil:
			r.seatB = c
			c.Side = models.SideB
		default:
			cmd.reply <- ErrSeatsFull
			return
		}
	}
	r.clients[c] = true
	cmd.reply <- nil

	// 新連線先收到完整快照，再讓所有人看到觀眾數的變化
	r.enqueue(c, Envelope{Event: EventStateUpdate, Data: r.snapshot()})
	r.broadcastState()
}

func (r *Room) handleLeave(c *Client) {
	if !r.clients[c] {
		return
	}
	r.remove(c)
	r.broadcastState()
}

func (r *Room) handleAdmin(c *Client, action string) {
	if c.Role != models.RoleAdmin {
		r.sendError(c, ErrNotAuthorized)
		return
	}

	var err error
	switch action {
	case ActionStart:
		err = r.machine.Start()
	case ActionNextRound:
		var prev models.Phase
		prev, err = r.machine.Advance()
		if err == nil {
			r.afterTransition(prev)
		}
	case ActionReset:
		// 清掉計時器、發言方、票數與勝負，聊天記錄保留作回顧
		r.machine.Reset()
		r.tally.Reset()
		r.winner = models.OutcomeNone
	default:
		err = ErrUnknownAction
	}

	if err != nil {
		r.sendError(c, err)
		return
	}
	r.broadcastState()
}

func (r *Room) handleMessage(c *Client, p MessagePayload) {
	user := p.User
	if user == "" {
		user = c.Name
	}
	msg := models.NewChatMessage(user, p.Text, p.IsDonation, p.Amount)

	// /vote 指令在投票階段先計入票數，之後照常進入聊天記錄
	if r.machine.Phase() == models.PhaseVoting {
		if side, ok := parseVote(p.Text); ok {
			r.tally.Cast(c.ID, side)
		}
	}

	if r.chat.Append(msg) {
		r.broadcast(Envelope{Event: EventChatUpdate, Data: msg})
	}
}

func (r *Room) handleReaction(c *Client, kind string) {
	if !models.ValidReaction(kind) {
		return
	}
	r.broadcast(Envelope{Event: EventReactionReceived, Data: models.Reaction{Type: kind}})
}

func (r *Room) handleTick() {
	prev, advanced := r.machine.Tick()
	if advanced {
		r.afterTransition(prev)
	}
	if r.machine.Timed() || advanced {
		r.broadcastState()
	}
}

// afterTransition 在離開 voting 的那一刻結算勝負
func (r *Room) afterTransition(prev models.Phase) {
	if prev == models.PhaseVoting {
		r.winner = r.tally.Outcome()
	}
}

func (r *Room) snapshot() models.RoomSnapshot {
	return models.RoomSnapshot{
		Phase:        r.machine.Phase(),
		TimeLeft:     r.machine.TimeLeft(),
		ActivePlayer: r.machine.ActivePlayer(),
		ViewersCount: len(r.clients),
		ChatMessages: r.chat.Messages(),
		Donations:    r.chat.Donations(),
		Winner:       r.winner,
	}
}

func (r *Room) broadcastState() {
	r.broadcast(Envelope{Event: EventStateUpdate, Data: r.snapshot()})
}

// broadcast 向房間內所有連線做盡力而為的推送
// 隊列已滿的連線直接斷開，不能讓單一連線拖住整個房間
func (r *Room) broadcast(env Envelope) {
	for c := range r.clients {
		select {
		case c.send <- env:
		default:
			r.remove(c)
			c.closeConn()
		}
	}
}

// enqueue 向單一連線推送，同樣不允許阻塞房間迴圈
func (r *Room) enqueue(c *Client, env Envelope) {
	if !r.clients[c] {
		return
	}
	select {
	case c.send <- env:
	default:
		r.remove(c)
		c.closeConn()
	}
}

func (r *Room) sendError(c *Client, err error) {
	r.enqueue(c, Envelope{Event: EventError, Data: errorPayload{Message: err.Error()}})
}

func (r *Room) remove(c *Client) {
	delete(r.clients, c)
	close(c.send)
	if r.seatA == c {
		r.seatA = nil
	}
	if r.seatB == c {
		r.seatB = nil
	}
	if len(r.clients) == 0 {
		r.emptySince = time.Now()
	}
}

func (r *Room) shutdown() {
	if r.detach != nil {
		r.detach(r)
	}
	for c := range r.clients {
		r.remove(c)
		c.closeConn()
	}
}

// parseVote 解析聊天路徑進來的 "/vote A" 或 "/vote B" 指令
func parseVote(text string) (models.Side, bool) {
	fields := strings.Fields(text)
	if len(fields) != 2 || fields[0] != "/vote" {
		return models.SideNone, false
	}
	switch strings.ToUpper(fields[1]) {
	case "A":
		return models.SideA, true
	case "B":
		return models.SideB, true
	}
	return models.SideNone, false
}
