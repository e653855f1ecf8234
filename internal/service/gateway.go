package service

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"shoom_backend/internal/models"
)

// 事件名稱，與前端的 socket 協議一致
const (
	// 服務端 -> 客戶端
	EventStateUpdate      = "state_update"
	EventChatUpdate       = "chat_update"
	EventReactionReceived = "reaction_received"
	EventError            = "error"

	// 客戶端 -> 服務端
	EventAdminAction  = "admin_action"
	EventSendMessage  = "send_message"
	EventSendReaction = "send_reaction"
)

// Envelope 是出站 WebSocket 消息的統一封裝
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// inboundEnvelope 是入站消息的封裝，內容延後按事件類型解析
type inboundEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// MessagePayload 對應 send_message 事件的內容
type MessagePayload struct {
	User       string `json:"user"`
	Text       string `json:"text"`
	IsDonation bool   `json:"isDonation"`
	Amount     int    `json:"amount"`
}

type adminPayload struct {
	Action string `json:"action"`
}

type reactionPayload struct {
	Type string `json:"type"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// Client 代表一個 WebSocket 連線，角色在握手時決定且之後不可變更
type Client struct {
	ID   string      // 連線編號，也是投票的冪等鍵
	Name string      // 顯示名稱
	Role models.Role // viewer / debater / admin
	Side models.Side // 僅辯手有值，由房間在入座時指派

	room    *Room
	conn    *websocket.Conn
	send    chan Envelope // 消息發送通道，用於異步傳送消息
	limiter *rate.Limiter
}

// NewClient 創建一個尚未加入任何房間的客戶端
func NewClient(conn *websocket.Conn, name string, role models.Role) *Client {
	return &Client{
		ID:      uuid.NewString(),
		Name:    name,
		Role:    role,
		conn:    conn,
		send:    make(chan Envelope, 256), // 設置緩衝大小為 256 的消息通道
		limiter: rate.NewLimiter(rate.Limit(5), 10),
	}
}

func (c *Client) closeConn() {
	if c.conn != nil {
		c.conn.Close()
	}
}

// Gateway 負責把連線事件橋接到房間，並把房間的變化推回所有連線
type Gateway struct {
	registry *RoomRegistry
}

// NewGateway 創建廣播網關
func NewGateway(registry *RoomRegistry) *Gateway {
	return &Gateway{registry: registry}
}

// HandleConnection 接手一條已升級的 WebSocket 連線，直到斷線才返回
// 房間不存在時惰性創建；碰上正在回收的房間就重試一次，讓它重建
func (g *Gateway) HandleConnection(conn *websocket.Conn, roomID, name string, role models.Role) {
	defer conn.Close()

	for attempts := 0; attempts < 2; attempts++ {
		room, err := g.registry.GetOrCreate(roomID, roomID)
		if err != nil {
			writeCloseMessage(conn, err.Error())
			return
		}

		client := NewClient(conn, name, role)
		if err := room.Join(client); err != nil {
			if err == ErrRoomClosed {
				continue
			}
			writeCloseMessage(conn, err.Error())
			return
		}
		client.room = room

		go client.writePump()
		client.readPump()

		room.Leave(client)
		return
	}
}

// readPump 持續監聽並處理從客戶端接收的消息
func (c *Client) readPump() {
	c.conn.SetReadLimit(4096) // 設置最大消息大小為 4KB
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket unexpected close error: %v", err)
			}
			break
		}

		var env inboundEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			log.Printf("message parse error: %v", err)
			continue
		}

		// 入站頻率限制，刷屏的消息直接丟棄
		if !c.limiter.Allow() {
			continue
		}

		switch env.Event {
		case EventAdminAction:
			var p adminPayload
			if err := json.Unmarshal(env.Data, &p); err != nil {
				continue
			}
			c.room.AdminAction(c, p.Action)

		case EventSendMessage:
			var p MessagePayload
			if err := json.Unmarshal(env.Data, &p); err != nil {
				continue
			}
			c.room.SendMessage(c, p)

		case EventSendReaction:
			var p reactionPayload
			if err := json.Unmarshal(env.Data, &p); err != nil {
				continue
			}
			c.room.SendReaction(c, p.Type)

		default:
			log.Printf("unknown event %q from client %s", env.Event, c.ID)
		}
	}
}

// writePump 處理向客戶端發送消息的邏輯
// send 通道只會由房間迴圈關閉，關閉即代表連線該結束了
func (c *Client) writePump() {
	// 設置心跳檢查計時器
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case env, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(env)
			if err != nil {
				log.Printf("message encoding error: %v", err)
				continue
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			if _, err := w.Write(data); err != nil {
				return
			}
			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			// 發送心跳包
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func writeCloseMessage(conn *websocket.Conn, reason string) {
	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason))
}
