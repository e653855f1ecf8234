package service

import "errors"

// 房間相關錯誤，由處理器映射為對應的 HTTP 或 WebSocket 回應
var (
	ErrRoomNotFound      = errors.New("房間不存在")
	ErrRoomClosed        = errors.New("房間已關閉")
	ErrNotAuthorized     = errors.New("沒有管理員權限")
	ErrInvalidTransition = errors.New("無效的階段轉換")
	ErrUnknownAction     = errors.New("未知的管理指令")
	ErrSeatsFull         = errors.New("辯手席位已滿")
)

// 憑證簽發相關的驗證錯誤
var (
	ErrEmptyRoomName        = errors.New("房間名稱不能為空")
	ErrEmptyParticipantName = errors.New("參與者名稱不能為空")
)
