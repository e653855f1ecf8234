// Package middleware 提供 HTTP 請求處理的中間件。
//
// 目前只有 JWT 身份驗證，保護需要登入的帳號端點。
// 房間與 WebSocket 端點是公開的，角色在連線時由查詢參數決定。
package middleware
