// Package api 定義 HTTP 路由與處理器。
//
// 這個包把 REST 請求（帳號、房間列表、會議憑證）轉換為服務層調用，
// 並負責把 /rooms/:id/ws 升級為 WebSocket 後交給網關接管。
package api
