package utils

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidTopic 表示辯題經過清洗後為空，無法產生房間 ID
var ErrInvalidTopic = errors.New("無效的辯題")

var slugStrip = regexp.MustCompile(`[^a-z0-9_-]+`)

const slugMaxLen = 50

// DeriveRoomID 從自由輸入的辯題產生 URL 安全的房間 ID
// 規則與前端一致："Elon Musk vs Mark" -> "elon-musk-vs-mark"
// 流程：轉小寫、連續空白折疊為單一 "-"、去除允許清單外的字符、截斷至 50 字
func DeriveRoomID(topic string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(topic))
	s = strings.Join(strings.Fields(s), "-")
	s = slugStrip.ReplaceAllString(s, "")
	if len(s) > slugMaxLen {
		s = s[:slugMaxLen]
	}
	if s == "" {
		return "", ErrInvalidTopic
	}
	return s, nil
}
