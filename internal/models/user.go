package models

import (
	"gorm.io/gorm"
)

// User 表示系統中的註冊用戶
// 帳號是唯一需要持久化的資料，辯論房間本身只存在於記憶體中
type User struct {
	gorm.Model        // 內嵌 gorm.Model，提供 ID、CreatedAt、UpdatedAt 和 DeletedAt 字段
	Username   string `gorm:"uniqueIndex;not null" json:"username"` // 用戶名，必須唯一
	Password   string `gorm:"not null" json:"-"`                    // 密碼，json 序列化時會被忽略
}
