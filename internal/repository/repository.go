package repository

import "shoom_backend/internal/storage"

// Repositories 彙總所有持久化入口
// 只有用戶帳號需要落地，辯論房間本身是記憶體中的短命物件
type Repositories struct {
	User UserRepository
}

func NewRepositories(db *storage.PostgresDB) *Repositories {
	return &Repositories{
		User: NewUserRepository(db),
	}
}
