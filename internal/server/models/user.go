// Серверная модель пользователя
package models

import "time"

// User — запись пользователя в хранилище.
//
// ID непрозрачен для остальных слоёв: UUID в Postgres, ObjectID (hex) в MongoDB.
// PasswordHash никогда не отдаётся клиенту и не пишется в логи.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
