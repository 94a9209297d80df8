package domain

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// BotUser - запись в директории пользователей.
// first_name опционален: старые записи хранили только chat_id.
type BotUser struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ChatID    int64     `json:"chat_id" db:"chat_id"`
	FirstName *string   `json:"first_name,omitempty" db:"first_name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// DisplayName возвращает имя для списков: first_name либо chat_id
func (u *BotUser) DisplayName() string {
	if u.FirstName != nil && *u.FirstName != "" {
		return *u.FirstName
	}
	return strconv.FormatInt(u.ChatID, 10)
}
