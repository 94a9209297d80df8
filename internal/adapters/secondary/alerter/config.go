package alerter

type Config struct {
	BotToken string `envconfig:"BOT_TOKEN"`
	ChatID   int64  `envconfig:"CHAT_ID"`
}

// Enabled сообщает, заданы ли переменные окружения алертера
func (c *Config) Enabled() bool {
	return c.BotToken != "" && c.ChatID != 0
}
