package texts

import (
	"fmt"
	"strings"
)

// Тексты пользовательских сообщений. Маркдаун-разметка и эмодзи сохранены
// из продовой версии бота, менять без согласования с владельцем нельзя.

const (
	Welcome = "👋 **Welcome to Image Uploader Bot!**\n\n" +
		"📷 Send me an **image**, and I'll upload it and provide a direct **Shareable link**. 🔗\n\n" +
		"⚡ *Fast, Simple & Free!*\n\n" +
		"🔽 **Owner Information:**"

	DeveloperButtonText = "🛠 Developer"
	DeveloperButtonURL  = "https://t.me/botplays90"
	ChannelButtonText   = "📢 Join Channel"
	ChannelButtonURL    = "https://t.me/join_hyponet"

	NotAuthorized = "⛔ You are not authorized to use this command."

	UsersHeader = "📋 **Registered Users:**\n"
	UsersEmpty  = "⚠ No users found."
	UnknownCmd  = "🤔 Unknown command: /%s\nSend me a photo to get a shareable link."

	BroadcastUsage  = "⚠ Please provide a message to broadcast."
	BroadcastPrefix = "📢 **Broadcast:**\n"

	UploadSuccess         = "✅ **Image Uploaded!**\n🔗 [Click Here to View](%s)"
	UploadFailedNoURL     = "❌ **Upload Failed!** No valid URL returned from the image host."
	UploadFailedHostError = "❌ **Upload Failed!** Image host API error."
	DownloadFailed        = "❌ **Failed to download the image from Telegram.**"
	InternalError         = "⚠ **Error:** `%s`"

	StatsHeader = "📊 **Daily stats**\n"
)

// FormatUnknownCommand форматирует сообщение о неизвестной команде
func FormatUnknownCommand(command string) string {
	return fmt.Sprintf(UnknownCmd, command)
}

// FormatUploadSuccess форматирует ответ с публичной ссылкой
func FormatUploadSuccess(url string) string {
	return fmt.Sprintf(UploadSuccess, url)
}

// FormatInternalError форматирует ответ на неклассифицированную ошибку
func FormatInternalError(err error) string {
	return fmt.Sprintf(InternalError, err.Error())
}

// FormatUserList форматирует список пользователей для админа
func FormatUserList(lines []string) string {
	if len(lines) == 0 {
		return UsersEmpty
	}
	return UsersHeader + strings.Join(lines, "\n")
}

// FormatBroadcastReport форматирует итог рассылки для админа
func FormatBroadcastReport(sent, failed int) string {
	if failed == 0 {
		return fmt.Sprintf("✅ Broadcast sent successfully to %d users.", sent)
	}
	return fmt.Sprintf("✅ Broadcast finished: %d sent, %d failed.", sent, failed)
}

// FormatDailyStats форматирует ежедневную сводку для админа
func FormatDailyStats(users int64, succeeded, failed, restarts int64) string {
	var b strings.Builder
	b.WriteString(StatsHeader)
	b.WriteString(fmt.Sprintf("👥 Users: %d\n", users))
	b.WriteString(fmt.Sprintf("✅ Relays succeeded: %d\n", succeeded))
	b.WriteString(fmt.Sprintf("❌ Relays failed: %d\n", failed))
	b.WriteString(fmt.Sprintf("🔄 Poller restarts: %d", restarts))
	return b.String()
}
