package uploader

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/admin/tg-bots/image2url-bot/internal/domain"
	"github.com/admin/tg-bots/image2url-bot/internal/usecases/uploader/texts"
)

func (s *Service) HandleCommand(ctx context.Context, message *domain.Message, command string, args string) error {
	switch command {
	case "start":
		return s.HandleStart(ctx, message)
	case "users":
		return s.HandleUsers(ctx, message)
	case "broadcast":
		return s.HandleBroadcast(ctx, message, args)
	default:
		return s.sendMessage(ctx, message.Chat.ID, texts.FormatUnknownCommand(command))
	}
}

// HandleStart регистрирует пользователя и отправляет приветствие.
// Повторный /start ничего не перезаписывает: запись создаётся один раз.
func (s *Service) HandleStart(ctx context.Context, message *domain.Message) error {
	user := &domain.BotUser{
		ID:        uuid.New(),
		ChatID:    message.Chat.ID,
		CreatedAt: time.Now(),
	}
	if message.From != nil && message.From.FirstName != "" {
		firstName := message.From.FirstName
		user.FirstName = &firstName
	}

	created, err := s.UserRepo.Register(ctx, user)
	if err != nil {
		s.Log.Error("failed to register user",
			"error", err,
			"chat_id", message.Chat.ID,
		)
		return fmt.Errorf("failed to register user: %w", err)
	}

	if created {
		s.Log.Info("new user registered",
			"chat_id", message.Chat.ID,
			"first_name", user.DisplayName(),
		)
	}

	return s.sendMessageWithKeyboard(ctx, message.Chat.ID, texts.Welcome, welcomeKeyboard())
}

// HandleUsers отправляет админу список зарегистрированных пользователей
func (s *Service) HandleUsers(ctx context.Context, message *domain.Message) error {
	if !s.isAdmin(message.Chat.ID) {
		return s.sendMessage(ctx, message.Chat.ID, texts.NotAuthorized)
	}

	users, err := s.UserRepo.GetAll(ctx)
	if err != nil {
		s.Log.Error("failed to list users", "error", err)
		return fmt.Errorf("failed to list users: %w", err)
	}

	lines := make([]string, 0, len(users))
	for _, user := range users {
		lines = append(lines, fmt.Sprintf("%s (%d)", user.DisplayName(), user.ChatID))
	}

	return s.sendMessage(ctx, s.AdminChatID, texts.FormatUserList(lines))
}

// HandleBroadcast рассылает текст после команды всем пользователям (только админ)
func (s *Service) HandleBroadcast(ctx context.Context, message *domain.Message, args string) error {
	if !s.isAdmin(message.Chat.ID) {
		return s.sendMessage(ctx, message.Chat.ID, texts.NotAuthorized)
	}

	report, err := s.Broadcast(ctx, args)
	if err != nil {
		if errors.Is(err, errEmptyBroadcast) {
			return s.sendMessage(ctx, s.AdminChatID, texts.BroadcastUsage)
		}
		return err
	}

	return s.sendMessage(ctx, s.AdminChatID, texts.FormatBroadcastReport(report.Sent, report.Failed))
}

// isAdmin проверяет, что чат принадлежит админу бота
func (s *Service) isAdmin(chatID int64) bool {
	return s.AdminChatID != 0 && chatID == s.AdminChatID
}

// welcomeKeyboard строит inline клавиатуру приветствия с URL-кнопками
func welcomeKeyboard() map[string]interface{} {
	return map[string]interface{}{
		"inline_keyboard": [][]map[string]interface{}{
			{
				{"text": texts.DeveloperButtonText, "url": texts.DeveloperButtonURL},
				{"text": texts.ChannelButtonText, "url": texts.ChannelButtonURL},
			},
		},
	}
}
