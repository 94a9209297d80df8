package uploader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/admin/tg-bots/image2url-bot/internal/domain"
	"github.com/admin/tg-bots/image2url-bot/internal/usecases/uploader/texts"
)

// HandlePhoto принимает фото, прогоняет релей и отвечает пользователю
// ссылкой либо сообщением об отказе. Ошибка наружу уходит только если
// не удалось отправить сам ответ.
func (s *Service) HandlePhoto(ctx context.Context, message *domain.Message) error {
	chatID := message.Chat.ID

	if len(message.Photo) == 0 {
		return nil
	}

	// Статус "отправляет фото" на время релея; отказ не критичен
	if err := s.TelegramClient.SendChatAction(ctx, chatID, "upload_photo"); err != nil {
		s.Log.Warn("failed to send chat action",
			"error", err,
			"chat_id", chatID,
		)
	}

	// Telegram кладёт варианты по возрастанию разрешения - берём последний
	best := message.Photo[len(message.Photo)-1]

	result := s.relayPhoto(ctx, best.FileID)

	if !result.OK() {
		s.Log.Error("photo relay failed",
			"failure", result.Failure.String(),
			"error", result.Err,
			"chat_id", chatID,
			"file_id", best.FileID,
		)
	}

	s.recordRelay(ctx, chatID, result)

	return s.sendMessage(ctx, chatID, replyForResult(result))
}

// HandleText обрабатывает текст, не являющийся командой - бот принимает
// только фото, текст молча игнорируется
func (s *Service) HandleText(ctx context.Context, message *domain.Message) error {
	s.Log.Debug("ignoring plain text message", "chat_id", message.Chat.ID)
	return nil
}

// relayPhoto скачивает файл из Telegram во временный файл и загружает его
// на хостинг. Результат всегда классифицирован, временный файл удаляется
// на любом исходе.
func (s *Service) relayPhoto(ctx context.Context, fileID string) domain.RelayResult {
	fileInfo, err := s.TelegramClient.GetFile(ctx, fileID)
	if err != nil {
		return domain.RelayFailed(classifyRelayError(err), err)
	}

	data, err := s.TelegramClient.DownloadFile(ctx, fileInfo.FilePath)
	if err != nil {
		return domain.RelayFailed(classifyRelayError(err), err)
	}

	ext := path.Ext(fileInfo.FilePath)
	if ext == "" {
		ext = ".jpg"
	}

	tmpFile, err := os.CreateTemp("", "relay-*"+ext)
	if err != nil {
		return domain.RelayFailed(domain.RelayFailureInternal, fmt.Errorf("failed to create temp file: %w", err))
	}
	defer func() {
		tmpFile.Close()
		if removeErr := os.Remove(tmpFile.Name()); removeErr != nil {
			s.Log.Warn("failed to remove temp file",
				"error", removeErr,
				"path", tmpFile.Name(),
			)
		}
	}()

	if _, err := io.Copy(tmpFile, bytes.NewReader(data)); err != nil {
		return domain.RelayFailed(domain.RelayFailureInternal, fmt.Errorf("failed to write temp file: %w", err))
	}
	if _, err := tmpFile.Seek(0, io.SeekStart); err != nil {
		return domain.RelayFailed(domain.RelayFailureInternal, fmt.Errorf("failed to rewind temp file: %w", err))
	}

	url, err := s.Uploader.Upload(ctx, tmpFile, int64(len(data)), path.Base(fileInfo.FilePath))
	if err != nil {
		return domain.RelayFailed(classifyRelayError(err), err)
	}

	return domain.RelaySucceeded(url)
}

// recordRelay обновляет счётчики и публикует событие аудита (опционально)
func (s *Service) recordRelay(ctx context.Context, chatID int64, result domain.RelayResult) {
	s.incrRelayCounter(ctx, result.OK())

	if s.EventProducer == nil {
		return
	}

	event := domain.RelayEvent{
		ChatID:     chatID,
		Failure:    result.Failure,
		URL:        result.URL,
		OccurredAt: time.Now(),
	}
	if err := s.EventProducer.SendRelayEvent(ctx, event); err != nil {
		s.Log.Warn("failed to send relay event",
			"error", err,
			"chat_id", chatID,
		)
	}
}

// classifyRelayError мапит сентинели адаптеров в RelayFailure
func classifyRelayError(err error) domain.RelayFailure {
	switch {
	case errors.Is(err, domain.ErrDownloadFailed):
		return domain.RelayFailureDownload
	case errors.Is(err, domain.ErrUploadTransport):
		return domain.RelayFailureUploadTransport
	case errors.Is(err, domain.ErrUploadSemantic):
		return domain.RelayFailureUploadSemantic
	default:
		return domain.RelayFailureInternal
	}
}

// replyForResult подбирает текст ответа пользователю по исходу релея
func replyForResult(result domain.RelayResult) string {
	switch result.Failure {
	case domain.RelayFailureNone:
		return texts.FormatUploadSuccess(result.URL)
	case domain.RelayFailureDownload:
		return texts.DownloadFailed
	case domain.RelayFailureUploadTransport:
		return texts.UploadFailedHostError
	case domain.RelayFailureUploadSemantic:
		return texts.UploadFailedNoURL
	default:
		return texts.FormatInternalError(result.Err)
	}
}
