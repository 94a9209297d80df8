package domain

import "errors"

// Сентинельные ошибки адаптеров: usecase классифицирует их через errors.Is
// в RelayFailure, не разбирая текст.
var (
	// ErrDownloadFailed - Telegram отдал не-200 на скачивание файла
	ErrDownloadFailed = errors.New("file download failed")
	// ErrUploadTransport - хостинг ответил не-200
	ErrUploadTransport = errors.New("upload transport failed")
	// ErrUploadSemantic - хостинг ответил 200 без ожидаемого URL
	ErrUploadSemantic = errors.New("upload response missing url")
	// ErrUserNotFound - пользователь не найден в директории
	ErrUserNotFound = errors.New("user not found")
)
