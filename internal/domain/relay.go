package domain

import "time"

// RelayFailure - классификация отказа релея фото
type RelayFailure string

const (
	// RelayFailureNone - успех
	RelayFailureNone RelayFailure = ""
	// RelayFailureDownload - не удалось скачать файл из Telegram
	RelayFailureDownload RelayFailure = "download"
	// RelayFailureUploadTransport - хостинг ответил не-200
	RelayFailureUploadTransport RelayFailure = "upload_transport"
	// RelayFailureUploadSemantic - хостинг ответил 200, но без URL в теле
	RelayFailureUploadSemantic RelayFailure = "upload_semantic"
	// RelayFailureInternal - любая другая ошибка внутри релея
	RelayFailureInternal RelayFailure = "internal"
)

func (f RelayFailure) String() string {
	return string(f)
}

// RelayResult - явный результат релея: либо URL, либо помеченный отказ.
// Релей никогда не отдаёт "сырую" ошибку наверх без классификации.
type RelayResult struct {
	URL     string
	Failure RelayFailure
	Err     error
}

func (r RelayResult) OK() bool {
	return r.Failure == RelayFailureNone
}

// RelaySucceeded строит успешный результат
func RelaySucceeded(url string) RelayResult {
	return RelayResult{URL: url}
}

// RelayFailed строит результат с отказом
func RelayFailed(failure RelayFailure, err error) RelayResult {
	return RelayResult{Failure: failure, Err: err}
}

// RelayEvent - событие аудита релея для Kafka
type RelayEvent struct {
	ChatID    int64        `json:"chat_id"`
	Failure   RelayFailure `json:"failure,omitempty"`
	URL       string       `json:"url,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// BroadcastReport - итог рассылки: успехи и отказы считаются независимо
type BroadcastReport struct {
	Sent   int
	Failed int
}
