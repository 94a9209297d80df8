package hosting

import (
	"context"
	"io"
)

// IUploader - загрузка картинки на внешний хостинг.
// Возвращает публичный URL; отказы помечаются сентинелями
// domain.ErrUploadTransport / domain.ErrUploadSemantic.
type IUploader interface {
	Upload(ctx context.Context, file io.Reader, size int64, filename string) (string, error)
}
