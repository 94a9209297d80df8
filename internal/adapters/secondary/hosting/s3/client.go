package s3

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"github.com/admin/tg-bots/image2url-bot/internal/domain"
	"github.com/admin/tg-bots/image2url-bot/internal/ports/hosting"
)

// Client альтернативный бэкенд хостинга поверх S3-совместимого хранилища.
// Реализует тот же порт, что и ImgBB
type Client struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
	presignTTL    time.Duration
	log           *slog.Logger
}

// NewClient создаёт новый S3 аплоадер
func NewClient(client *minio.Client, cfg *Config, log *slog.Logger) hosting.IUploader {
	presignTTL := time.Duration(cfg.PresignTTL) * time.Minute
	if presignTTL <= 0 {
		presignTTL = 7 * 24 * time.Hour
	}

	return &Client{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		presignTTL:    presignTTL,
		log:           log,
	}
}

// Upload кладёт объект в bucket и возвращает ссылку на него.
// Имя объекта случайное: исходное имя файла Telegram не уникально.
func (c *Client) Upload(ctx context.Context, file io.Reader, size int64, filename string) (string, error) {
	objectName := uuid.New().String() + path.Ext(filename)

	_, err := c.client.PutObject(ctx, c.bucket, objectName, file, size, minio.PutObjectOptions{
		ContentType: "image/jpeg",
	})
	if err != nil {
		c.log.Error("failed to put object",
			"error", err,
			"bucket", c.bucket,
			"object", objectName,
		)
		return "", fmt.Errorf("%w: %v", domain.ErrUploadTransport, err)
	}

	if c.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s", c.publicBaseURL, objectName), nil
	}

	url, err := c.client.PresignedGetObject(ctx, c.bucket, objectName, c.presignTTL, nil)
	if err != nil {
		c.log.Error("failed to generate presigned URL",
			"error", err,
			"bucket", c.bucket,
			"object", objectName,
		)
		return "", fmt.Errorf("%w: presign: %v", domain.ErrUploadSemantic, err)
	}

	c.log.Debug("object uploaded",
		"bucket", c.bucket,
		"object", objectName,
		"size", size,
	)

	return url.String(), nil
}
