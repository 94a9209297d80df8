package s3

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Config struct {
	Host      string `envconfig:"HOST"`       // localhost:9000
	AccessKey string `envconfig:"ACCESS_KEY"` // minioadmin
	SecretKey string `envconfig:"SECRET_KEY"` // minioadmin
	Bucket    string `envconfig:"BUCKET" default:"images"`
	UseSSL    bool   `envconfig:"USE_SSL" default:"false"`
	// PublicBaseURL - если задан, URL строится как <base>/<object>;
	// иначе генерируется presigned URL с PresignTTL
	PublicBaseURL string `envconfig:"PUBLIC_BASE_URL"`
	PresignTTL    int    `envconfig:"PRESIGN_TTL" default:"10080"` // минуты, неделя
}

// Validate проверяет обязательные поля. Вызывается только когда
// бэкендом хостинга выбран s3: в остальных случаях секция не читается.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("s3 host is not set")
	}
	if c.AccessKey == "" {
		return fmt.Errorf("s3 access key is not set")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("s3 secret key is not set")
	}
	return nil
}

// NewClient создаёт новый MinIO клиент
func (c *Config) NewClient() (*minio.Client, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	client, err := minio.New(c.Host, &minio.Options{
		Creds:  credentials.NewStaticV4(c.AccessKey, c.SecretKey, ""),
		Secure: c.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, c.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", c.Bucket)
	}

	return client, nil
}
