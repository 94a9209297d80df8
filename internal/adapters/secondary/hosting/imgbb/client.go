package imgbb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"log/slog"

	"github.com/admin/tg-bots/image2url-bot/internal/domain"
	"github.com/admin/tg-bots/image2url-bot/internal/ports/hosting"
)

// Client клиент для загрузки картинок в ImgBB.
// API: multipart POST с ключом в query, URL лежит в data.url ответа.
type Client struct {
	httpClient *http.Client
	cfg        *Config
	log        *slog.Logger
}

// NewClient создаёт новый ImgBB клиент
func NewClient(cfg *Config, log *slog.Logger) hosting.IUploader {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cfg: cfg,
		log: log,
	}
}

// uploadResponse тело успешного ответа ImgBB
type uploadResponse struct {
	Data *struct {
		URL string `json:"url"`
	} `json:"data"`
	Success bool `json:"success"`
	Status  int  `json:"status"`
}

// Upload отправляет картинку и возвращает публичный URL.
// Не-200 ответ -> domain.ErrUploadTransport, 200 без data.url -> domain.ErrUploadSemantic.
func (c *Client) Upload(ctx context.Context, file io.Reader, size int64, filename string) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}

	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to copy file into form: %w", err)
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	reqURL := fmt.Sprintf("%s?key=%s", c.cfg.BaseURL, url.QueryEscape(c.cfg.APIKey))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Error("failed to send upload request",
			"error", err,
			"filename", filename,
		)
		return "", fmt.Errorf("%w: %v", domain.ErrUploadTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", domain.ErrUploadTransport, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.log.Error("upload returned non-OK status",
			"status_code", resp.StatusCode,
			"filename", filename,
			"body", string(body),
		)
		return "", fmt.Errorf("%w: status %d", domain.ErrUploadTransport, resp.StatusCode)
	}

	var uploadResp uploadResponse
	if err := json.Unmarshal(body, &uploadResp); err != nil {
		c.log.Error("failed to unmarshal upload response",
			"error", err,
			"filename", filename,
			"body", string(body),
		)
		return "", fmt.Errorf("%w: %v", domain.ErrUploadSemantic, err)
	}

	if uploadResp.Data == nil || uploadResp.Data.URL == "" {
		c.log.Error("upload response missing data.url",
			"filename", filename,
			"body", string(body),
		)
		return "", fmt.Errorf("%w: no data.url in response", domain.ErrUploadSemantic)
	}

	c.log.Debug("image uploaded",
		"filename", filename,
		"size", size,
		"url", uploadResp.Data.URL,
	)

	return uploadResp.Data.URL, nil
}
