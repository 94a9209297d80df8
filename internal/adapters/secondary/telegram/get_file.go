package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/admin/tg-bots/image2url-bot/internal/domain"
)

// GetFileResponse ответ от Telegram API для getFile
type GetFileResponse struct {
	APIResponse
	Result *domain.FileInfo `json:"result"`
}

// GetFile резолвит file_id в file_path для скачивания
func (c *Client) GetFile(ctx context.Context, fileID string) (*domain.FileInfo, error) {
	reqURL := fmt.Sprintf("%s/getFile?file_id=%s", c.baseURL, url.QueryEscape(fileID))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var apiResp GetFileResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		c.log.Error("failed to unmarshal response",
			"error", err,
			"status_code", resp.StatusCode,
			"body", string(body),
		)
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !apiResp.OK || apiResp.Result == nil {
		c.log.Error("telegram API returned error",
			"error_code", apiResp.ErrorCode,
			"description", apiResp.Description,
			"file_id", fileID,
		)
		return nil, fmt.Errorf("%w: getFile: %s (code: %d)",
			domain.ErrDownloadFailed, apiResp.Description, apiResp.ErrorCode)
	}

	return apiResp.Result, nil
}

// DownloadFile скачивает байты файла по file_path из getFile.
// Не-200 ответ помечается domain.ErrDownloadFailed.
func (c *Client) DownloadFile(ctx context.Context, filePath string) ([]byte, error) {
	reqURL := fmt.Sprintf("%s/%s", c.fileBaseURL, filePath)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Error("file download returned non-OK status",
			"status_code", resp.StatusCode,
			"file_path", filePath,
		)
		return nil, fmt.Errorf("%w: status %d", domain.ErrDownloadFailed, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrDownloadFailed, err)
	}

	c.log.Debug("file downloaded",
		"file_path", filePath,
		"size", len(data),
	)

	return data, nil
}
