// Package mediastore реализует клиент внешнего медиахранилища изображений.
//
// Загрузка кодирует содержимое файла в data URI и отправляет его по HTTP,
// в ответ приходит стабильная https-ссылка, которая и хранится в каталоге.
// Удаление восстанавливает идентификатор объекта из хвостового сегмента ссылки.
package mediastore

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/magabrotheeeer/museum-catalog/internal/config"
)

// Client — HTTP-клиент медиахранилища.
type Client struct {
	baseURL    string
	cloudName  string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
}

// NewClient создаёт новый клиент медиахранилища.
func NewClient(cfg config.MediaStore) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		cloudName:  cfg.CloudName,
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body any) (*http.Request, error) {
	url := fmt.Sprintf("%s/v1_1/%s/image/%s", c.baseURL, c.cloudName, endpoint)
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return nil, err
	}
	auth := base64.StdEncoding.EncodeToString([]byte(c.apiKey + ":" + c.apiSecret))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// Upload загружает содержимое файла в указанную папку хранилища
// и возвращает стабильную https-ссылку на объект.
func (c *Client) Upload(ctx context.Context, content []byte, originalFilename, folder string) (string, error) {
	const op = "mediastore.Upload"

	req, err := c.newRequest(ctx, http.MethodPost, "upload", UploadRequest{
		File:   DataURI(content, originalFilename),
		Folder: folder,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("%s: unexpected status: %s", op, resp.Status)
	}

	var uploadResp UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploadResp); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return uploadResp.SecureURL, nil
}

// Delete удаляет объект, на который указывает ссылка.
// Идентификатор объекта восстанавливается из хвостового сегмента ссылки
// и квалифицируется папкой.
func (c *Client) Delete(ctx context.Context, rawURL, folder string) error {
	const op = "mediastore.Delete"

	publicID := ExtractPublicID(rawURL)
	if publicID == "" {
		return fmt.Errorf("%s: cannot derive public id from %q", op, rawURL)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "destroy", DestroyRequest{
		PublicID: folder + "/" + publicID,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status: %s", op, resp.Status)
	}
	return nil
}

// DataURI кодирует содержимое файла в data URI с mime-типом,
// определённым по расширению исходного имени файла.
func DataURI(content []byte, originalFilename string) string {
	mimeType := mime.TypeByExtension(path.Ext(originalFilename))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(content)
}

// ExtractPublicID возвращает идентификатор объекта из ссылки:
// хвостовой сегмент пути до первой точки.
func ExtractPublicID(rawURL string) string {
	parts := strings.Split(rawURL, "/")
	filename := parts[len(parts)-1]
	return strings.SplitN(filename, ".", 2)[0]
}
