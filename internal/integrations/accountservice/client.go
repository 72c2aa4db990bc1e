package accountservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client клиент для работы с AccountService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента AccountService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetAccounts получает все учетные записи
func (c *Client) GetAccounts(ctx context.Context) ([]Account, error) {
	url := fmt.Sprintf("%s/internal/accounts", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var accounts []Account
	if err := json.NewDecoder(resp.Body).Decode(&accounts); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return accounts, nil
}

// GetNamesWithGracefulDegradation возвращает полные имена владельцев по ID.
// При недоступности AccountService возвращает пустую карту и ErrServiceDegraded,
// что позволяет выполнить поиск без имен
func (c *Client) GetNamesWithGracefulDegradation(ctx context.Context) (map[uuid.UUID]string, error) {
	accounts, err := c.GetAccounts(ctx)
	if err != nil {
		c.log.Error("AccountService unavailable, applying graceful degradation: %v", err)
		return map[uuid.UUID]string{}, fmt.Errorf("%w: %v", ErrServiceDegraded, err)
	}

	names := make(map[uuid.UUID]string, len(accounts))
	for _, a := range accounts {
		names[a.ID] = a.FullName()
	}

	c.log.Info("Fetched account names: count=%d", len(names))
	return names, nil
}
