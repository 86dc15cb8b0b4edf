package inventoryservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с сервисом склада
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента склада
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// DecrementStock списывает количество товара со склада
// Возвращает ErrInsufficientStock, если остатка не хватает - списание не происходит
func (c *Client) DecrementStock(ctx context.Context, productID int64, quantity int) error {
	return c.changeStock(ctx, productID, quantity, "decrement")
}

// RestoreStock возвращает количество товара на склад
// Используется для отката ранее списанных позиций, когда завершение записи
// прервалось на последующей позиции
func (c *Client) RestoreStock(ctx context.Context, productID int64, quantity int) error {
	return c.changeStock(ctx, productID, quantity, "restore")
}

func (c *Client) changeStock(ctx context.Context, productID int64, quantity int, op string) error {
	url := fmt.Sprintf("%s/internal/products/%d/stock/%s", c.baseURL, productID, op)

	body, err := json.Marshal(StockChangeRequest{Quantity: quantity})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		c.log.Info("changeStock: %s product_id=%d quantity=%d", op, productID, quantity)
		return nil
	case http.StatusConflict:
		c.log.Warn("changeStock: insufficient stock for product_id=%d, requested=%d", productID, quantity)
		return fmt.Errorf("%w: product_id=%d", ErrInsufficientStock, productID)
	case http.StatusNotFound:
		return fmt.Errorf("%w: product_id=%d", ErrProductNotFound, productID)
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}
