package paymentgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/avelir/salon-appointment-service/internal/domain"
)

// Client клиент для работы с платёжным шлюзом
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента платёжного шлюза
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CreatePendingPayment создает pending-платёж на сумму записи
// Каждый запрос несёт idempotency key: при сетевом ретрае шлюз не создаст дубликат
func (c *Client) CreatePendingPayment(ctx context.Context, appointmentID int64, amount float64, method domain.PaymentMethod) (*Payment, error) {
	url := fmt.Sprintf("%s/internal/payments", c.baseURL)

	payload := CreatePaymentRequest{
		AppointmentID:  appointmentID,
		Amount:         amount,
		Method:         string(method),
		IdempotencyKey: uuid.NewString(),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated, http.StatusOK:
		// Продолжаем обработку
	case http.StatusConflict:
		c.log.Warn("CreatePendingPayment: pending payment already exists for appointment_id=%d", appointmentID)
		return nil, ErrDuplicatePayment
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	var payment Payment
	if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("CreatePendingPayment: created payment id=%s for appointment_id=%d, amount=%.2f",
		payment.ID, appointmentID, amount)

	return &payment, nil
}

// SettlePayment отмечает платёж по записи как оплаченный
func (c *Client) SettlePayment(ctx context.Context, appointmentID int64) error {
	url := fmt.Sprintf("%s/internal/payments/by-appointment/%d/settle", c.baseURL, appointmentID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
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
		c.log.Info("SettlePayment: settled payment for appointment_id=%d", appointmentID)
		return nil
	case http.StatusNotFound:
		return ErrPaymentNotFound
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}
