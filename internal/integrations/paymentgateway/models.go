package paymentgateway

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// CreatePaymentRequest запрос на создание pending-платежа
type CreatePaymentRequest struct {
	AppointmentID  int64   `json:"appointment_id"`
	Amount         float64 `json:"amount"`
	Method         string  `json:"method"`
	IdempotencyKey string  `json:"idempotency_key"`
}

// Payment модель платежа из платёжного шлюза
type Payment struct {
	ID            string  `json:"id"`
	AppointmentID int64   `json:"appointment_id"`
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
	Status        string  `json:"status"` // pending | settled
}

// ErrorResponse модель ошибки от платёжного шлюза
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
