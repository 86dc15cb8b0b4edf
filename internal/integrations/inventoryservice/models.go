package inventoryservice

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// StockChangeRequest запрос на изменение остатка товара
type StockChangeRequest struct {
	Quantity int `json:"quantity"`
}

// StockLevel модель остатка товара
type StockLevel struct {
	ProductID int64 `json:"product_id"`
	Stock     int   `json:"stock"`
}

// ErrorResponse модель ошибки от сервиса склада
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
