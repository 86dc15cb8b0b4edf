package submit_booking

import (
	"time"

	"github.com/avelir/salon-appointment-service/internal/domain"
	submitBooking "github.com/avelir/salon-appointment-service/internal/usecase/submit_booking"
)

// CustomerPayload данные клиента
type CustomerPayload struct {
	FullName string  `json:"fullName"`
	Gender   string  `json:"gender"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Note     *string `json:"note,omitempty"`
}

// ServiceSelectionPayload выбранная услуга с назначенным мастером
type ServiceSelectionPayload struct {
	ServiceID int64 `json:"serviceId"`
	StaffID   int64 `json:"staffId"`
}

// ProductSelectionPayload выбранный товар с количеством
type ProductSelectionPayload struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// SubmitBookingRequest HTTP request model
type SubmitBookingRequest struct {
	Customer      CustomerPayload           `json:"customer"`
	Date          string                    `json:"date"`      // "2026-03-02"
	StartTime     string                    `json:"startTime"` // "10:00"
	Services      []ServiceSelectionPayload `json:"services"`
	Products      []ProductSelectionPayload `json:"products,omitempty"`
	PaymentMethod string                    `json:"paymentMethod"`
}

// SegmentResponse один сегмент созданной записи
type SegmentResponse struct {
	ServiceID       int64   `json:"serviceId"`
	ServiceName     string  `json:"serviceName"`
	StaffID         int64   `json:"staffId"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64             `json:"id"`
	InvoiceNumber   string            `json:"invoiceNumber"`
	Status          string            `json:"status"`
	Date            string            `json:"date"`
	PaymentMethod   string            `json:"paymentMethod"`
	Segments        []SegmentResponse `json:"segments"`
	OriginalTotal   float64           `json:"originalTotal"`
	DiscountedTotal float64           `json:"discountedTotal"`
	Savings         float64           `json:"savings"`
	CreatedAt       string            `json:"createdAt"`
}

// ValidationErrorResponse ответ с ошибками валидации по полям
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitBooking.Response) *AppointmentResponse {
	appt := resp.Appointment

	out := &AppointmentResponse{
		ID:              appt.ID,
		InvoiceNumber:   appt.InvoiceNumber,
		Status:          string(appt.Status),
		Date:            appt.Date.Format(domain.DateFormat),
		PaymentMethod:   string(appt.PaymentMethod),
		Segments:        make([]SegmentResponse, 0, len(appt.Segments)),
		OriginalTotal:   appt.OriginalTotal,
		DiscountedTotal: appt.DiscountedTotal,
		Savings:         appt.Savings,
		CreatedAt:       appt.CreatedAt.Format(time.RFC3339),
	}

	for _, seg := range appt.Segments {
		out.Segments = append(out.Segments, SegmentResponse{
			ServiceID:       seg.ServiceID,
			ServiceName:     seg.ServiceName,
			StaffID:         seg.StaffID,
			StartTime:       seg.StartTime.String(),
			DurationMinutes: seg.DurationMinutes,
			Price:           seg.Price,
		})
	}

	return out
}
