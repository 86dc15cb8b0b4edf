package models

import (
	"errors"
	"time"

	"github.com/avelir/salon-appointment-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// GetAppointmentsRequest запрос на получение записей с фильтрацией
type GetAppointmentsRequest struct {
	Status    *string    `json:"status,omitempty"`    // Фильтр по статусу (опционально)
	StartDate *time.Time `json:"startDate,omitempty"` // Начало периода (опционально)
	EndDate   *time.Time `json:"endDate,omitempty"`   // Конец периода (опционально)
	StaffID   *int64     `json:"staffId,omitempty"`   // Фильтр по мастеру (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		StaffID:   r.StaffID,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// RejectAppointmentRequest запрос на отклонение записи
type RejectAppointmentRequest struct {
	Reason string `json:"reason"`
}

// Response модели

// SegmentResponse одна услуга записи с мастером и временем
type SegmentResponse struct {
	ID              int64   `json:"id"`
	ServiceID       int64   `json:"serviceId"`
	ServiceName     string  `json:"serviceName"`
	StaffID         int64   `json:"staffId"`
	StartTime       string  `json:"startTime"` // "10:00"
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	OriginalPrice   float64 `json:"originalPrice"`
}

// ProductLineResponse одна позиция товара записи
type ProductLineResponse struct {
	ID              int64   `json:"id"`
	ProductID       int64   `json:"productId"`
	ProductName     string  `json:"productName"`
	Quantity        int     `json:"quantity"`
	UnitPrice       float64 `json:"unitPrice"`
	DiscountPercent float64 `json:"discountPercent"`
}

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID            int64  `json:"id"`
	InvoiceNumber string `json:"invoiceNumber"`
	Status        string `json:"status"`

	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone string  `json:"customerPhone"`
	Gender        string  `json:"gender"`
	Note          *string `json:"note,omitempty"`

	Date          string `json:"date"` // "2026-03-02"
	PaymentMethod string `json:"paymentMethod"`

	Segments []SegmentResponse     `json:"segments,omitempty"`
	Products []ProductLineResponse `json:"products,omitempty"`

	OriginalTotal   float64 `json:"originalTotal"`
	DiscountedTotal float64 `json:"discountedTotal"`
	Savings         float64 `json:"savings"`

	Executors    []int64 `json:"executors,omitempty"`
	RejectReason *string `json:"rejectReason,omitempty"`
	Paid         bool    `json:"paid"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:              a.ID,
		InvoiceNumber:   a.InvoiceNumber,
		Status:          string(a.Status),
		CustomerName:    a.CustomerName,
		CustomerEmail:   a.CustomerEmail,
		CustomerPhone:   a.CustomerPhone,
		Gender:          a.Gender,
		Note:            a.Note,
		Date:            a.Date.Format(domain.DateFormat),
		PaymentMethod:   string(a.PaymentMethod),
		OriginalTotal:   a.OriginalTotal,
		DiscountedTotal: a.DiscountedTotal,
		Savings:         a.Savings,
		Executors:       a.Executors,
		RejectReason:    a.RejectReason,
		Paid:            a.Paid,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}

	for _, seg := range a.Segments {
		resp.Segments = append(resp.Segments, SegmentResponse{
			ID:              seg.ID,
			ServiceID:       seg.ServiceID,
			ServiceName:     seg.ServiceName,
			StaffID:         seg.StaffID,
			StartTime:       seg.StartTime.String(),
			DurationMinutes: seg.DurationMinutes,
			Price:           seg.Price,
			OriginalPrice:   seg.OriginalPrice,
		})
	}

	for _, line := range a.Products {
		resp.Products = append(resp.Products, ProductLineResponse{
			ID:              line.ID,
			ProductID:       line.ProductID,
			ProductName:     line.ProductName,
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			DiscountPercent: line.DiscountPercent,
		})
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	if appointments == nil {
		return &AppointmentListResponse{
			Appointments: []AppointmentResponse{},
		}
	}

	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, len(appointments)),
	}

	for i, appt := range appointments {
		if apptResp := FromDomainAppointment(appt); apptResp != nil {
			resp.Appointments[i] = *apptResp
		}
	}

	return resp
}

// ToDomainStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)

	validStatuses := []domain.AppointmentStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusRejected,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
