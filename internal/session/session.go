// Package session пошаговый мастер оформления записи
//
// Сессия - чисто in-memory объект одного чекаута одного клиента:
// однопоточная, ничего не персистит, брошенная до подтверждения сессия
// не оставляет побочных эффектов. Заменяет неявное состояние экранных
// форм явной машиной шагов с валидацией на каждом переходе.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/avelir/salon-appointment-service/internal/domain"
	"github.com/avelir/salon-appointment-service/internal/pricing"
	resolveAvailability "github.com/avelir/salon-appointment-service/internal/usecase/resolve_availability"
	"github.com/avelir/salon-appointment-service/pkg/types"
)

// Session сессия оформления записи
// Шаги: CustomerInfo -> ServiceSelection -> ProductSelection -> Payment -> Confirmation
// Вперёд только через валидацию текущего шага, назад - без ограничений
type Session struct {
	cfg          Config
	resolver     AvailabilityResolver
	invoiceGen   InvoiceNumberGenerator
	timeProvider TimeProvider

	step      Step
	confirmed bool

	customer  domain.CustomerInfo
	date      time.Time
	startTime types.TimeString

	services []*serviceEntry
	products []*productEntry
	payment  domain.PaymentMethod
}

// New создает новую сессию оформления записи
func New(cfg Config, resolver AvailabilityResolver, invoiceGen InvoiceNumberGenerator, timeProvider TimeProvider) *Session {
	if cfg.MaxBookingDays <= 0 {
		cfg.MaxBookingDays = domain.DefaultMaxBookingDays
	}
	if cfg.WorkingHours.Start.IsZero() {
		cfg.WorkingHours.Start = types.TimeString(domain.DefaultOpenTime)
	}
	if cfg.WorkingHours.End.IsZero() {
		cfg.WorkingHours.End = types.TimeString(domain.DefaultCloseTime)
	}
	if cfg.CleanupBufferPercent <= 0 {
		cfg.CleanupBufferPercent = domain.CleanupBufferPercent
	}

	return &Session{
		cfg:          cfg,
		resolver:     resolver,
		invoiceGen:   invoiceGen,
		timeProvider: timeProvider,
		step:         StepCustomerInfo,
	}
}

// Step возвращает текущий шаг мастера
func (s *Session) Step() Step {
	return s.step
}

// SetCustomerInfo задаёт данные клиента (шаг CustomerInfo)
func (s *Session) SetCustomerInfo(customer domain.CustomerInfo, date time.Time, startTime types.TimeString) error {
	if s.confirmed {
		return ErrAlreadyConfirmed
	}
	s.customer = customer
	s.date = date
	s.startTime = startTime
	return nil
}

// AddService добавляет услугу в запись (шаг ServiceSelection)
// Мастер назначается отдельно через AssignStaff
func (s *Session) AddService(service *domain.Service) error {
	if s.confirmed {
		return ErrAlreadyConfirmed
	}
	for _, entry := range s.services {
		if entry.service.ID == service.ID {
			return ErrServiceAlreadySelected
		}
	}
	s.services = append(s.services, &serviceEntry{service: service})
	return nil
}

// RemoveService убирает услугу и её назначение мастера
func (s *Session) RemoveService(serviceID int64) {
	for i, entry := range s.services {
		if entry.service.ID == serviceID {
			s.services = append(s.services[:i], s.services[i+1:]...)
			return
		}
	}
}

// AssignStaff привязывает мастера к выбранной услуге
func (s *Session) AssignStaff(serviceID, staffID int64) error {
	if s.confirmed {
		return ErrAlreadyConfirmed
	}
	for _, entry := range s.services {
		if entry.service.ID == serviceID {
			entry.staffID = staffID
			return nil
		}
	}
	return ErrServiceNotSelected
}

// StaffChoices подбирает доступных мастеров для выбранной услуги
// Интервал услуги вычисляется от запрошенного времени с учётом позиций
// ранее выбранных услуг и буфера на уборку - guard пересечений сам
// про буфер не знает
func (s *Session) StaffChoices(ctx context.Context, serviceID int64) (*resolveAvailability.Response, error) {
	var entry *serviceEntry
	offset := 0
	for _, e := range s.services {
		if e.service.ID == serviceID {
			entry = e
			break
		}
		offset += paddedDuration(e.service.DurationMinutes, s.cfg.CleanupBufferPercent)
	}
	if entry == nil {
		return nil, ErrServiceNotSelected
	}

	start, err := s.startTime.AddMinutes(offset)
	if err != nil {
		return nil, fmt.Errorf("%w: segment start out of range: %v", ErrInternal, err)
	}

	return s.resolver.Execute(ctx, &resolveAvailability.Request{
		ServiceID:       serviceID,
		Date:            s.date,
		StartTime:       start,
		DurationMinutes: paddedDuration(entry.service.DurationMinutes, s.cfg.CleanupBufferPercent),
	})
}

// AddProduct добавляет товар к записи
// Остаток на складе при выборе не списывается - только при завершении записи
func (s *Session) AddProduct(product *domain.Product, quantity int) error {
	if s.confirmed {
		return ErrAlreadyConfirmed
	}
	for _, entry := range s.products {
		if entry.product.ID == product.ID {
			entry.quantity += quantity
			return nil
		}
	}
	s.products = append(s.products, &productEntry{product: product, quantity: quantity})
	return nil
}

// RemoveProduct убирает товар из записи
func (s *Session) RemoveProduct(productID int64) {
	for i, entry := range s.products {
		if entry.product.ID == productID {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return
		}
	}
}

// SetPaymentMethod задаёт способ оплаты (шаг Payment)
func (s *Session) SetPaymentMethod(method domain.PaymentMethod) error {
	if s.confirmed {
		return ErrAlreadyConfirmed
	}
	s.payment = method
	return nil
}

// Next валидирует текущий шаг и переходит к следующему
// При ошибках валидации шаг не меняется, возвращается ValidationErrors
func (s *Session) Next() error {
	if s.confirmed {
		return ErrAlreadyConfirmed
	}
	if s.step == StepConfirmation {
		return nil
	}

	if errs := s.validateStep(s.step); errs.HasErrors() {
		return errs
	}

	s.step++
	return nil
}

// Back возвращается на предыдущий шаг без повторной валидации
func (s *Session) Back() {
	if s.step > StepCustomerInfo && !s.confirmed {
		s.step--
	}
}

// Totals возвращает текущие суммы по выбранным услугам и товарам
// Пересчитываются из актуальных данных каталога, агрегаты клиента не используются
func (s *Session) Totals() pricing.Totals {
	items := make([]pricing.LineItem, 0, len(s.services)+len(s.products))

	for _, entry := range s.services {
		items = append(items, pricing.LineItem{
			Price:           entry.service.Price,
			DiscountPercent: entry.service.DiscountPercent,
			Quantity:        1,
		})
	}
	for _, entry := range s.products {
		items = append(items, pricing.LineItem{
			Price:           entry.product.Price,
			DiscountPercent: entry.product.DiscountPercent,
			Quantity:        entry.quantity,
		})
	}

	return pricing.LineTotal(items)
}

// TotalDurationMinutes суммарная длительность услуг с буфером на уборку
func (s *Session) TotalDurationMinutes() int {
	total := 0
	for _, entry := range s.services {
		total += paddedDuration(entry.service.DurationMinutes, s.cfg.CleanupBufferPercent)
	}
	return total
}

// Confirm фиксирует сессию в неизменяемый booking request
// Доступен только на шаге Confirmation; суммы замораживаются,
// генерируется номер счета, сегменты раскладываются друг за другом
// от запрошенного времени
func (s *Session) Confirm() (*domain.BookingRequest, error) {
	if s.step != StepConfirmation {
		return nil, ErrNotAtConfirmation
	}
	if s.confirmed {
		return nil, ErrAlreadyConfirmed
	}

	segments := make([]domain.RequestSegment, 0, len(s.services))
	offset := 0

	for _, entry := range s.services {
		start, err := s.startTime.AddMinutes(offset)
		if err != nil {
			return nil, fmt.Errorf("%w: segment start out of range: %v", ErrInternal, err)
		}

		segments = append(segments, domain.RequestSegment{
			ServiceID:       entry.service.ID,
			ServiceName:     entry.service.Name,
			StaffID:         entry.staffID,
			StartTime:       start,
			DurationMinutes: entry.service.DurationMinutes,
			Price:           pricing.Round2(pricing.DiscountedPrice(entry.service.Price, entry.service.DiscountPercent)),
			OriginalPrice:   pricing.Round2(entry.service.Price),
		})

		offset += paddedDuration(entry.service.DurationMinutes, s.cfg.CleanupBufferPercent)
	}

	products := make([]domain.ProductSelection, 0, len(s.products))
	for _, entry := range s.products {
		products = append(products, domain.ProductSelection{
			ProductID:       entry.product.ID,
			ProductName:     entry.product.Name,
			Quantity:        entry.quantity,
			UnitPrice:       entry.product.Price,
			DiscountPercent: entry.product.DiscountPercent,
		})
	}

	totals := s.Totals()
	s.confirmed = true

	return &domain.BookingRequest{
		InvoiceNumber: s.invoiceGen.Next(),
		Customer:      s.customer,
		Date:          s.date,
		Segments:      segments,
		Products:      products,
		PaymentMethod: s.payment,
		Totals: domain.Totals{
			Original:   totals.Original,
			Discounted: totals.Discounted,
			Savings:    totals.Savings,
		},
	}, nil
}

// paddedDuration длительность с буфером на уборку, округление вверх
func paddedDuration(minutes, bufferPercent int) int {
	padded := minutes * (100 + bufferPercent)
	if padded%100 != 0 {
		return padded/100 + 1
	}
	return padded / 100
}
