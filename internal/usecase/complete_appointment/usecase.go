// Package complete_appointment завершение подтверждённой записи
// со списанием проданных товаров со склада
package complete_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/avelir/salon-appointment-service/internal/domain"
	appointmentRepo "github.com/avelir/salon-appointment-service/internal/infra/storage/appointment"
	"github.com/avelir/salon-appointment-service/internal/integrations/inventoryservice"
)

// UseCase use case завершения записи
//
// Списание товаров - всё или ничего: нехватка любой позиции откатывает
// уже списанные и оставляет запись в confirmed. Только после успешного
// списания всех позиций запись переходит в completed
type UseCase struct {
	appointmentRepo AppointmentRepository
	inventoryClient InventoryClient
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	inventoryClient InventoryClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		inventoryClient: inventoryClient,
		logger:          logger,
	}
}

// Execute завершает запись: confirmed -> completed
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.AppointmentID <= 0 {
		return nil, fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	uc.logger.Info("CompleteAppointment: id=%d", req.AppointmentID)

	appt, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	if !appt.CanBeCompleted() {
		uc.logger.Warn("CompleteAppointment: id=%d has status %s, cannot complete", appt.ID, appt.Status)
		return nil, fmt.Errorf("%w: status is %s", ErrInvalidStatus, appt.Status)
	}

	if err := uc.decrementProducts(ctx, appt); err != nil {
		return nil, err
	}

	if err := uc.appointmentRepo.UpdateStatus(ctx, appt.ID, domain.StatusCompleted); err != nil {
		// Статус не изменился - возвращаем списанные товары на склад
		uc.restoreProducts(ctx, appt, len(appt.Products))
		return nil, fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
	}

	appt.Status = domain.StatusCompleted

	uc.logger.Info("CompleteAppointment: completed id=%d invoice=%s", appt.ID, appt.InvoiceNumber)
	return &Response{Appointment: appt}, nil
}

// decrementProducts списывает все позиции записи со склада
// При нехватке любой позиции ранее списанные возвращаются обратно
func (uc *UseCase) decrementProducts(ctx context.Context, appt *domain.Appointment) error {
	for i, line := range appt.Products {
		if err := uc.inventoryClient.DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
			uc.restoreProducts(ctx, appt, i)

			if errors.Is(err, inventoryservice.ErrInsufficientStock) {
				uc.logger.Warn("CompleteAppointment: id=%d insufficient stock for product=%d",
					appt.ID, line.ProductID)
				return fmt.Errorf("%w: product %q", ErrInsufficientStock, line.ProductName)
			}
			return fmt.Errorf("%w: failed to decrement stock for product=%d: %v",
				ErrInternal, line.ProductID, err)
		}
	}

	return nil
}

// restoreProducts возвращает на склад первые n позиций записи
// Ошибки восстановления только логируются - компенсация не должна
// маскировать исходную причину отказа
func (uc *UseCase) restoreProducts(ctx context.Context, appt *domain.Appointment, n int) {
	for i := 0; i < n; i++ {
		line := appt.Products[i]
		if err := uc.inventoryClient.RestoreStock(ctx, line.ProductID, line.Quantity); err != nil {
			uc.logger.Error("CompleteAppointment: id=%d failed to restore stock for product=%d: %v",
				appt.ID, line.ProductID, err)
		}
	}
}
