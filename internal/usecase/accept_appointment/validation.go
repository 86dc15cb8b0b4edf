package accept_appointment

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	for _, id := range req.Executors {
		if id <= 0 {
			return fmt.Errorf("%w: executor IDs must be positive", ErrInvalidInput)
		}
	}

	return nil
}
