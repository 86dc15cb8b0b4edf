package get_availability

import (
	resolveAvailability "github.com/avelir/salon-appointment-service/internal/usecase/resolve_availability"
)

// StaffOptionResponse один доступный мастер
type StaffOptionResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position,omitempty"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Staff           []StaffOptionResponse `json:"staff"`
	Reason          string                `json:"reason"`
	SpecialistCount int                   `json:"specialistCount"`
	BusyCount       int                   `json:"busyCount"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *resolveAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		Staff:           make([]StaffOptionResponse, 0, len(resp.Staff)),
		Reason:          string(resp.Reason),
		SpecialistCount: resp.SpecialistCount,
		BusyCount:       resp.BusyCount,
	}

	for _, option := range resp.Staff {
		out.Staff = append(out.Staff, StaffOptionResponse{
			ID:       option.ID,
			Name:     option.Name,
			Position: option.Position,
		})
	}

	return out
}
