package resolve_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelir/salon-appointment-service/internal/domain"
	catalogRepo "github.com/avelir/salon-appointment-service/internal/infra/storage/catalog"
	"github.com/avelir/salon-appointment-service/pkg/types"
)

type fakeCatalog struct {
	services map[int64]*domain.Service
	staff    []*domain.StaffMember
}

func (f *fakeCatalog) GetService(_ context.Context, id int64) (*domain.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		// fake возвращает sentinel репозитория каталога, usecase должен его распознать
		return nil, catalogRepo.ErrServiceNotFound
	}
	return svc, nil
}

func (f *fakeCatalog) ListStaff(_ context.Context) ([]*domain.StaffMember, error) {
	return f.staff, nil
}

type fakeSchedule struct {
	segments map[int64][]*domain.AppointmentSegment // по staffID
}

func (f *fakeSchedule) SegmentsFor(_ context.Context, staffID int64, _ time.Time) ([]*domain.AppointmentSegment, error) {
	return f.segments[staffID], nil
}

type fixedTime struct{ t time.Time }

func (f *fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func window(start, end string) *domain.TimeWindow {
	return &domain.TimeWindow{Start: types.TimeString(start), End: types.TimeString(end)}
}

// Понедельник
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func newTestUseCase(catalog *fakeCatalog, sched *fakeSchedule) *UseCase {
	uc := NewUseCase(catalog, sched, nopLogger{})
	uc.timeProvider = &fixedTime{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	return uc
}

func defaultCatalog() *fakeCatalog {
	return &fakeCatalog{
		services: map[int64]*domain.Service{
			1: {ID: 1, Name: "Haircut", Price: 50, DurationMinutes: 30},
		},
		staff: []*domain.StaffMember{
			{
				ID:              10,
				Name:            "Anna",
				Position:        "stylist",
				Specializations: []int64{1},
				Availability:    domain.WeekAvailability{Monday: window("09:00", "17:00")},
			},
		},
	}
}

func TestExecute_FreeSlotBeforeExistingBooking(t *testing.T) {
	// Мастер занят 10:00-10:30, запрос на 09:30-10:00 - интервалы граничат
	sched := &fakeSchedule{segments: map[int64][]*domain.AppointmentSegment{
		10: {{StaffID: 10, StartTime: "10:00", DurationMinutes: 30}},
	}}
	uc := newTestUseCase(defaultCatalog(), sched)

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: 1,
		Date:      monday,
		StartTime: "09:30",
	})

	require.NoError(t, err)
	assert.Equal(t, ReasonOK, resp.Reason)
	require.Len(t, resp.Staff, 1)
	assert.Equal(t, int64(10), resp.Staff[0].ID)
}

func TestExecute_OverlappingSlotExcludesStaff(t *testing.T) {
	// Запрос на 09:45-10:15 пересекается с сегментом 10:00-10:30
	sched := &fakeSchedule{segments: map[int64][]*domain.AppointmentSegment{
		10: {{StaffID: 10, StartTime: "10:00", DurationMinutes: 30}},
	}}
	uc := newTestUseCase(defaultCatalog(), sched)

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: 1,
		Date:      monday,
		StartTime: "09:45",
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Staff)
	assert.Equal(t, ReasonAllBusy, resp.Reason)
	assert.Equal(t, 1, resp.SpecialistCount)
	assert.Equal(t, 1, resp.BusyCount)
}

func TestExecute_CapabilityFilterIsAbsolute(t *testing.T) {
	// Мастер без специализации не попадает в результат даже при полной доступности
	catalog := defaultCatalog()
	catalog.staff = append(catalog.staff, &domain.StaffMember{
		ID:              20,
		Name:            "Boris",
		Position:        "colorist",
		Specializations: []int64{99},
		Availability:    domain.WeekAvailability{Monday: window("09:00", "21:00")},
	})
	uc := newTestUseCase(catalog, &fakeSchedule{segments: map[int64][]*domain.AppointmentSegment{}})

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: 1,
		Date:      monday,
		StartTime: "11:00",
	})

	require.NoError(t, err)
	require.Len(t, resp.Staff, 1)
	assert.Equal(t, int64(10), resp.Staff[0].ID)
}

func TestExecute_NoSpecialists(t *testing.T) {
	catalog := defaultCatalog()
	catalog.services[2] = &domain.Service{ID: 2, Name: "Massage", Price: 70, DurationMinutes: 60}
	uc := newTestUseCase(catalog, &fakeSchedule{})

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: 2,
		Date:      monday,
		StartTime: "11:00",
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Staff)
	assert.Equal(t, ReasonNoSpecialists, resp.Reason)
	assert.Zero(t, resp.SpecialistCount)
}

func TestExecute_DayOff(t *testing.T) {
	// Вторник отсутствует в расписании мастера - выходной
	tuesday := monday.AddDate(0, 0, 1)
	uc := newTestUseCase(defaultCatalog(), &fakeSchedule{})

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: 1,
		Date:      tuesday,
		StartTime: "11:00",
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Staff)
	assert.Equal(t, ReasonDayOff, resp.Reason)
	assert.Equal(t, 1, resp.SpecialistCount)
}

func TestExecute_ServiceEndingAfterWindowEndIneligible(t *testing.T) {
	// Окно до 17:00, услуга 30 минут с 16:45 заканчивается в 17:15
	uc := newTestUseCase(defaultCatalog(), &fakeSchedule{})

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: 1,
		Date:      monday,
		StartTime: "16:45",
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Staff)
	assert.Equal(t, ReasonDayOff, resp.Reason)
}

func TestExecute_DurationOverridePadsInterval(t *testing.T) {
	// С буфером длительность 40 минут: 09:30-10:10 пересекается с 10:00-10:30
	sched := &fakeSchedule{segments: map[int64][]*domain.AppointmentSegment{
		10: {{StaffID: 10, StartTime: "10:00", DurationMinutes: 30}},
	}}
	uc := newTestUseCase(defaultCatalog(), sched)

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID:       1,
		Date:            monday,
		StartTime:       "09:30",
		DurationMinutes: 40,
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Staff)
	assert.Equal(t, ReasonAllBusy, resp.Reason)
}

func TestExecute_StableOrderByName(t *testing.T) {
	catalog := defaultCatalog()
	catalog.staff = []*domain.StaffMember{
		{ID: 30, Name: "Vera", Specializations: []int64{1}, Availability: domain.WeekAvailability{Monday: window("09:00", "17:00")}},
		{ID: 10, Name: "Anna", Specializations: []int64{1}, Availability: domain.WeekAvailability{Monday: window("09:00", "17:00")}},
		{ID: 20, Name: "Boris", Specializations: []int64{1}, Availability: domain.WeekAvailability{Monday: window("09:00", "17:00")}},
	}
	uc := newTestUseCase(catalog, &fakeSchedule{})

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: 1,
		Date:      monday,
		StartTime: "11:00",
	})

	require.NoError(t, err)
	require.Len(t, resp.Staff, 3)
	assert.Equal(t, "Anna", resp.Staff[0].Name)
	assert.Equal(t, "Boris", resp.Staff[1].Name)
	assert.Equal(t, "Vera", resp.Staff[2].Name)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(defaultCatalog(), &fakeSchedule{})

	tests := []struct {
		name string
		req  *Request
	}{
		{"нулевой serviceID", &Request{Date: monday, StartTime: "10:00"}},
		{"нулевая дата", &Request{ServiceID: 1, StartTime: "10:00"}},
		{"пустое время", &Request{ServiceID: 1, Date: monday}},
		{"некорректное время", &Request{ServiceID: 1, Date: monday, StartTime: "25:99"}},
		{"дата в прошлом", &Request{ServiceID: 1, Date: monday.AddDate(-1, 0, 0), StartTime: "10:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := newTestUseCase(defaultCatalog(), &fakeSchedule{})

	_, err := uc.Execute(context.Background(), &Request{
		ServiceID: 777,
		Date:      monday,
		StartTime: "10:00",
	})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}
