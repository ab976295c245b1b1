package service

import (
	"context"

	"patientbooking/cmd/internal/domain/entity"
	"patientbooking/cmd/internal/utils"
	"patientbooking/cmd/internal/utils/timerange"
)

const (
	MsgStartInPast    = "An appointment time must be in the future."
	MsgStartAfterEnd  = "An appointment start date must be less than an end date."
	MsgDoctorIsBooked = "Doctor already has an appointment for a specified time frame."
)

type BookingScheduleReader interface {
	FindByDoctorID(ctx context.Context, doctorID int64) ([]*entity.Booking, error)
}

// ScheduleRequest is a booking request with its timestamps already parsed.
type ScheduleRequest struct {
	DoctorID  int64
	PatientID int64
	BeginsAt  int64
	EndsAt    int64
}

func (s *ScheduleRequest) Range() timerange.Range {
	return timerange.New(s.BeginsAt, s.EndsAt)
}

type DefaultBookingValidator struct {
	BookingRepo BookingScheduleReader
	Clock       utils.Clock
}

func NewBookingValidator(bookingRepo BookingScheduleReader, clock utils.Clock) *DefaultBookingValidator {
	return &DefaultBookingValidator{BookingRepo: bookingRepo, Clock: clock}
}

// ValidateRequest runs every admission check without short-circuiting. The
// returned error is only set when the store could not be read.
func (v *DefaultBookingValidator) ValidateRequest(ctx context.Context, req *ScheduleRequest) (ValidationResult, error) {
	result := checkFutureStart(req, v.Clock()).
		Merge(checkStartBeforeEnd(req))

	availability, err := v.checkDoctorAvailability(ctx, req)
	if err != nil {
		return ValidationResult{}, err
	}
	return result.Merge(availability), nil
}

func checkFutureStart(req *ScheduleRequest, now int64) ValidationResult {
	if req.BeginsAt <= now {
		return Fail(MsgStartInPast)
	}
	return Pass()
}

func checkStartBeforeEnd(req *ScheduleRequest) ValidationResult {
	if req.EndsAt <= req.BeginsAt {
		return Fail(MsgStartAfterEnd)
	}
	return Pass()
}

func (v *DefaultBookingValidator) checkDoctorAvailability(ctx context.Context, req *ScheduleRequest) (ValidationResult, error) {
	bookings, err := v.BookingRepo.FindByDoctorID(ctx, req.DoctorID)
	if err != nil {
		return ValidationResult{}, err
	}

	existing := make([]timerange.Range, 0, len(bookings))
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		existing = append(existing, timerange.New(b.BeginsAt, b.EndsAt))
	}

	if timerange.ConflictsAny(existing, req.Range()) {
		return Fail(MsgDoctorIsBooked), nil
	}
	return Pass(), nil
}
