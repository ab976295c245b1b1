package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patientbooking/cmd/internal/domain/entity"
)

type scheduleReaderFunc func(ctx context.Context, doctorID int64) ([]*entity.Booking, error)

func (f scheduleReaderFunc) FindByDoctorID(ctx context.Context, doctorID int64) ([]*entity.Booking, error) {
	return f(ctx, doctorID)
}

func existingBooking(doctorID int64, begin, end time.Duration) *entity.Booking {
	return &entity.Booking{ID: "existing", DoctorID: doctorID, PatientID: 99, BeginsAt: millis(begin), EndsAt: millis(end)}
}

func TestBookingValidator_ValidateRequest(t *testing.T) {
	const doctorID = 3
	schedule := []*entity.Booking{existingBooking(doctorID, 2*time.Hour, 3*time.Hour)}

	tests := []struct {
		name   string
		begin  time.Duration
		end    time.Duration
		errors []string
	}{
		{name: "free future slot", begin: 4 * time.Hour, end: 5 * time.Hour},
		{name: "gap right before existing", begin: time.Hour, end: 2*time.Hour - time.Millisecond},
		{name: "start equals now", begin: 0, end: time.Hour, errors: []string{MsgStartInPast}},
		{name: "start in past", begin: -time.Hour, end: time.Hour, errors: []string{MsgStartInPast}},
		{name: "end equals start", begin: 5 * time.Hour, end: 5 * time.Hour, errors: []string{MsgStartAfterEnd}},
		{name: "touching existing end", begin: 3 * time.Hour, end: 4 * time.Hour, errors: []string{MsgDoctorIsBooked}},
		{name: "inside existing", begin: 2*time.Hour + time.Minute, end: 3*time.Hour - time.Minute, errors: []string{MsgDoctorIsBooked}},
		{
			name:   "every check fails",
			begin:  -time.Hour,
			end:    -2 * time.Hour,
			errors: []string{MsgStartInPast, MsgStartAfterEnd},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewBookingValidator(&fakeBookingRepo{bookings: schedule}, fixedClock(testNow))

			result, err := v.ValidateRequest(context.Background(), &ScheduleRequest{
				DoctorID:  doctorID,
				PatientID: 1,
				BeginsAt:  millis(tt.begin),
				EndsAt:    millis(tt.end),
			})

			require.NoError(t, err)
			assert.Equal(t, len(tt.errors) == 0, result.Passed())
			if len(tt.errors) == 0 {
				assert.Empty(t, result.Errors())
			} else {
				assert.Equal(t, tt.errors, result.Errors())
			}
		})
	}
}

func TestBookingValidator_AccumulatesAllThreeInOrder(t *testing.T) {
	// An inverted past range still overlaps the existing booking on the timeline.
	reader := scheduleReaderFunc(func(context.Context, int64) ([]*entity.Booking, error) {
		return []*entity.Booking{existingBooking(1, -3*time.Hour, 0)}, nil
	})
	v := NewBookingValidator(reader, fixedClock(testNow))

	result, err := v.ValidateRequest(context.Background(), &ScheduleRequest{
		DoctorID: 1,
		BeginsAt: millis(-time.Hour),
		EndsAt:   millis(-time.Hour),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{MsgStartInPast, MsgStartAfterEnd, MsgDoctorIsBooked}, result.Errors())
}

func TestBookingValidator_OtherDoctorsDoNotConflict(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*entity.Booking{existingBooking(8, time.Hour, 2*time.Hour)}}
	v := NewBookingValidator(repo, fixedClock(testNow))

	result, err := v.ValidateRequest(context.Background(), &ScheduleRequest{
		DoctorID: 9,
		BeginsAt: millis(time.Hour),
		EndsAt:   millis(2 * time.Hour),
	})

	require.NoError(t, err)
	assert.True(t, result.Passed())
}

func TestBookingValidator_IgnoresCancelledBookings(t *testing.T) {
	cancelled := existingBooking(1, time.Hour, 2*time.Hour)
	cancelled.IsCancelled = true
	reader := scheduleReaderFunc(func(context.Context, int64) ([]*entity.Booking, error) {
		return []*entity.Booking{cancelled}, nil
	})
	v := NewBookingValidator(reader, fixedClock(testNow))

	result, err := v.ValidateRequest(context.Background(), &ScheduleRequest{
		DoctorID: 1,
		BeginsAt: millis(time.Hour),
		EndsAt:   millis(2 * time.Hour),
	})

	require.NoError(t, err)
	assert.True(t, result.Passed())
}

func TestBookingValidator_StoreError(t *testing.T) {
	boom := errors.New("database is locked")
	v := NewBookingValidator(&fakeBookingRepo{err: boom}, fixedClock(testNow))

	_, err := v.ValidateRequest(context.Background(), &ScheduleRequest{
		DoctorID: 1,
		BeginsAt: millis(time.Hour),
		EndsAt:   millis(2 * time.Hour),
	})

	assert.ErrorIs(t, err, boom)
}
