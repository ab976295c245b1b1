package service

import (
	"context"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"

	"patientbooking/cmd/internal/domain/entity"
	"patientbooking/cmd/internal/utils"
	"patientbooking/cmd/internal/utils/validators"
)

var testNow = time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC).UnixMilli()

func fixedClock(now int64) utils.Clock {
	return func() int64 { return now }
}

// at formats testNow shifted by d as the API's timestamp format.
func at(d time.Duration) string {
	return utils.FormatEpoch(testNow + d.Milliseconds())
}

func millis(d time.Duration) int64 {
	return testNow + d.Milliseconds()
}

func newValidate() *validator.Validate {
	return validators.New()
}

type fakeBookingRepo struct {
	bookings []*entity.Booking

	err       error
	saveErr   error
	cancelErr error
	// loseCancelRace makes Cancel report that another request got there first.
	loseCancelRace bool

	lockedDoctors []int64
}

func (f *fakeBookingRepo) WithDoctorLock(ctx context.Context, doctorID int64, fn func(ctx context.Context) error) error {
	f.lockedDoctors = append(f.lockedDoctors, doctorID)
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

func (f *fakeBookingRepo) FindByDoctorID(_ context.Context, doctorID int64) ([]*entity.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.DoctorID == doctorID && !b.IsCancelled {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) FindByPatientID(_ context.Context, patientID int64) ([]*entity.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.PatientID == patientID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) FindByID(_ context.Context, id string) (*entity.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, b := range f.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) FindDoctorBookingsBetween(_ context.Context, doctorID, from, to int64) ([]*entity.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.DoctorID == doctorID && !b.IsCancelled && b.BeginsAt < to && b.EndsAt > from {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BeginsAt < out[j].BeginsAt })
	return out, nil
}

func (f *fakeBookingRepo) Save(_ context.Context, booking *entity.Booking) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.bookings = append(f.bookings, booking)
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id string, now int64) (bool, error) {
	if f.cancelErr != nil {
		return false, f.cancelErr
	}
	if f.loseCancelRace {
		return false, nil
	}
	for _, b := range f.bookings {
		if b.ID == id && !b.IsCancelled {
			b.IsCancelled = true
			b.UpdatedAt = now
			return true, nil
		}
	}
	return false, nil
}

type fakePatientRepo struct {
	patients []*entity.Patient
	emails   map[string]bool
	err      error
	saveErr  error
}

func (f *fakePatientRepo) FindByID(_ context.Context, id int64) (*entity.Patient, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.patients {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePatientRepo) FindAll(context.Context) ([]*entity.Patient, error) {
	return f.patients, f.err
}

func (f *fakePatientRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.emails[email], nil
}

func (f *fakePatientRepo) Save(_ context.Context, patient *entity.Patient) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	patient.ID = int64(len(f.patients) + 1)
	f.patients = append(f.patients, patient)
	return nil
}

type fakeClinicRepo struct {
	clinics []*entity.Clinic
	err     error
}

func (f *fakeClinicRepo) FindByID(_ context.Context, id int64) (*entity.Clinic, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, c := range f.clinics {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeClinicRepo) FindAll(context.Context) ([]*entity.Clinic, error) {
	return f.clinics, f.err
}

func (f *fakeClinicRepo) Save(_ context.Context, clinic *entity.Clinic) error {
	if f.err != nil {
		return f.err
	}
	clinic.ID = int64(len(f.clinics) + 1)
	f.clinics = append(f.clinics, clinic)
	return nil
}

type fakeDoctorRepo struct {
	doctors []*entity.Doctor
	err     error
	saveErr error
}

func (f *fakeDoctorRepo) FindByID(_ context.Context, id int64) (*entity.Doctor, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, d := range f.doctors {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}

func (f *fakeDoctorRepo) FindAll(context.Context) ([]*entity.Doctor, error) {
	return f.doctors, f.err
}

func (f *fakeDoctorRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, d := range f.doctors {
		if d.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDoctorRepo) Save(_ context.Context, doctor *entity.Doctor) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	doctor.ID = int64(len(f.doctors) + 1)
	f.doctors = append(f.doctors, doctor)
	return nil
}
