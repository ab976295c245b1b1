package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"patientbooking/cmd/internal/domain/entity"
	"patientbooking/cmd/internal/metrics"
	"patientbooking/cmd/internal/utils"
	"patientbooking/cmd/internal/utils/apierror"
)

var tracer = otel.Tracer("patientbooking.internal.service")

type BookingRepository interface {
	BookingScheduleReader
	FindByID(ctx context.Context, id string) (*entity.Booking, error)
	FindByPatientID(ctx context.Context, patientID int64) ([]*entity.Booking, error)
	FindDoctorBookingsBetween(ctx context.Context, doctorID, from, to int64) ([]*entity.Booking, error)
	Save(ctx context.Context, booking *entity.Booking) error
	Cancel(ctx context.Context, id string, now int64) (bool, error)
	WithDoctorLock(ctx context.Context, doctorID int64, fn func(ctx context.Context) error) error
}

type BookingValidator interface {
	ValidateRequest(ctx context.Context, req *ScheduleRequest) (ValidationResult, error)
}

type BookingRequest struct {
	DoctorID  int64  `json:"doctor_id" validate:"required,gt=0"`
	PatientID int64  `json:"patient_id" validate:"required,gt=0"`
	StartTime string `json:"start_time" validate:"required,iso8601"`
	EndTime   string `json:"end_time" validate:"required,iso8601"`
}

type BookingResponse struct {
	ID          string `json:"id"`
	PatientID   int64  `json:"patient_id"`
	DoctorID    int64  `json:"doctor_id"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	SurgeryType int    `json:"surgery_type"`
	IsCancelled bool   `json:"is_cancelled"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type PatientAppointmentResponse struct {
	ID        string `json:"id"`
	DoctorID  int64  `json:"doctor_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type ScheduledSlot struct {
	BookingID string `json:"booking_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type CalendarResponse struct {
	DoctorID       int64            `json:"doctor_id"`
	ScheduledSlots []*ScheduledSlot `json:"scheduled_slots"`
}

var errBookingRejected = errors.New("booking rejected by validation")

type DefaultBookingService struct {
	BookingRepo BookingRepository
	PatientRepo PatientRepository
	Validator   BookingValidator
	Validate    *validator.Validate
	Clock       utils.Clock
	Metrics     *metrics.Collector
}

func NewBookingService(
	bookingRepo BookingRepository,
	patientRepo PatientRepository,
	bookingValidator BookingValidator,
	validate *validator.Validate,
	clock utils.Clock,
	collector *metrics.Collector,
) *DefaultBookingService {
	return &DefaultBookingService{
		BookingRepo: bookingRepo,
		PatientRepo: patientRepo,
		Validator:   bookingValidator,
		Validate:    validate,
		Clock:       clock,
		Metrics:     collector,
	}
}

// CreateBooking validates and stores a booking. Validation and insert share
// one transaction holding the doctor's schedule lock, so two requests for
// the same doctor cannot both pass the conflict check.
func (b *DefaultBookingService) CreateBooking(ctx context.Context, req *BookingRequest) (*BookingResponse, apierror.ErrorResponse) {
	ctx, span := tracer.Start(ctx, "bookings.create", trace.WithAttributes(
		attribute.Int64("doctor.id", req.DoctorID),
		attribute.Int64("patient.id", req.PatientID),
	))
	defer span.End()

	utils.Sanitize(req)
	if valerr := b.Validate.Struct(req); valerr != nil {
		b.Metrics.BookingsRejected.WithLabelValues("malformed").Inc()
		apierr := apierror.FromValidationError(valerr)
		recordFailure(span, apierr)
		return nil, apierr
	}

	begin, err := utils.FromEpoch(req.StartTime)
	if err != nil {
		return nil, apierror.MalformedBodyError
	}
	end, err := utils.FromEpoch(req.EndTime)
	if err != nil {
		return nil, apierror.MalformedBodyError
	}

	surgeryType, apierr := b.surgeryTypeOf(ctx, req.PatientID)
	if apierr != nil {
		recordFailure(span, apierr)
		return nil, apierr
	}

	sched := &ScheduleRequest{
		DoctorID:  req.DoctorID,
		PatientID: req.PatientID,
		BeginsAt:  begin,
		EndsAt:    end,
	}

	var (
		booking  *entity.Booking
		rejected ValidationResult
	)
	err = b.BookingRepo.WithDoctorLock(ctx, req.DoctorID, func(txCtx context.Context) error {
		result, err := b.Validator.ValidateRequest(txCtx, sched)
		if err != nil {
			return err
		}
		if !result.Passed() {
			rejected = result
			return errBookingRejected
		}

		now := b.Clock()
		booking = &entity.Booking{
			ID:          uuid.NewString(),
			PatientID:   sched.PatientID,
			DoctorID:    sched.DoctorID,
			BeginsAt:    sched.BeginsAt,
			EndsAt:      sched.EndsAt,
			SurgeryType: surgeryType,
			IsCancelled: false,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return b.BookingRepo.Save(txCtx, booking)
	})

	if errors.Is(err, errBookingRejected) {
		b.Metrics.BookingsRejected.WithLabelValues("validation").Inc()
		apierr := apierror.NewBadRequest(rejected.Message(), rejected.Errors()...)
		recordFailure(span, apierr)
		return nil, apierr
	}
	if err != nil {
		log.Errorf("failed to create booking for doctor %d: %v", req.DoctorID, err)
		apierr := apierror.FromStoreError(err)
		recordFailure(span, apierr)
		return nil, apierr
	}

	b.Metrics.BookingsCreated.Inc()
	span.SetAttributes(attribute.String("booking.id", booking.ID))
	return toBookingResponse(booking), nil
}

// GetNextAppointment returns the patient's soonest non-cancelled booking that
// starts after now. Equal start times resolve to the earliest created.
func (b *DefaultBookingService) GetNextAppointment(ctx context.Context, patientID int64) (*PatientAppointmentResponse, apierror.ErrorResponse) {
	ctx, span := tracer.Start(ctx, "bookings.next", trace.WithAttributes(
		attribute.Int64("patient.id", patientID),
	))
	defer span.End()

	bookings, err := b.BookingRepo.FindByPatientID(ctx, patientID)
	if err != nil {
		log.Errorf("failed to fetch bookings of patient %d: %v", patientID, err)
		apierr := apierror.FromStoreError(err)
		recordFailure(span, apierr)
		return nil, apierr
	}

	if len(bookings) == 0 {
		apierr := apierror.NewNotFound(fmt.Sprintf("A patient with number '%d' doesn't exist.", patientID))
		recordFailure(span, apierr)
		return nil, apierr
	}

	now := b.Clock()
	var next *entity.Booking
	for _, booking := range bookings {
		if !booking.IsActive() || booking.BeginsAt <= now {
			continue
		}
		if next == nil || booking.BeginsAt < next.BeginsAt ||
			(booking.BeginsAt == next.BeginsAt && booking.CreatedAt < next.CreatedAt) {
			next = booking
		}
	}

	if next == nil {
		apierr := apierror.NewNotFound("No future appointment were found for the patient.")
		recordFailure(span, apierr)
		return nil, apierr
	}
	return toPatientAppointmentResponse(next), nil
}

// CancelBooking marks an upcoming booking as cancelled. The existence check
// runs before the past-booking check.
func (b *DefaultBookingService) CancelBooking(ctx context.Context, id string) apierror.ErrorResponse {
	ctx, span := tracer.Start(ctx, "bookings.cancel", trace.WithAttributes(
		attribute.String("booking.id", id),
	))
	defer span.End()

	booking, err := b.BookingRepo.FindByID(ctx, id)
	if err != nil {
		log.Errorf("failed to fetch booking %s: %v", id, err)
		apierr := apierror.FromStoreError(err)
		recordFailure(span, apierr)
		return apierr
	}

	if booking == nil || !booking.IsActive() {
		apierr := notCancellableError(id)
		recordFailure(span, apierr)
		return apierr
	}

	now := b.Clock()
	if booking.BeginsAt <= now {
		apierr := apierror.NewBadRequest("The past booking cannot be updated.")
		recordFailure(span, apierr)
		return apierr
	}

	cancelled, err := b.BookingRepo.Cancel(ctx, id, now)
	if err != nil {
		log.Errorf("failed to cancel booking %s: %v", id, err)
		apierr := apierror.FromStoreError(err)
		recordFailure(span, apierr)
		return apierr
	}

	// Another request cancelled it between the read and the update.
	if !cancelled {
		apierr := notCancellableError(id)
		recordFailure(span, apierr)
		return apierr
	}

	b.Metrics.BookingsCancelled.Inc()
	return nil
}

func (b *DefaultBookingService) GetBooking(ctx context.Context, id string) (*BookingResponse, apierror.ErrorResponse) {
	booking, err := b.BookingRepo.FindByID(ctx, id)
	if err != nil {
		log.Errorf("failed to fetch booking %s: %v", id, err)
		return nil, apierror.FromStoreError(err)
	}

	if booking == nil {
		return nil, apierror.NewNotFound(fmt.Sprintf("A booking with id '%s' doesn't exist.", id))
	}
	return toBookingResponse(booking), nil
}

func (b *DefaultBookingService) GetDoctorCalendar(ctx context.Context, doctorID, monthStart, monthEnd int64) (*CalendarResponse, apierror.ErrorResponse) {
	bookings, err := b.BookingRepo.FindDoctorBookingsBetween(ctx, doctorID, monthStart, monthEnd)
	if err != nil {
		log.Errorf("failed to fetch calendar of doctor %d [%d - %d]: %v", doctorID, monthStart, monthEnd, err)
		return nil, apierror.FromStoreError(err)
	}

	slots := make([]*ScheduledSlot, len(bookings))
	for i, booking := range bookings {
		slots[i] = toScheduledSlot(booking)
	}

	return &CalendarResponse{
		DoctorID:       doctorID,
		ScheduledSlots: slots,
	}, nil
}

// surgeryTypeOf reads the surgery system of the patient's clinic. Unknown
// patients book with NoSurgery.
func (b *DefaultBookingService) surgeryTypeOf(ctx context.Context, patientID int64) (int, apierror.ErrorResponse) {
	patient, err := b.PatientRepo.FindByID(ctx, patientID)
	if err != nil {
		log.Errorf("failed to fetch patient %d: %v", patientID, err)
		return 0, apierror.FromStoreError(err)
	}

	if patient == nil || patient.Clinic == nil {
		return int(entity.NoSurgery), nil
	}
	return int(patient.Clinic.SurgeryType), nil
}

func notCancellableError(id string) apierror.ErrorResponse {
	return apierror.NewNotFound(fmt.Sprintf("A booking with id '%s' doesn't exist or already cancelled.", id))
}

func recordFailure(span trace.Span, apierr apierror.ErrorResponse) {
	span.RecordError(apierr)
	span.SetStatus(codes.Error, apierr.Error())
	span.SetAttributes(attribute.String("error.kind", apierr.Kind().String()))
}

func toBookingResponse(booking *entity.Booking) *BookingResponse {
	return &BookingResponse{
		ID:          booking.ID,
		PatientID:   booking.PatientID,
		DoctorID:    booking.DoctorID,
		StartTime:   utils.FormatEpoch(booking.BeginsAt),
		EndTime:     utils.FormatEpoch(booking.EndsAt),
		SurgeryType: booking.SurgeryType,
		IsCancelled: booking.IsCancelled,
		CreatedAt:   utils.FormatEpoch(booking.CreatedAt),
		UpdatedAt:   utils.FormatEpoch(booking.UpdatedAt),
	}
}

func toPatientAppointmentResponse(booking *entity.Booking) *PatientAppointmentResponse {
	return &PatientAppointmentResponse{
		ID:        booking.ID,
		DoctorID:  booking.DoctorID,
		StartTime: utils.FormatEpoch(booking.BeginsAt),
		EndTime:   utils.FormatEpoch(booking.EndsAt),
	}
}

func toScheduledSlot(booking *entity.Booking) *ScheduledSlot {
	return &ScheduledSlot{
		BookingID: booking.ID,
		StartTime: utils.FormatEpoch(booking.BeginsAt),
		EndTime:   utils.FormatEpoch(booking.EndsAt),
	}
}
