package routes

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"patientbooking/cmd/internal/service"
	"patientbooking/cmd/internal/utils"
	"patientbooking/cmd/internal/utils/apierror"
)

type BookingService interface {
	CreateBooking(ctx context.Context, req *service.BookingRequest) (*service.BookingResponse, apierror.ErrorResponse)
	GetBooking(ctx context.Context, id string) (*service.BookingResponse, apierror.ErrorResponse)
	GetNextAppointment(ctx context.Context, patientID int64) (*service.PatientAppointmentResponse, apierror.ErrorResponse)
	CancelBooking(ctx context.Context, id string) apierror.ErrorResponse
	GetDoctorCalendar(ctx context.Context, doctorID, monthStart, monthEnd int64) (*service.CalendarResponse, apierror.ErrorResponse)
}

type DefaultBookingRoute struct {
	BookingService BookingService
}

func NewBookingDefault(bookingService BookingService) *DefaultBookingRoute {
	return &DefaultBookingRoute{BookingService: bookingService}
}

func (b *DefaultBookingRoute) CreateBooking(c echo.Context) error {
	var req service.BookingRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apierror.MalformedBodyError)
	}

	booking, apierr := b.BookingService.CreateBooking(c.Request().Context(), &req)
	if apierr != nil {
		return respondError(c, apierr)
	}
	return c.JSON(http.StatusCreated, booking)
}

func (b *DefaultBookingRoute) GetBooking(c echo.Context) error {
	id, apierr := parseUUIDParam(c, "id")
	if apierr != nil {
		return respondError(c, apierr)
	}

	booking, apierr := b.BookingService.GetBooking(c.Request().Context(), id)
	if apierr != nil {
		return respondError(c, apierr)
	}
	return c.JSON(http.StatusOK, booking)
}

func (b *DefaultBookingRoute) GetNextAppointment(c echo.Context) error {
	patientID, apierr := parseInt64Param(c, "id")
	if apierr != nil {
		return respondError(c, apierr)
	}

	appt, apierr := b.BookingService.GetNextAppointment(c.Request().Context(), patientID)
	if apierr != nil {
		return respondError(c, apierr)
	}
	return c.JSON(http.StatusOK, appt)
}

func (b *DefaultBookingRoute) CancelBooking(c echo.Context) error {
	id, apierr := parseUUIDParam(c, "id")
	if apierr != nil {
		return respondError(c, apierr)
	}

	if apierr := b.BookingService.CancelBooking(c.Request().Context(), id); apierr != nil {
		return respondError(c, apierr)
	}
	return c.NoContent(http.StatusOK)
}

func (b *DefaultBookingRoute) GetDoctorCalendar(c echo.Context) error {
	doctorID, apierr := parseInt64Param(c, "id")
	if apierr != nil {
		return respondError(c, apierr)
	}

	month := c.QueryParam("month") // "2025-08"
	if month == "" {
		return respondError(c, apierror.NewMissingParamError("month"))
	}

	monthStart, monthEnd, err := utils.MonthRange(month)
	if err != nil {
		return respondError(c, apierror.NewBadRequest("Could not understand month format, expected YYYY-MM"))
	}

	calendar, apierr := b.BookingService.GetDoctorCalendar(c.Request().Context(), doctorID, monthStart, monthEnd)
	if apierr != nil {
		return respondError(c, apierr)
	}
	return c.JSON(http.StatusOK, calendar)
}
