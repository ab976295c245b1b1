package routes

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"patientbooking/cmd/internal/utils/apierror"
)

func statusFor(kind apierror.Kind) int {
	switch kind {
	case apierror.KindBadRequest:
		return http.StatusBadRequest
	case apierror.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c echo.Context, apierr apierror.ErrorResponse) error {
	return c.JSON(statusFor(apierr.Kind()), apierr)
}

func parseInt64Param(c echo.Context, name string) (int64, apierror.ErrorResponse) {
	raw := strings.TrimSpace(c.Param(name))
	if raw == "" {
		return 0, apierror.NewMissingParamError(name)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apierror.NewInvalidParamTypeError(name, "integer")
	}
	return id, nil
}

func parseUUIDParam(c echo.Context, name string) (string, apierror.ErrorResponse) {
	raw := strings.TrimSpace(c.Param(name))
	if raw == "" {
		return "", apierror.NewMissingParamError(name)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return "", apierror.NewInvalidParamTypeError(name, "uuid")
	}
	return id.String(), nil
}

type Handlers struct {
	Bookings *DefaultBookingRoute
	Clinics  *DefaultClinicRoute
	Doctors  *DefaultDoctorRoute
	Patients *DefaultPatientRoute
	Health   *DefaultHealthRoute
}

func Register(e *echo.Echo, h Handlers) {
	e.GET("/healthz", h.Health.Health)

	api := e.Group("/api")

	// Bookings
	api.POST("/bookings", h.Bookings.CreateBooking)
	api.GET("/bookings/:id", h.Bookings.GetBooking)
	api.DELETE("/bookings/:id", h.Bookings.CancelBooking)
	api.GET("/bookings/patient/:id/next", h.Bookings.GetNextAppointment)

	// Clinics
	api.GET("/clinics", h.Clinics.GetClinics)
	api.GET("/clinics/:id", h.Clinics.GetClinic)
	api.POST("/clinics", h.Clinics.AddClinic)

	// Doctors
	api.GET("/doctors", h.Doctors.GetDoctors)
	api.GET("/doctors/:id", h.Doctors.GetDoctor)
	api.POST("/doctors", h.Doctors.AddDoctor)
	api.GET("/doctors/:id/calendar", h.Bookings.GetDoctorCalendar)

	// Patients
	api.GET("/patients", h.Patients.GetPatients)
	api.GET("/patients/:id", h.Patients.GetPatient)
	api.POST("/patients", h.Patients.AddPatient)
}
