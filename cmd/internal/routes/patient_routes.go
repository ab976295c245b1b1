package routes

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"patientbooking/cmd/internal/service"
	"patientbooking/cmd/internal/utils/apierror"
)

type PatientService interface {
	GetPatients(ctx context.Context) ([]*service.PatientResponse, apierror.ErrorResponse)
	GetPatient(ctx context.Context, id int64) (*service.PatientResponse, apierror.ErrorResponse)
	AddPatient(ctx context.Context, req *service.AddPatientRequest) (*service.PatientResponse, apierror.ErrorResponse)
}

type DefaultPatientRoute struct {
	PatientService PatientService
}

func NewPatientDefault(patientService PatientService) *DefaultPatientRoute {
	return &DefaultPatientRoute{PatientService: patientService}
}

func (p *DefaultPatientRoute) GetPatients(c echo.Context) error {
	patients, apierr := p.PatientService.GetPatients(c.Request().Context())
	if apierr != nil {
		return respondError(c, apierr)
	}

	resp := echo.Map{"patients": patients}
	return c.JSON(http.StatusOK, &resp)
}

func (p *DefaultPatientRoute) GetPatient(c echo.Context) error {
	id, apierr := parseInt64Param(c, "id")
	if apierr != nil {
		return respondError(c, apierr)
	}

	patient, apierr := p.PatientService.GetPatient(c.Request().Context(), id)
	if apierr != nil {
		return respondError(c, apierr)
	}
	return c.JSON(http.StatusOK, patient)
}

func (p *DefaultPatientRoute) AddPatient(c echo.Context) error {
	var req service.AddPatientRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apierror.MalformedBodyError)
	}

	patient, apierr := p.PatientService.AddPatient(c.Request().Context(), &req)
	if apierr != nil {
		return respondError(c, apierr)
	}
	return c.JSON(http.StatusCreated, patient)
}
