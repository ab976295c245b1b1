package routes

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"patientbooking/cmd/internal/service"
	"patientbooking/cmd/internal/utils/apierror"
)

type ClinicService interface {
	GetClinics(ctx context.Context) ([]*service.ClinicResponse, apierror.ErrorResponse)
	GetClinic(ctx context.Context, id int64) (*service.ClinicResponse, apierror.ErrorResponse)
	AddClinic(ctx context.Context, req *service.AddClinicRequest) (*service.ClinicResponse, apierror.ErrorResponse)
}

type DefaultClinicRoute struct {
	ClinicService ClinicService
}

func NewClinicDefault(clinicService ClinicService) *DefaultClinicRoute {
	return &DefaultClinicRoute{ClinicService: clinicService}
}

func (r *DefaultClinicRoute) GetClinics(c echo.Context) error {
	clinics, apierr := r.ClinicService.GetClinics(c.Request().Context())
	if apierr != nil {
		return respondError(c, apierr)
	}

	resp := echo.Map{"clinics": clinics}
	return c.JSON(http.StatusOK, &resp)
}

func (r *DefaultClinicRoute) GetClinic(c echo.Context) error {
	id, apierr := parseInt64Param(c, "id")
	if apierr != nil {
		return respondError(c, apierr)
	}

	clinic, apierr := r.ClinicService.GetClinic(c.Request().Context(), id)
	if apierr != nil {
		return respondError(c, apierr)
	}
	return c.JSON(http.StatusOK, clinic)
}

func (r *DefaultClinicRoute) AddClinic(c echo.Context) error {
	var req service.AddClinicRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apierror.MalformedBodyError)
	}

	clinic, apierr := r.ClinicService.AddClinic(c.Request().Context(), &req)
	if apierr != nil {
		return respondError(c, apierr)
	}
	return c.JSON(http.StatusCreated, clinic)
}
