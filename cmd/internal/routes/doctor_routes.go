package routes

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"patientbooking/cmd/internal/service"
	"patientbooking/cmd/internal/utils/apierror"
)

type DoctorService interface {
	GetDoctors(ctx context.Context) ([]*service.DoctorResponse, apierror.ErrorResponse)
	GetDoctor(ctx context.Context, id int64) (*service.DoctorResponse, apierror.ErrorResponse)
	AddDoctor(ctx context.Context, req *service.AddDoctorRequest) (*service.DoctorResponse, apierror.ErrorResponse)
}

type DefaultDoctorRoute struct {
	DoctorService DoctorService
}

func NewDoctorDefault(doctorService DoctorService) *DefaultDoctorRoute {
	return &DefaultDoctorRoute{DoctorService: doctorService}
}

func (d *DefaultDoctorRoute) GetDoctors(c echo.Context) error {
	doctors, apierr := d.DoctorService.GetDoctors(c.Request().Context())
	if apierr != nil {
		return respondError(c, apierr)
	}

	resp := echo.Map{"doctors": doctors}
	return c.JSON(http.StatusOK, &resp)
}

func (d *DefaultDoctorRoute) GetDoctor(c echo.Context) error {
	id, apierr := parseInt64Param(c, "id")
	if apierr != nil {
		return respondError(c, apierr)
	}

	doctor, apierr := d.DoctorService.GetDoctor(c.Request().Context(), id)
	if apierr != nil {
		return respondError(c, apierr)
	}
	return c.JSON(http.StatusOK, doctor)
}

func (d *DefaultDoctorRoute) AddDoctor(c echo.Context) error {
	var req service.AddDoctorRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apierror.MalformedBodyError)
	}

	doctor, apierr := d.DoctorService.AddDoctor(c.Request().Context(), &req)
	if apierr != nil {
		return respondError(c, apierr)
	}
	return c.JSON(http.StatusCreated, doctor)
}
