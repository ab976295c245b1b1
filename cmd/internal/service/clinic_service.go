package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"

	"patientbooking/cmd/internal/domain/entity"
	"patientbooking/cmd/internal/utils"
	"patientbooking/cmd/internal/utils/apierror"
)

type ClinicRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Clinic, error)
	FindAll(ctx context.Context) ([]*entity.Clinic, error)
	Save(ctx context.Context, clinic *entity.Clinic) error
}

type AddClinicRequest struct {
	Name        string `json:"name" validate:"required,max=128"`
	SurgeryType int    `json:"surgery_type" validate:"oneof=0 1 2"`
}

type ClinicResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	SurgeryType int    `json:"surgery_type"`
	CreatedAt   string `json:"created_at"`
}

type DefaultClinicService struct {
	ClinicRepo ClinicRepository
	Validate   *validator.Validate
	Clock      utils.Clock
}

func NewClinicService(clinicRepo ClinicRepository, validate *validator.Validate, clock utils.Clock) *DefaultClinicService {
	return &DefaultClinicService{ClinicRepo: clinicRepo, Validate: validate, Clock: clock}
}

func (c *DefaultClinicService) GetClinics(ctx context.Context) ([]*ClinicResponse, apierror.ErrorResponse) {
	clinics, err := c.ClinicRepo.FindAll(ctx)
	if err != nil {
		log.Errorf("failed to fetch all clinics: %v", err)
		return nil, apierror.FromStoreError(err)
	}

	resp := make([]*ClinicResponse, len(clinics))
	for i, clinic := range clinics {
		resp[i] = toClinicResponse(clinic)
	}
	return resp, nil
}

func (c *DefaultClinicService) GetClinic(ctx context.Context, id int64) (*ClinicResponse, apierror.ErrorResponse) {
	clinic, err := c.ClinicRepo.FindByID(ctx, id)
	if err != nil {
		log.Errorf("failed to fetch clinic %d: %v", id, err)
		return nil, apierror.FromStoreError(err)
	}

	if clinic == nil {
		return nil, apierror.NewNotFound(fmt.Sprintf("A clinic with id '%d' doesn't exist.", id))
	}
	return toClinicResponse(clinic), nil
}

func (c *DefaultClinicService) AddClinic(ctx context.Context, req *AddClinicRequest) (*ClinicResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := c.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	clinic := &entity.Clinic{
		Name:        req.Name,
		SurgeryType: entity.SurgeryType(req.SurgeryType),
		CreatedAt:   c.Clock(),
	}

	if err := c.ClinicRepo.Save(ctx, clinic); err != nil {
		log.Errorf("failed to save clinic %q: %v", req.Name, err)
		return nil, apierror.FromStoreError(err)
	}
	return toClinicResponse(clinic), nil
}

func toClinicResponse(clinic *entity.Clinic) *ClinicResponse {
	return &ClinicResponse{
		ID:          clinic.ID,
		Name:        clinic.Name,
		SurgeryType: int(clinic.SurgeryType),
		CreatedAt:   utils.FormatEpoch(clinic.CreatedAt),
	}
}
