package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"

	"patientbooking/cmd/internal/domain/entity"
	"patientbooking/cmd/internal/utils"
	"patientbooking/cmd/internal/utils/apierror"
)

const (
	MsgFirstNameMissing  = "FirstName must be populated"
	MsgLastNameMissing   = "LastName must be populated"
	MsgEmailMissing      = "Email must be populated"
	MsgEmailInvalid      = "Email must be a valid email address"
	MsgPatientEmailTaken = "A patient with that email address already exists"
	MsgClinicNotFound    = "A clinic with that ID could not be found"
)

type PatientRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Patient, error)
	FindAll(ctx context.Context) ([]*entity.Patient, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, patient *entity.Patient) error
}

// AddPatientRequest only carries format tags; the populated and uniqueness
// rules are checked by validatePatient so every failure is reported at once.
type AddPatientRequest struct {
	FirstName   string `json:"first_name" validate:"max=64"`
	LastName    string `json:"last_name" validate:"max=64"`
	Email       string `json:"email" validate:"max=254"`
	Gender      int    `json:"gender" validate:"oneof=0 1 2 3"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,iso8601"`
	ClinicID    int64  `json:"clinic_id"`
}

type PatientResponse struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Gender      int    `json:"gender"`
	DateOfBirth string `json:"date_of_birth"`
	ClinicID    int64  `json:"clinic_id"`
	CreatedAt   string `json:"created_at"`
}

type DefaultPatientService struct {
	PatientRepo PatientRepository
	ClinicRepo  ClinicRepository
	Validate    *validator.Validate
	Clock       utils.Clock
}

func NewPatientService(patientRepo PatientRepository, clinicRepo ClinicRepository, validate *validator.Validate, clock utils.Clock) *DefaultPatientService {
	return &DefaultPatientService{PatientRepo: patientRepo, ClinicRepo: clinicRepo, Validate: validate, Clock: clock}
}

func (p *DefaultPatientService) GetPatients(ctx context.Context) ([]*PatientResponse, apierror.ErrorResponse) {
	patients, err := p.PatientRepo.FindAll(ctx)
	if err != nil {
		log.Errorf("failed to fetch all patients: %v", err)
		return nil, apierror.FromStoreError(err)
	}

	resp := make([]*PatientResponse, len(patients))
	for i, patient := range patients {
		resp[i] = toPatientResponse(patient)
	}
	return resp, nil
}

func (p *DefaultPatientService) GetPatient(ctx context.Context, id int64) (*PatientResponse, apierror.ErrorResponse) {
	patient, err := p.PatientRepo.FindByID(ctx, id)
	if err != nil {
		log.Errorf("failed to fetch patient %d: %v", id, err)
		return nil, apierror.FromStoreError(err)
	}

	if patient == nil {
		return nil, apierror.NewNotFound(fmt.Sprintf("A patient with number '%d' doesn't exist.", id))
	}
	return toPatientResponse(patient), nil
}

func (p *DefaultPatientService) AddPatient(ctx context.Context, req *AddPatientRequest) (*PatientResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := p.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	result, err := p.validatePatient(ctx, req)
	if err != nil {
		log.Errorf("failed to validate patient %s: %v", req.Email, err)
		return nil, apierror.FromStoreError(err)
	}

	if !result.Passed() {
		return nil, apierror.NewBadRequest(result.Message(), result.Errors()...)
	}

	var dob int64
	if req.DateOfBirth != "" {
		dob, err = utils.FromEpoch(req.DateOfBirth)
		if err != nil {
			return nil, apierror.MalformedBodyError
		}
	}

	patient := &entity.Patient{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Gender:      entity.Gender(req.Gender),
		DateOfBirth: dob,
		ClinicID:    req.ClinicID,
		CreatedAt:   p.Clock(),
	}

	err = p.PatientRepo.Save(ctx, patient)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, apierror.NewBadRequest(MsgPatientEmailTaken, MsgPatientEmailTaken)
	}
	if err != nil {
		log.Errorf("failed to save patient %s: %v", req.Email, err)
		return nil, apierror.FromStoreError(err)
	}
	return toPatientResponse(patient), nil
}

func (p *DefaultPatientService) validatePatient(ctx context.Context, req *AddPatientRequest) (ValidationResult, error) {
	result := Pass()

	if strings.TrimSpace(req.FirstName) == "" {
		result = result.Merge(Fail(MsgFirstNameMissing))
	}
	if strings.TrimSpace(req.LastName) == "" {
		result = result.Merge(Fail(MsgLastNameMissing))
	}

	switch {
	case req.Email == "":
		result = result.Merge(Fail(MsgEmailMissing))
	case p.Validate.Var(req.Email, "email") != nil:
		result = result.Merge(Fail(MsgEmailInvalid))
	default:
		exists, err := p.PatientRepo.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return ValidationResult{}, err
		}
		if exists {
			result = result.Merge(Fail(MsgPatientEmailTaken))
		}
	}

	clinic, err := p.ClinicRepo.FindByID(ctx, req.ClinicID)
	if err != nil {
		return ValidationResult{}, err
	}
	if clinic == nil {
		result = result.Merge(Fail(MsgClinicNotFound))
	}
	return result, nil
}

func toPatientResponse(patient *entity.Patient) *PatientResponse {
	resp := &PatientResponse{
		ID:        patient.ID,
		FirstName: patient.FirstName,
		LastName:  patient.LastName,
		Email:     patient.Email,
		Gender:    int(patient.Gender),
		ClinicID:  patient.ClinicID,
		CreatedAt: utils.FormatEpoch(patient.CreatedAt),
	}
	if patient.DateOfBirth != 0 {
		resp.DateOfBirth = utils.FormatEpoch(patient.DateOfBirth)
	}
	return resp
}
