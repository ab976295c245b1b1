package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"

	"patientbooking/cmd/internal/domain/entity"
	"patientbooking/cmd/internal/utils"
	"patientbooking/cmd/internal/utils/apierror"
)

const MsgDoctorEmailTaken = "A doctor with that email address already exists"

type DoctorRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Doctor, error)
	FindAll(ctx context.Context) ([]*entity.Doctor, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, doctor *entity.Doctor) error
}

type AddDoctorRequest struct {
	FirstName   string `json:"first_name" validate:"required,max=64"`
	LastName    string `json:"last_name" validate:"required,max=64"`
	Email       string `json:"email" validate:"required,email,nospaces"`
	Gender      int    `json:"gender" validate:"oneof=0 1 2 3"`
	DateOfBirth string `json:"date_of_birth" validate:"required,iso8601"`
}

type DoctorResponse struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Gender      int    `json:"gender"`
	DateOfBirth string `json:"date_of_birth"`
	CreatedAt   string `json:"created_at"`
}

type DefaultDoctorService struct {
	DoctorRepo DoctorRepository
	Validate   *validator.Validate
	Clock      utils.Clock
}

func NewDoctorService(doctorRepo DoctorRepository, validate *validator.Validate, clock utils.Clock) *DefaultDoctorService {
	return &DefaultDoctorService{DoctorRepo: doctorRepo, Validate: validate, Clock: clock}
}

func (d *DefaultDoctorService) GetDoctors(ctx context.Context) ([]*DoctorResponse, apierror.ErrorResponse) {
	doctors, err := d.DoctorRepo.FindAll(ctx)
	if err != nil {
		log.Errorf("failed to fetch all doctors: %v", err)
		return nil, apierror.FromStoreError(err)
	}

	resp := make([]*DoctorResponse, len(doctors))
	for i, doctor := range doctors {
		resp[i] = toDoctorResponse(doctor)
	}
	return resp, nil
}

func (d *DefaultDoctorService) GetDoctor(ctx context.Context, id int64) (*DoctorResponse, apierror.ErrorResponse) {
	doctor, err := d.DoctorRepo.FindByID(ctx, id)
	if err != nil {
		log.Errorf("failed to fetch doctor %d: %v", id, err)
		return nil, apierror.FromStoreError(err)
	}

	if doctor == nil {
		return nil, apierror.NewNotFound(fmt.Sprintf("A doctor with id '%d' doesn't exist.", id))
	}
	return toDoctorResponse(doctor), nil
}

func (d *DefaultDoctorService) AddDoctor(ctx context.Context, req *AddDoctorRequest) (*DoctorResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := d.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	dob, err := utils.FromEpoch(req.DateOfBirth)
	if err != nil {
		return nil, apierror.MalformedBodyError
	}

	now := d.Clock()
	if dob >= now {
		return nil, apierror.NewBadRequest("date_of_birth must be in the past")
	}

	exists, err := d.DoctorRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		log.Errorf("failed to check if doctor email %s exists: %v", req.Email, err)
		return nil, apierror.FromStoreError(err)
	}

	if exists {
		return nil, apierror.NewBadRequest(MsgDoctorEmailTaken)
	}

	doctor := &entity.Doctor{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Gender:      entity.Gender(req.Gender),
		DateOfBirth: dob,
		CreatedAt:   now,
	}

	err = d.DoctorRepo.Save(ctx, doctor)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, apierror.NewBadRequest(MsgDoctorEmailTaken)
	}
	if err != nil {
		log.Errorf("failed to save doctor %s: %v", req.Email, err)
		return nil, apierror.FromStoreError(err)
	}
	return toDoctorResponse(doctor), nil
}

func toDoctorResponse(doctor *entity.Doctor) *DoctorResponse {
	return &DoctorResponse{
		ID:          doctor.ID,
		FirstName:   doctor.FirstName,
		LastName:    doctor.LastName,
		Email:       doctor.Email,
		Gender:      int(doctor.Gender),
		DateOfBirth: utils.FormatEpoch(doctor.DateOfBirth),
		CreatedAt:   utils.FormatEpoch(doctor.CreatedAt),
	}
}
