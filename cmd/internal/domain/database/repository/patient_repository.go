package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"patientbooking/cmd/internal/domain/entity"
)

type DefaultPatientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) *DefaultPatientRepository {
	return &DefaultPatientRepository{db: db}
}

// FindByID loads the patient together with its clinic.
func (p *DefaultPatientRepository) FindByID(ctx context.Context, id int64) (*entity.Patient, error) {
	var patient entity.Patient
	err := p.db.WithContext(ctx).Preload("Clinic").First(&patient, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

func (p *DefaultPatientRepository) FindAll(ctx context.Context) ([]*entity.Patient, error) {
	var patients []*entity.Patient
	err := p.db.WithContext(ctx).Order("id asc").Find(&patients).Error
	return patients, err
}

func (p *DefaultPatientRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Model(&entity.Patient{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

func (p *DefaultPatientRepository) Save(ctx context.Context, patient *entity.Patient) error {
	return p.db.WithContext(ctx).Omit("Clinic").Save(patient).Error
}
