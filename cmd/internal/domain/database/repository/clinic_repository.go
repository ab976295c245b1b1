package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"patientbooking/cmd/internal/domain/entity"
)

type DefaultClinicRepository struct {
	db *gorm.DB
}

func NewClinicRepository(db *gorm.DB) *DefaultClinicRepository {
	return &DefaultClinicRepository{db: db}
}

func (c *DefaultClinicRepository) FindByID(ctx context.Context, id int64) (*entity.Clinic, error) {
	var clinic entity.Clinic
	err := c.db.WithContext(ctx).First(&clinic, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &clinic, nil
}

func (c *DefaultClinicRepository) FindAll(ctx context.Context) ([]*entity.Clinic, error) {
	var clinics []*entity.Clinic
	err := c.db.WithContext(ctx).Order("id asc").Find(&clinics).Error
	return clinics, err
}

func (c *DefaultClinicRepository) Save(ctx context.Context, clinic *entity.Clinic) error {
	return c.db.WithContext(ctx).Save(clinic).Error
}
