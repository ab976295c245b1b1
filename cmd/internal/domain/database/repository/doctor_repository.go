package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"patientbooking/cmd/internal/domain/entity"
)

type DefaultDoctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) *DefaultDoctorRepository {
	return &DefaultDoctorRepository{db: db}
}

func (d *DefaultDoctorRepository) FindByID(ctx context.Context, id int64) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := d.db.WithContext(ctx).First(&doctor, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (d *DefaultDoctorRepository) FindAll(ctx context.Context) ([]*entity.Doctor, error) {
	var doctors []*entity.Doctor
	err := d.db.WithContext(ctx).Order("id asc").Find(&doctors).Error
	return doctors, err
}

func (d *DefaultDoctorRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).
		Model(&entity.Doctor{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

func (d *DefaultDoctorRepository) Save(ctx context.Context, doctor *entity.Doctor) error {
	return d.db.WithContext(ctx).Save(doctor).Error
}
