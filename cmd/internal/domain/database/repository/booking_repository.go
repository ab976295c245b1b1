package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"patientbooking/cmd/internal/domain/database"
	"patientbooking/cmd/internal/domain/entity"
)

type txKey struct{}

type DefaultBookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *DefaultBookingRepository {
	return &DefaultBookingRepository{db: db}
}

// conn returns the transaction opened by WithDoctorLock when ctx carries one.
func (b *DefaultBookingRepository) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return b.db.WithContext(ctx)
}

// WithDoctorLock runs fn inside a transaction that owns the doctor's schedule.
// Repository calls made with the ctx handed to fn join that transaction.
// On PostgreSQL the schedule is guarded by a transaction-scoped advisory lock;
// SQLite serializes writers through its single pooled connection.
func (b *DefaultBookingRepository) WithDoctorLock(ctx context.Context, doctorID int64, fn func(ctx context.Context) error) error {
	return b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if database.IsPostgres(tx) {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", doctorID).Error; err != nil {
				return fmt.Errorf("locking schedule of doctor %d: %w", doctorID, err)
			}
		}
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func (b *DefaultBookingRepository) FindByID(ctx context.Context, id string) (*entity.Booking, error) {
	var booking entity.Booking
	err := b.conn(ctx).First(&booking, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByDoctorID returns the doctor's non-cancelled bookings.
func (b *DefaultBookingRepository) FindByDoctorID(ctx context.Context, doctorID int64) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	err := b.conn(ctx).
		Where("doctor_id = ?", doctorID).
		Where("is_cancelled = ?", false).
		Order("begins_at asc").
		Find(&bookings).Error
	return bookings, err
}

// FindByPatientID returns every booking of the patient, cancelled ones included.
func (b *DefaultBookingRepository) FindByPatientID(ctx context.Context, patientID int64) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	err := b.conn(ctx).
		Where("patient_id = ?", patientID).
		Order("begins_at asc").
		Order("created_at asc").
		Find(&bookings).Error
	return bookings, err
}

// FindDoctorBookingsBetween finds the doctor's non-cancelled bookings that
// overlap [from, to).
func (b *DefaultBookingRepository) FindDoctorBookingsBetween(ctx context.Context, doctorID, from, to int64) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	err := b.conn(ctx).
		Where("doctor_id = ?", doctorID).
		Where("is_cancelled = ?", false).
		Where("begins_at < ?", to).
		Where("ends_at > ?", from).
		Order("begins_at asc").
		Find(&bookings).Error
	return bookings, err
}

func (b *DefaultBookingRepository) Save(ctx context.Context, booking *entity.Booking) error {
	return b.conn(ctx).Create(booking).Error
}

// Cancel flips the cancellation flag of an active booking in a single
// statement. It reports false when no active booking with that id exists.
func (b *DefaultBookingRepository) Cancel(ctx context.Context, id string, now int64) (bool, error) {
	res := b.conn(ctx).
		Model(&entity.Booking{}).
		Where("id = ?", id).
		Where("is_cancelled = ?", false).
		Updates(map[string]any{"is_cancelled": true, "updated_at": now})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
