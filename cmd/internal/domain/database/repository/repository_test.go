package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"patientbooking/cmd/internal/config"
	"patientbooking/cmd/internal/domain/database"
	"patientbooking/cmd/internal/domain/entity"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Init(config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		DSN:          ":memory:",
		MaxOpenConns: 1,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func closeDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func seedClinic(t *testing.T, db *gorm.DB, surgery entity.SurgeryType) *entity.Clinic {
	t.Helper()

	clinic := &entity.Clinic{Name: "Riverside", SurgeryType: surgery, CreatedAt: 1}
	require.NoError(t, db.Create(clinic).Error)
	return clinic
}
