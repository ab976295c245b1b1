package entity

type Booking struct {
	ID          string `gorm:"primaryKey;size:36"`
	PatientID   int64  `gorm:"not null;index"`                                         // References: patients(id)
	DoctorID    int64  `gorm:"not null;index:idx_bookings_doctor_schedule,priority:1"` // References: doctors(id)
	BeginsAt    int64  `gorm:"not null;index:idx_bookings_doctor_schedule,priority:2"`
	EndsAt      int64  `gorm:"not null"`
	SurgeryType int    `gorm:"not null;default:0"`
	IsCancelled bool   `gorm:"not null;default:false"`
	CreatedAt   int64  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt   int64  `gorm:"not null;autoUpdateTime:false"`
}

func (b *Booking) IsActive() bool {
	return !b.IsCancelled
}
