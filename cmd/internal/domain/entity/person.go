package entity

type Gender int

const (
	GenderNotSpecified Gender = iota
	GenderMale
	GenderFemale
	GenderOther
)

type Doctor struct {
	ID          int64  `gorm:"primaryKey"`
	FirstName   string `gorm:"not null"`
	LastName    string `gorm:"not null"`
	Email       string `gorm:"not null;uniqueIndex"`
	Gender      Gender `gorm:"not null;default:0"`
	DateOfBirth int64  `gorm:"not null"`
	CreatedAt   int64  `gorm:"not null"`
}

type Patient struct {
	ID          int64  `gorm:"primaryKey"`
	FirstName   string `gorm:"not null"`
	LastName    string `gorm:"not null"`
	Email       string `gorm:"not null;uniqueIndex"`
	Gender      Gender `gorm:"not null;default:0"`
	DateOfBirth int64  `gorm:"not null"`
	ClinicID    int64  `gorm:"not null;index"` // References: clinics(id)
	CreatedAt   int64  `gorm:"not null"`

	// Relations
	Clinic *Clinic `gorm:"foreignKey:ClinicID;references:ID"`
}
