package entity

type SurgeryType int

const (
	NoSurgery SurgeryType = iota
	SystemOne
	SystemTwo
)

type Clinic struct {
	ID          int64       `gorm:"primaryKey"`
	Name        string      `gorm:"not null"`
	SurgeryType SurgeryType `gorm:"not null;default:0"`
	CreatedAt   int64       `gorm:"not null"`
}
