package models

type Recipe struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Summary     string `gorm:"not null"`
	MainTag     string `gorm:"not null"`
	Difficulty  *string
	PrepMinutes *int
	IsSuitable  bool `gorm:"not null;default:true"`
}
