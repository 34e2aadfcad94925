package models

// Person is a catalogue character, optionally tied to a home planet.
type Person struct {
	ID           uint    `gorm:"primaryKey"`
	Name         string  `gorm:"not null"`
	HairColor    *string
	HomeplanetID *uint
	Homeplanet   *Planet `gorm:"foreignKey:HomeplanetID"`
}

// TableName explicitly sets the table name for GORM.
func (Person) TableName() string {
	return "people"
}
