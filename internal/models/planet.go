package models

// Planet is a catalogue planet. Every attribute is required.
type Planet struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"not null"`
	Diameter   int    `gorm:"not null"`
	Population int    `gorm:"not null"`
	Climate    string `gorm:"not null"`
	Terrain    string `gorm:"not null"`
}

func (Planet) TableName() string {
	return "planets"
}
