package models

// User is an account that can log in and keep favorites.
type User struct {
	ID        uint       `gorm:"primaryKey"`
	Username  string     `gorm:"type:varchar(120);uniqueIndex;not null"`
	Email     string     `gorm:"type:varchar(120);uniqueIndex;not null"`
	Password  string     `gorm:"type:varchar(80);not null"` // bcrypt hash, never serialized
	IsActive  bool       `gorm:"not null"`
	Favorites []Favorite `gorm:"foreignKey:UserID"`
}

// TableName pins the table name to the persisted schema.
func (User) TableName() string {
	return "users"
}
