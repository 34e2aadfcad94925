package database

import "gorm.io/gorm"

// Table snapshots used by the migrations. They are frozen copies of the
// schema at each version and must not follow later model changes.

type usersV1 struct {
	ID       uint   `gorm:"primaryKey"`
	Username string `gorm:"type:varchar(120);uniqueIndex:idx_users_username;not null"`
	Email    string `gorm:"type:varchar(120);uniqueIndex:idx_users_email;not null"`
	Password string `gorm:"type:varchar(80);not null"`
	IsActive bool   `gorm:"not null"`
}

func (usersV1) TableName() string { return "users" }

type planetsV1 struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"not null"`
	Diameter   int    `gorm:"not null"`
	Population int    `gorm:"not null"`
	Climate    string `gorm:"not null"`
	Terrain    string `gorm:"not null"`
}

func (planetsV1) TableName() string { return "planets" }

type peopleV1 struct {
	ID           uint       `gorm:"primaryKey"`
	Name         string     `gorm:"not null"`
	HairColor    *string
	HomeplanetID *uint
	Homeplanet   *planetsV1 `gorm:"foreignKey:HomeplanetID"`
}

func (peopleV1) TableName() string { return "people" }

type favoriteV1 struct {
	ID       uint       `gorm:"primaryKey"`
	UserID   uint       `gorm:"not null;uniqueIndex:idx_favorite_user_planet;uniqueIndex:idx_favorite_user_people"`
	User     *usersV1   `gorm:"foreignKey:UserID"`
	PlanetID *uint      `gorm:"uniqueIndex:idx_favorite_user_planet;check:chk_favorite_single_target,(planet_id IS NULL) <> (people_id IS NULL)"`
	Planet   *planetsV1 `gorm:"foreignKey:PlanetID"`
	PeopleID *uint      `gorm:"uniqueIndex:idx_favorite_user_people"`
	People   *peopleV1  `gorm:"foreignKey:PeopleID"`
}

func (favoriteV1) TableName() string { return "favorite" }

var registry = []Migration{
	{
		Version: "20240402_224900",
		Name:    "create_users",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&usersV1{})
		},
		Down: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&usersV1{})
		},
	},
	{
		Version: "20240402_225500",
		Name:    "create_planets_and_people",
		Up: func(tx *gorm.DB) error {
			if err := tx.Migrator().CreateTable(&planetsV1{}); err != nil {
				return err
			}
			return tx.Migrator().CreateTable(&peopleV1{})
		},
		Down: func(tx *gorm.DB) error {
			if err := tx.Migrator().DropTable(&peopleV1{}); err != nil {
				return err
			}
			return tx.Migrator().DropTable(&planetsV1{})
		},
	},
	{
		Version: "20240402_230157",
		Name:    "create_favorite",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&favoriteV1{})
		},
		Down: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&favoriteV1{})
		},
	},
}
