package models

import "fmt"

// TargetKind says what a favorite points at.
type TargetKind int

const (
	TargetPlanet TargetKind = iota + 1
	TargetPerson
)

func (k TargetKind) String() string {
	switch k {
	case TargetPlanet:
		return "planet"
	case TargetPerson:
		return "people"
	default:
		return "unknown"
	}
}

// FavoriteTarget references exactly one planet or one person.
// The zero value is invalid; build one with PlanetTarget or PersonTarget.
type FavoriteTarget struct {
	kind TargetKind
	id   uint
}

// PlanetTarget references the planet with the given id.
func PlanetTarget(id uint) FavoriteTarget {
	return FavoriteTarget{kind: TargetPlanet, id: id}
}

// PersonTarget references the person with the given id.
func PersonTarget(id uint) FavoriteTarget {
	return FavoriteTarget{kind: TargetPerson, id: id}
}

func (t FavoriteTarget) Kind() TargetKind { return t.kind }
func (t FavoriteTarget) ID() uint         { return t.id }

// Valid reports whether t was built by one of the constructors.
func (t FavoriteTarget) Valid() bool {
	return (t.kind == TargetPlanet || t.kind == TargetPerson) && t.id != 0
}

func (t FavoriteTarget) String() string {
	return fmt.Sprintf("%s %d", t.kind, t.id)
}

// Column returns the favorite column holding the target id.
func (t FavoriteTarget) Column() string {
	if t.kind == TargetPlanet {
		return "planet_id"
	}
	return "people_id"
}

// Favorite links a user to either a planet or a person, never both.
type Favorite struct {
	ID       uint `gorm:"primaryKey"`
	UserID   uint `gorm:"not null"`
	User     *User
	PlanetID *uint
	Planet   *Planet
	PeopleID *uint
	People   *Person `gorm:"foreignKey:PeopleID"`
}

func (Favorite) TableName() string {
	return "favorite"
}

// NewFavorite builds the row for userID favoriting target.
func NewFavorite(userID uint, target FavoriteTarget) Favorite {
	id := target.ID()
	fav := Favorite{UserID: userID}
	switch target.Kind() {
	case TargetPlanet:
		fav.PlanetID = &id
	case TargetPerson:
		fav.PeopleID = &id
	}
	return fav
}

// Target returns the target the row points at. ok is false when the row
// violates the single-target rule.
func (f Favorite) Target() (target FavoriteTarget, ok bool) {
	switch {
	case f.PlanetID != nil && f.PeopleID == nil:
		return PlanetTarget(*f.PlanetID), true
	case f.PeopleID != nil && f.PlanetID == nil:
		return PersonTarget(*f.PeopleID), true
	default:
		return FavoriteTarget{}, false
	}
}
