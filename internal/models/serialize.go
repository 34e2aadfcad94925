package models

// UserResponse is the wire form of a User. The password is never included.
type UserResponse struct {
	ID        uint               `json:"id"`
	Username  string             `json:"username"`
	Email     string             `json:"email"`
	Favorites []FavoriteResponse `json:"favorites"`
}

type PlanetResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Diameter   int    `json:"diameter"`
	Population int    `json:"population"`
	Climate    string `json:"climate"`
	Terrain    string `json:"terrain"`
}

type PersonResponse struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	HairColor *string `json:"hair_color"`
}

// FavoriteResponse names the owner and the favorited planet or person.
type FavoriteResponse struct {
	ID     uint    `json:"id"`
	Name   string  `json:"name"`
	Planet *string `json:"planet"`
	People *string `json:"people"`
}

// Serialize projects u to its wire form. Favorites is nil (JSON null) when
// the user has none; relations must be preloaded for names to appear.
func (u User) Serialize() UserResponse {
	resp := UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
	if len(u.Favorites) > 0 {
		resp.Favorites = SerializeFavorites(u.Favorites)
	}
	return resp
}

func (p Planet) Serialize() PlanetResponse {
	return PlanetResponse{
		ID:         p.ID,
		Name:       p.Name,
		Diameter:   p.Diameter,
		Population: p.Population,
		Climate:    p.Climate,
		Terrain:    p.Terrain,
	}
}

func (p Person) Serialize() PersonResponse {
	return PersonResponse{
		ID:        p.ID,
		Name:      p.Name,
		HairColor: p.HairColor,
	}
}

func (f Favorite) Serialize() FavoriteResponse {
	resp := FavoriteResponse{ID: f.ID}
	if f.User != nil {
		resp.Name = f.User.Username
	}
	if f.Planet != nil {
		name := f.Planet.Name
		resp.Planet = &name
	}
	if f.People != nil {
		name := f.People.Name
		resp.People = &name
	}
	return resp
}

// SerializeFavorites always returns a non-nil slice.
func SerializeFavorites(favs []Favorite) []FavoriteResponse {
	out := make([]FavoriteResponse, 0, len(favs))
	for _, f := range favs {
		out = append(out, f.Serialize())
	}
	return out
}

func SerializeUsers(users []User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, u.Serialize())
	}
	return out
}

func SerializePlanets(planets []Planet) []PlanetResponse {
	out := make([]PlanetResponse, 0, len(planets))
	for _, p := range planets {
		out = append(out, p.Serialize())
	}
	return out
}

func SerializePeople(people []Person) []PersonResponse {
	out := make([]PersonResponse, 0, len(people))
	for _, p := range people {
		out = append(out, p.Serialize())
	}
	return out
}
