package domain

import "time"

const (
	RoleBuyer  = "buyer"
	RoleFarmer = "farmer"
	RoleAdmin  = "admin"
)

// AssignableRoles are the roles an admin may set over the API. Admin itself
// is never grantable this way.
var AssignableRoles = []string{RoleBuyer, RoleFarmer}

// ProfileImage references a stored avatar in object storage.
type ProfileImage struct {
	URL      string `json:"url" bson:"url"`
	PublicID string `json:"public_id" bson:"public_id"`
}

// User models an account in the marketplace. PasswordHash is never
// serialized in API responses.
type User struct {
	ID           string        `json:"id"`
	FirstName    string        `json:"first_name"`
	LastName     string        `json:"last_name"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"`
	Role         string        `json:"role"`
	FarmName     string        `json:"farm_name,omitempty"`
	FarmLocation string        `json:"farm_location,omitempty"`
	Phone        string        `json:"phone,omitempty"`
	ProfileImage *ProfileImage `json:"profile_image,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
