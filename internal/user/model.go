package user

import "time"

type User struct {
	ID              int      `json:"user_id"`
	Email           string   `json:"email"`
	Password        string   `json:"-"`
	UserName        string   `json:"user_name"`
	Name            *string  `json:"name,omitempty"`
	Address         *string  `json:"address"`
	Location        *string  `json:"location"`
	ProfilePhotoURL *string  `json:"profile_photo_url"`
	Rating          *float64 `json:"rating"`
	TotalContrib    int      `json:"total_contrib"`
	CreatedAt       time.Time `json:"created_at"`
}

type UpdateProfileParams struct {
	UserName        *string
	Name            *string
	Address         *string
	Location        *string
	ProfilePhotoURL *string
}

func (p UpdateProfileParams) HasAnyField() bool {
	return p.UserName != nil ||
		p.Name != nil ||
		p.Address != nil ||
		p.Location != nil ||
		p.ProfilePhotoURL != nil
}
