package domain

import "time"

// Hotel is one listing row plus the public path of its uploaded image.
type Hotel struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Price       int       `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HotelPatch is a partial update: nil fields are left untouched.
type HotelPatch struct {
	Title       *string
	Description *string
	ImageURL    *string
	Latitude    *float64
	Longitude   *float64
	Price       *int
}

func (p HotelPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.ImageURL == nil &&
		p.Latitude == nil && p.Longitude == nil && p.Price == nil
}
