package models

import "time"

// User holds a user's last known location context and delivery token.
// The location is overwritten whenever the client reports a new position.
type User struct {
	ID                uint      `json:"-" gorm:"primaryKey"`
	UserID            string    `json:"userId" gorm:"uniqueIndex;size:128"`
	FCMToken          string    `json:"-"`
	Lat               float64   `json:"lat"`
	Lon               float64   `json:"lon"`
	IsUsingLocation   bool      `json:"isUsingLocation"`
	SelectedCity      string    `json:"selectedCity,omitempty"`
	HasLocation       bool      `json:"-" gorm:"default:false;index"`
	LocationUpdatedAt time.Time `json:"locationUpdatedAt"`
	CreatedAt         time.Time `json:"-"`
	UpdatedAt         time.Time `json:"-"`
}

// LocationPayload is the position reported by the client.
type LocationPayload struct {
	Lat             float64 `json:"lat"`
	Lon             float64 `json:"lon"`
	IsUsingLocation bool    `json:"isUsingLocation"`
	SelectedCity    string  `json:"selectedCity"`
}

type UpdateLocationRequest struct {
	UserID   string           `json:"userId" validate:"required"`
	Location *LocationPayload `json:"location" validate:"required"`
}

type RegisterTokenRequest struct {
	UserID   string `json:"userId" validate:"required"`
	FCMToken string `json:"fcmToken" validate:"required"`
}
