package domain

import "time"

type Profile struct {
	ID        string
	UserID    string
	ImagePath *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
