package model

type Activity struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Venue       string `json:"venue,omitempty"`
	StartsAt    string `json:"startsAt"`
	EndsAt      string `json:"endsAt,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	CheckinURL  string `json:"checkinUrl,omitempty"`
	IsDeleted   bool   `json:"isDeleted"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

type CreateActivityInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category" validate:"omitempty,oneof=workshop screening panel networking ceremony"`
	Venue       string `json:"venue"`
	StartsAt    string `json:"startsAt" validate:"required"`
	EndsAt      string `json:"endsAt"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,url"`
}

type UpdateActivityInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category" validate:"omitempty,oneof=workshop screening panel networking ceremony"`
	Venue       *string `json:"venue"`
	StartsAt    *string `json:"startsAt"`
	EndsAt      *string `json:"endsAt"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,url"`
}
