package model

type Partner struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Tier        string `json:"tier"`
	LogoURL     string `json:"logoUrl,omitempty"`
	Website     string `json:"website,omitempty"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order"`
	IsActive    bool   `json:"isActive"`
	IsDeleted   bool   `json:"isDeleted"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

type CreatePartnerInput struct {
	Name        string `json:"name" validate:"required"`
	Tier        string `json:"tier" validate:"required,oneof=platinum gold silver bronze community"`
	LogoURL     string `json:"logoUrl" validate:"omitempty,url"`
	Website     string `json:"website" validate:"omitempty,url"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

type UpdatePartnerInput struct {
	Name        *string `json:"name"`
	Tier        *string `json:"tier" validate:"omitempty,oneof=platinum gold silver bronze community"`
	LogoURL     *string `json:"logoUrl" validate:"omitempty,url"`
	Website     *string `json:"website" validate:"omitempty,url"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"isActive"`
}
