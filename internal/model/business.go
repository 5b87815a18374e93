package model

// Business is a bookable venue owned by one authenticated user. The deployment
// runs in a single local time zone; there is no per-business zone field.
type Business struct {
	Base
	OwnerID  string `db:"owner_id" json:"owner_id"`
	Name     string `db:"name" json:"name"`
	Slug     string `db:"slug" json:"slug"`
	Email    string `db:"email" json:"email,omitempty"`
	Phone    string `db:"phone" json:"phone,omitempty"`
	Address  string `db:"address" json:"address,omitempty"`
	IsActive bool   `db:"is_active" json:"is_active"`
}

type CreateBusinessRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=120"`
	Slug    string `json:"slug" binding:"required,min=2,max=60"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone" binding:"omitempty,max=30"`
	Address string `json:"address" binding:"omitempty,max=250"`
}

type UpdateBusinessRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=120"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone" binding:"omitempty,max=30"`
	Address  *string `json:"address" binding:"omitempty,max=250"`
	IsActive *bool   `json:"is_active"`
}
