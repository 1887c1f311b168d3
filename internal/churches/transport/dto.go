// Package transport defines request and response DTOs for church endpoints.
package transport

type UpdateChurchRequest struct {
	Name    string  `json:"name" validate:"required,min=2,max=200"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Country string  `json:"country" validate:"required,len=2"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=500"`
	Website *string `json:"website,omitempty" validate:"omitempty,url,max=200"`
}

type ChurchResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`
	Country   string  `json:"country"`
	Address   *string `json:"address,omitempty"`
	Website   *string `json:"website,omitempty"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}
