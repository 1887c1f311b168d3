// Package transport defines request and response DTOs for auth endpoints.
package transport

// RegisterChurchRequest provisions a church tenant with its first admin.
type RegisterChurchRequest struct {
	ChurchName  string  `json:"churchName" validate:"required,min=2,max=200"`
	ChurchEmail string  `json:"churchEmail" validate:"required,email"`
	ChurchPhone *string `json:"churchPhone,omitempty" validate:"omitempty,max=32"`
	Country     string  `json:"country,omitempty" validate:"omitempty,len=2"`
	FirstName   string  `json:"firstName" validate:"required,min=1,max=100"`
	LastName    string  `json:"lastName" validate:"required,min=1,max=100"`
	AdminEmail  string  `json:"adminEmail" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=8,max=128"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type ProfileResponse struct {
	ID        string   `json:"id"`
	ChurchID  string   `json:"churchId"`
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Roles     []string `json:"roles"`
	CreatedAt string   `json:"createdAt"`
}

type AuthResponse struct {
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
	ExpiresIn    int64           `json:"expiresIn"`
	User         ProfileResponse `json:"user"`
}
