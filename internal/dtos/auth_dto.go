package dtos

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	UserType string `json:"user_type" binding:"required,oneof=employee company"`

	Name string `json:"name"`

	// Employee profile
	Skills      string `json:"skills"`
	Education   string `json:"education"`
	Experience  string `json:"experience"`
	Location    string `json:"location"`
	DateOfBirth string `json:"date_of_birth"`

	// Company profile
	CompanyName        string `json:"company_name"`
	Industry           string `json:"industry"`
	CompanyDescription string `json:"company_description"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginUser struct {
	Email    string `json:"email"`
	UserType string `json:"user_type"`
	UserID   string `json:"user_id"`
}

type LoginResponse struct {
	Message   string    `json:"message"`
	User      LoginUser `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt string    `json:"expires_at"`
}
