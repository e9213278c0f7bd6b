package httpdto

// RegisterRequest is used for POST /auth/register
type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// LoginRequest is used for POST /auth/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is returned after successful registration or login
type TokenResponse struct {
	Token string `json:"token"`
}
