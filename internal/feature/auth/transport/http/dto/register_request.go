package dto

// RegisterReq represents the request body for the /auth/register endpoint.
// Passwords are capped at 72 bytes, the bcrypt input limit.
type RegisterReq struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,max=72"`
	FirstName string `json:"firstName" binding:"required,max=100"`
	LastName  string `json:"lastName" binding:"required,max=100"`
}
