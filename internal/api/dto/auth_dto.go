package dto

import "github.com/fronzypie/share-your-experience/internal/domain"

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse is the public user view. The password hash is never
// serialized.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// NewUserResponse shapes a domain user for the wire.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{ID: user.ID, Username: user.Username}
}
