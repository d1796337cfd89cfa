package dto

import "tradepulse/internal/entity"

// RegisterRequest is the body for creating a user. The password is
// accepted but not verified; the session layer is a mock.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body for opening a session.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse carries the bearer token and the user it belongs to.
type SessionResponse struct {
	Token string      `json:"token"`
	User  entity.User `json:"user"`
}

// RiskProfile captures the user's self-declared risk appetite.
type RiskProfile struct {
	Experience string  `json:"experience"`
	Tolerance  string  `json:"tolerance"`
	Timeline   string  `json:"timeline"`
	Capital    string  `json:"capital"`
	MaxLoss    float64 `json:"max_loss"`
}
