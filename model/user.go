package model

import "time"

// Operator roles
const (
	RoleOperator = "operator"
)

// Operator is the authenticated person allowed to act on autonomous interventions
type Operator struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// LoginRequest carries operator credentials
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse returns the bearer token for engine actions
type LoginResponse struct {
	Token    string   `json:"token"`
	Operator Operator `json:"operator"`
}
