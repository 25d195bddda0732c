package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims is the payload of access tokens issued by the campus identity
// provider. This service only verifies them.
type JWTClaims struct {
	UserID   int64    `json:"user_id"`
	Role     UserRole `json:"role"`
	Email    string   `json:"email,omitempty"`
	FullName string   `json:"full_name,omitempty"`
	jwt.RegisteredClaims
}
