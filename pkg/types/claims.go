package types

import "github.com/golang-jwt/jwt/v5"

// Claims is the session token payload. RegisteredClaims.ID carries the session id.
type Claims struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}
