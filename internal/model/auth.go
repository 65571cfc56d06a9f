package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// JWTCustomClaims はJWTのペイロード。トークンの発行は別サービスが行い、ここでは検証のみ。
type JWTCustomClaims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}
