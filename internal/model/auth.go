package model

import "github.com/golang-jwt/jwt/v5"

// AdminClaims are JWT claims for back-office operators
type AdminClaims struct {
	AdminID string `json:"adminId"`
	jwt.RegisteredClaims
}

// ClientClaims are JWT claims handed out after registration/migration
type ClientClaims struct {
	ClientID string `json:"clientId"`
	jwt.RegisteredClaims
}

// LoginResponse is returned on successful admin login
type LoginResponse struct {
	Token   string `json:"token"`
	AdminID string `json:"adminId"`
}
