package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Admin struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string     `json:"token"`
	Admin *Principal `json:"admin"`
}

// Principal is the verified admin identity carried by a request.
type Principal struct {
	AdminID  int64  `json:"id"`
	Username string `json:"username"`
}

// Claims is the signed payload of an admin token.
type Claims struct {
	AdminID  int64  `json:"adminId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
