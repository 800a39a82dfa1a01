package core

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Claims token 只帶 email，角色每次請求由人員資料解析
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func NewClaims(email, issuer string, issuedAt time.Time, ttl time.Duration) Claims {
	return Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}
}
