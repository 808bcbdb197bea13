package utils

import (
	"clinic-admin-service/internal/pkg/constvars"
	"clinic-admin-service/internal/pkg/exceptions"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateSessionJWT signs an HS256 token whose subject is the session id,
// issued at issuedAt and valid until expiresAt.
func GenerateSessionJWT(sessionID, secret string, issuedAt, expiresAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", exceptions.ErrTokenGenerate(err)
	}
	return tokenString, nil
}

func ParseSessionJWT(tokenString, secret string) (string, error) {
	return ParseSessionJWTAt(tokenString, secret, time.Now())
}

// ParseSessionJWTAt validates the token as of now and returns its session id.
func ParseSessionJWTAt(tokenString, secret string, now time.Time) (string, error) {
	claims := new(jwt.RegisteredClaims)
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, exceptions.WrapWithoutError(constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthSigningMethod)
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", exceptions.ErrTokenInvalidOrExpired(err)
	}

	if !token.Valid || claims.Subject == "" {
		return "", exceptions.ErrTokenInvalidOrExpired(nil)
	}
	if !claims.VerifyExpiresAt(now, true) || !claims.VerifyIssuedAt(now, false) {
		return "", exceptions.ErrTokenInvalidOrExpired(nil)
	}
	return claims.Subject, nil
}
