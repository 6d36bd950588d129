package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	Issuer         = "dersflix-web"
	Audience       = "dersflix.app"
	SessionTimeout = 12 * time.Hour
)

var jwtSecret string

func InitJWT() error {
	var ok bool
	jwtSecret, ok = os.LookupEnv("JWT_SECRET")
	if !ok || jwtSecret == "" {
		return fmt.Errorf("JWT_SECRET not specified")
	}

	return nil
}

func JwtKeyFunc(_ *jwt.Token) (interface{}, error) {
	return []byte(jwtSecret), nil
}

func Authorize(username string, timeout time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{
		Issuer:    Issuer,
		Subject:   username,
		Audience:  []string{Audience},
		ExpiresAt: jwt.NewNumericDate(now.Add(timeout)),
		IssuedAt:  jwt.NewNumericDate(now),
	})
	return token.SignedString([]byte(jwtSecret))
}

// Verify returns the username a signed token was issued for.
func Verify(signedToken string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(signedToken, claims, JwtKeyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", err
	}

	if !token.Valid || claims.Subject == "" {
		return "", jwt.ErrTokenInvalidClaims
	}

	return claims.Subject, nil
}
