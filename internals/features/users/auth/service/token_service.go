// internals/features/users/auth/service/token_service.go
package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"surveikita_web/internals/constants"
)

const accessTTLDefault = 12 * time.Hour

// IssueAdminToken membuat access token HS256 untuk admin.
func IssueAdminToken(secret, username string, now time.Time) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, errors.New("JWT_SECRET kosong")
	}
	exp := now.Add(accessTTLDefault)
	claims := jwt.MapClaims{
		"sub":       username,
		"user_name": username,
		"role":      constants.RoleAdmin,
		"iat":       now.Unix(),
		"exp":       exp.Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tok, exp, nil
}
