package service

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("username atau password salah")
	ErrLoginDisabled      = errors.New("login admin belum dikonfigurasi")
)

// AdminAccount adalah satu-satunya akun admin, dibaca dari env.
type AdminAccount struct {
	Username     string
	PasswordHash string
}

// CheckCredentials membandingkan username (constant-time) lalu password bcrypt.
func (a AdminAccount) CheckCredentials(username, password string) error {
	if strings.TrimSpace(a.Username) == "" || strings.TrimSpace(a.PasswordHash) == "" {
		return ErrLoginDisabled
	}
	userOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(username)), []byte(a.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password))
	if !userOK || passErr != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// HashPassword dipakai untuk membuat ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(b), err
}
