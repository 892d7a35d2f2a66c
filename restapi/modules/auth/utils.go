// Package auth provides operator authentication for autonomous engine actions.
//
//revive:disable-next-line:var-naming
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/aishield/shield-backend/internal/config"
	"github.com/aishield/shield-backend/model"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for a wrong username or password
var ErrInvalidCredentials = errors.New("invalid credentials")

// ============================================================================
// PASSWORD HASHING
// ============================================================================

// HashPassword generates a bcrypt hash of the password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with a hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ============================================================================
// JWT TOKEN MANAGEMENT
// ============================================================================

// Claims represents JWT claims
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator issues and validates operator tokens. A zero secret disables auth.
type Authenticator struct {
	secret       []byte
	operator     string
	passwordHash string
	ttl          time.Duration
	now          func() time.Time
}

// NewAuthenticator builds an authenticator from configuration
func NewAuthenticator(cfg config.Auth) *Authenticator {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Authenticator{
		secret:       []byte(cfg.JWTSecret),
		operator:     cfg.OperatorUser,
		passwordHash: cfg.OperatorPasswordHash,
		ttl:          ttl,
		now:          time.Now,
	}
}

// Enabled reports whether engine actions require a token
func (a *Authenticator) Enabled() bool {
	return a != nil && len(a.secret) > 0
}

// Login checks the operator credentials and returns a signed token
func (a *Authenticator) Login(username, password string) (model.LoginResponse, error) {
	if !a.Enabled() {
		return model.LoginResponse{}, errors.New("authentication is not configured")
	}
	if username != a.operator || !CheckPasswordHash(password, a.passwordHash) {
		return model.LoginResponse{}, ErrInvalidCredentials
	}
	token, expires, err := a.GenerateJWT(username, model.RoleOperator)
	if err != nil {
		return model.LoginResponse{}, err
	}
	return model.LoginResponse{
		Token:    token,
		Operator: model.Operator{Username: username, Role: model.RoleOperator, ExpiresAt: expires},
	}, nil
}

// GenerateJWT generates a token for the operator
func (a *Authenticator) GenerateJWT(username, role string) (string, time.Time, error) {
	issued := a.now()
	expirationTime := issued.Add(a.ttl)

	claims := &Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(issued),
			Issuer:    "shield-backend",
			Subject:   username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expirationTime, nil
}

// ValidateJWT validates a JWT token and returns the claims
func (a *Authenticator) ValidateJWT(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithTimeFunc(a.now))

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
