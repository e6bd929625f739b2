// Package auth provides the admin credential check and signed session tokens.
package auth

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/LukhazD/germany-const-landing/internal/config"
	"github.com/LukhazD/germany-const-landing/internal/errs"
)

// RoleAdmin is the only role the dashboard issues.
const RoleAdmin = "admin"

// Claims represents the session token payload.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Service verifies the fixed admin credentials and issues/validates
// signed, time-limited session tokens. Tokens are stateless; there is
// no server-side session storage.
type Service struct {
	jwtConfig   *config.JWTConfig
	adminConfig *config.AdminConfig
}

// NewService creates a new auth service with the given configuration.
func NewService(jwtCfg *config.JWTConfig, adminCfg *config.AdminConfig) *Service {
	return &Service{
		jwtConfig:   jwtCfg,
		adminConfig: adminCfg,
	}
}

// Login checks the submitted credentials against the configured admin
// account and returns a signed session token on success.
func (s *Service) Login(username, password string) (string, error) {
	if !s.checkCredentials(username, password) {
		return "", &errs.AuthError{Message: "invalid admin credentials"}
	}
	return s.GenerateToken()
}

// checkCredentials compares both values against the configured secrets.
// When a bcrypt hash is configured it replaces the plaintext password
// comparison entirely.
func (s *Service) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.adminConfig.Username)) == 1

	var passOK bool
	if s.adminConfig.PasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(s.adminConfig.PasswordHash), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(s.adminConfig.Password)) == 1
	}

	return userOK && passOK
}

// GenerateToken issues a signed token asserting the admin role with the
// configured expiry.
func (s *Service) GenerateToken() (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TokenTTL())),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// VerifyToken checks signature and expiry and returns the claims, or nil
// on any verification failure: malformed input, expired token or bad
// signature all collapse to nil so every caller treats them uniformly
// as unauthorized.
func (s *Service) VerifyToken(tokenString string) *Claims {
	if tokenString == "" {
		return nil
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil
	}
	return claims
}

// TokenTTL returns the configured token lifetime. The session cookie
// uses the same value for its max age.
func (s *Service) TokenTTL() time.Duration {
	return time.Duration(s.jwtConfig.ExpirationHours) * time.Hour
}
