// Package jwt genera y valida tokens de acceso firmados con HS256.
package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken indica que el token no es válido o está mal formado.
	ErrInvalidToken = errors.New("token inválido")
	// ErrExpiredToken indica que el token expiró.
	ErrExpiredToken = errors.New("token expirado")
)

// Claims son los claims personalizados que viajan en el token.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Manager firma y valida tokens.
type Manager struct {
	secret     []byte
	expiration time.Duration
	issuer     string
}

// NewManager crea un Manager con el secreto dado y expiración en minutos.
func NewManager(secret string, expirationMinutes int, issuer string) *Manager {
	return &Manager{
		secret:     []byte(secret),
		expiration: time.Duration(expirationMinutes) * time.Minute,
		issuer:     issuer,
	}
}

// Generate emite un token firmado para el usuario y rol indicados.
func (m *Manager) Generate(userID, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate verifica la firma y vigencia del token y devuelve sus claims.
func (m *Manager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Expiration devuelve la duración de vida configurada de los tokens.
func (m *Manager) Expiration() time.Duration {
	return m.expiration
}
