package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken возвращается для любого токена, который не прошёл проверку.
var ErrInvalidToken = errors.New("invalid token")

// SessionClaims описывает данные сессии, хранящиеся в JWT.
type SessionClaims struct {
	SessionID            string `json:"sid,omitempty"` // Идентификатор сессии у провайдера
	jwt.RegisteredClaims        // Subject — идентификатор пользователя
}

// GenerateToken создает JWT токен для пользователя, подписывая его секретным ключом.
//
// Используется в тестах и для локальной разработки без провайдера.
func (j *MakerImpl) GenerateToken(userID string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken парсит JWT токен, проверяет алгоритм, подпись и срок действия,
// возвращает SessionClaims, если токен корректен и содержит subject.
func (j *MakerImpl) ParseToken(tokenStr string) (*SessionClaims, error) {
	const op = "jwt.ParseToken"

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if j.issuer != "" {
		opts = append(opts, jwt.WithIssuer(j.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%s: %w: empty subject", op, ErrInvalidToken)
	}
	return claims, nil
}
