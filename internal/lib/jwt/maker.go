// Package jwt реализует выпуск и проверку сессионных JWT-токенов провайдера идентификации.
//
// Идентификатор пользователя передаётся в стандартном claim "sub".
package jwt

import (
	"time"
)

// Maker описывает интерфейс для генерации и парсинга сессионных токенов.
type Maker interface {
	// GenerateToken выпускает токен для пользователя userID
	GenerateToken(userID string) (string, error)
	// ParseToken проверяет подпись и срок действия, возвращает claims
	ParseToken(tokenStr string) (*SessionClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием общего секрета
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
	issuer    string        // Ожидаемый издатель, пустая строка отключает проверку.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}

// WithIssuer включает проверку claim "iss".
func (j *MakerImpl) WithIssuer(issuer string) *MakerImpl {
	j.issuer = issuer
	return j
}
