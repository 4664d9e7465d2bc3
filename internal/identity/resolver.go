package identity

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/magabrotheeeer/todo-service/internal/lib/jwt"
	"github.com/magabrotheeeer/todo-service/internal/lib/sl"
)

// SessionCookie — cookie, в которой браузер передаёт сессионный токен.
const SessionCookie = "__session"

// TokenParser проверяет сессионный токен.
type TokenParser interface {
	ParseToken(tokenStr string) (*jwt.SessionClaims, error)
}

// Resolver определяет пользователя запроса по сессионному токену.
type Resolver struct {
	log    *slog.Logger
	parser TokenParser
}

// NewResolver создаёт Resolver.
func NewResolver(log *slog.Logger, parser TokenParser) *Resolver {
	return &Resolver{
		log:    log,
		parser: parser,
	}
}

// Resolve возвращает идентификатор пользователя. Анонимный запрос и негодный токен
// дают ok == false, это не ошибка.
func (r *Resolver) Resolve(req *http.Request) (string, bool) {
	token := bearerToken(req)
	if token == "" {
		if c, err := req.Cookie(SessionCookie); err == nil {
			token = c.Value
		}
	}
	if token == "" {
		return "", false
	}

	claims, err := r.parser.ParseToken(token)
	if err != nil {
		r.log.Debug("session token rejected", sl.Err(err))
		return "", false
	}
	return claims.Subject, true
}

func bearerToken(req *http.Request) string {
	authHeader := req.Header.Get("Authorization")
	if len(authHeader) < len("Bearer ") || !strings.EqualFold(authHeader[:len("Bearer ")], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[len("Bearer "):])
}
