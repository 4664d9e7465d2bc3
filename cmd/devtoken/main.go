// Команда devtoken выпускает сессионный токен для локальной отладки API.
//
//	CONFIG_PATH=./config/local.yaml go run ./cmd/devtoken -user user_123 -ttl 1h
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/magabrotheeeer/todo-service/internal/config"
	"github.com/magabrotheeeer/todo-service/internal/lib/jwt"
	"github.com/magabrotheeeer/todo-service/internal/lib/sl"
)

func main() {
	userID := flag.String("user", "", "идентификатор пользователя (claim sub)")
	ttl := flag.Duration("ttl", time.Hour, "время жизни токена")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if *userID == "" {
		logger.Error("flag -user is required")
		os.Exit(2)
	}

	cfg := config.MustLoad()
	token, err := jwt.NewJWTMaker(cfg.Identity.SessionSecret, *ttl).
		WithIssuer(cfg.Identity.Issuer).
		GenerateToken(*userID)
	if err != nil {
		logger.Error("failed to generate token", sl.Err(err))
		os.Exit(1)
	}

	fmt.Println(token)
}
