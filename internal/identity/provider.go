// Package identity связывает сервис с внешним провайдером идентификации:
// извлекает пользователя из запроса по сессионному токену и узнаёт его роль.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/magabrotheeeer/todo-service/internal/models"
)

// ProviderUser — пользователь в ответе провайдера.
type ProviderUser struct {
	ID             string         `json:"id"`
	EmailAddresses []EmailAddress `json:"email_addresses"`
	PublicMetadata map[string]any `json:"public_metadata"`
}

// EmailAddress — адрес почты пользователя у провайдера.
type EmailAddress struct {
	EmailAddress string `json:"email_address"`
}

// PrimaryEmail возвращает первый адрес или пустую строку.
func (u *ProviderUser) PrimaryEmail() string {
	if len(u.EmailAddresses) == 0 {
		return ""
	}
	return u.EmailAddresses[0].EmailAddress
}

// ProviderClient — HTTP-клиент backend API провайдера идентификации.
type ProviderClient struct {
	baseURL   string
	secretKey string
	http      *http.Client
}

// NewProviderClient создаёт клиент с таймаутом на каждый запрос.
func NewProviderClient(baseURL, secretKey string, timeout time.Duration) *ProviderClient {
	return &ProviderClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		http:      &http.Client{Timeout: timeout},
	}
}

// GetUser запрашивает пользователя по идентификатору.
// 404 превращается в models.ErrUserNotFound, остальные сбои — в models.ErrProviderUnavailable.
func (c *ProviderClient) GetUser(ctx context.Context, userID string) (*ProviderUser, error) {
	const op = "identity.ProviderClient.GetUser"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/v1/users/"+url.PathEscape(userID), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, models.ErrProviderUnavailable, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%s: %w: unexpected status %d", op, models.ErrProviderUnavailable, resp.StatusCode)
	}

	var user ProviderUser
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&user); err != nil {
		return nil, fmt.Errorf("%s: %w: decode body: %w", op, models.ErrProviderUnavailable, err)
	}
	return &user, nil
}
