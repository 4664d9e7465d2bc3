package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/todo-service/internal/models"
)

// UpsertUser сохраняет пользователя, если его ещё нет. Возвращает true, если запись создана.
func (s *Storage) UpsertUser(ctx context.Context, user models.User) (bool, error) {
	const op = "storage.UpsertUser"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (id, email)
			  VALUES ($1, $2)
			  ON CONFLICT (id) DO NOTHING`
	res, err := s.DB.ExecContext(ctx, query, user.ID, nullString(user.Email))
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return n > 0, nil
}

// GetUser возвращает пользователя по идентификатору.
func (s *Storage) GetUser(ctx context.Context, userID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, is_subscribed, subscription_ends, created_at
			  FROM users
			  WHERE id = $1`
	u := &models.User{}

	var email sql.NullString
	var subscriptionEnds sql.NullTime
	err := s.DB.QueryRowContext(ctx, query, userID).
		Scan(&u.ID, &email, &u.IsSubscribed, &subscriptionEnds, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	u.Email = email.String
	if subscriptionEnds.Valid {
		ends := subscriptionEnds.Time
		u.SubscriptionEnds = &ends
	}
	return u, nil
}

// ClearExpiredSubscription сбрасывает подписку, если её срок истёк к моменту now.
// Условие в WHERE делает операцию идемпотентной, повторный вызов ничего не меняет.
func (s *Storage) ClearExpiredSubscription(ctx context.Context, userID string, now time.Time) (bool, error) {
	const op = "storage.ClearExpiredSubscription"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET is_subscribed = FALSE,
			      subscription_ends = NULL
			  WHERE id = $1 AND subscription_ends < $2`
	res, err := s.DB.ExecContext(ctx, query, userID, now)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return n > 0, nil
}

// ActivateSubscription включает подписку до ends независимо от прежнего состояния.
func (s *Storage) ActivateSubscription(ctx context.Context, userID string, ends time.Time) error {
	const op = "storage.ActivateSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET is_subscribed = TRUE,
			      subscription_ends = $2
			  WHERE id = $1`
	res, err := s.DB.ExecContext(ctx, query, userID, ends)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
