package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/todo-service/internal/models"
)

// CreateItem сохраняет новую задачу.
func (s *Storage) CreateItem(ctx context.Context, item models.Item) error {
	const op = "storage.CreateItem"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO items (id, owner_id, title, created_at)
			  VALUES ($1, $2, $3, $4)`
	if _, err := s.DB.ExecContext(ctx, query, item.ID, item.OwnerID, item.Title, item.CreatedAt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CountItems считает задачи владельца, название которых содержит search без учёта регистра.
// Пустой search означает все задачи владельца.
func (s *Storage) CountItems(ctx context.Context, ownerID, search string) (int, error) {
	const op = "storage.CountItems"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*)
			  FROM items
			  WHERE owner_id = $1 AND title ILIKE $2`
	var count int
	if err := s.DB.QueryRowContext(ctx, query, ownerID, containsPattern(search)).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// ListItems возвращает страницу задач владельца, новые первыми.
func (s *Storage) ListItems(ctx context.Context, filter models.ItemFilter) ([]*models.Item, error) {
	const op = "storage.ListItems"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, owner_id, title, created_at
			  FROM items
			  WHERE owner_id = $1 AND title ILIKE $2
			  ORDER BY created_at DESC, id
			  LIMIT $3 OFFSET $4`
	rows, err := s.DB.QueryContext(ctx, query,
		filter.OwnerID, containsPattern(filter.Search), filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Item, 0, filter.Limit)
	for rows.Next() {
		var it models.Item
		if err = rows.Scan(&it.ID, &it.OwnerID, &it.Title, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &it)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern строит шаблон ILIKE для поиска подстроки, экранируя метасимволы.
func containsPattern(search string) string {
	return "%" + likeEscaper.Replace(search) + "%"
}
