// Package repository реализует хранилище данных на основе PostgreSQL:
// записи пользователей с состоянием подписки и задачи пользователей.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Storage инкапсулирует пул соединений с PostgreSQL.
type Storage struct {
	DB *sql.DB
}

var (
	sharedMu sync.Mutex
	shared   *Storage
)

// Open возвращает общий для процесса Storage, создавая его при первом вызове.
// Ошибка подключения не запоминается: следующий вызов попробует снова.
func Open(storageConnectionString string) (*Storage, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if shared != nil {
		return shared, nil
	}
	s, err := New(storageConnectionString)
	if err != nil {
		return nil, err
	}
	shared = s
	return shared, nil
}

// Close закрывает общий Storage, открытый через Open.
func Close() error {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if shared == nil {
		return nil
	}
	err := shared.DB.Close()
	shared = nil
	return err
}

// New создаёт подключение к PostgreSQL и проверяет его.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err = db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return NewWithDB(db), nil
}

// NewWithDB оборачивает уже открытое соединение.
func NewWithDB(db *sql.DB) *Storage {
	return &Storage{
		DB: db,
	}
}

// CheckDatabaseReady проверяет, что миграции применены.
func CheckDatabaseReady(ctx context.Context, storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRowContext(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'items'
    )`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("required table items query error: %w", err)
	}
	if !exists {
		return fmt.Errorf("required table items missing")
	}
	return nil
}
