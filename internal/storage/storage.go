// Package storage реализует хранилище бэк-офиса на PostgreSQL: учётные записи,
// типы абонементов, абонементы, посещения и агрегаты для статистики.
//
// Каскадное удаление учётная запись -> абонементы -> посещения объявлено
// в схеме внешними ключами ON DELETE CASCADE.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	_driverName     = "pgx"
	_connectTimeout = 5 * time.Second
)

// Storage инкапсулирует пул соединений и построитель запросов.
type Storage struct {
	db      *sqlx.DB
	builder squirrel.StatementBuilderType
	log     *slog.Logger
}

// New подключается к PostgreSQL и проверяет соединение.
func New(storageConnectionString string, log *slog.Logger) (*Storage, error) {
	const op = "storage.New"

	ctx, cancel := context.WithTimeout(context.Background(), _connectTimeout)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, _driverName, storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(2 * time.Hour)

	return &Storage{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		log:     log.With(slog.String("component", "storage")),
	}, nil
}

// DB возвращает *sql.DB, например для миграций.
func (s *Storage) DB() *sql.DB {
	return s.db.DB
}

// Ping проверяет доступность базы.
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close закрывает пул соединений.
func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) get(ctx context.Context, op string, dest any, q squirrel.Sqlizer) error {
	query, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Debug("build query", slog.String("op", op), slog.String("sql", query), slog.Any("args", args))

	return s.db.QueryRowxContext(ctx, query, args...).StructScan(dest)
}

func (s *Storage) selectAll(ctx context.Context, op string, dest any, q squirrel.Sqlizer) error {
	query, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Debug("build query", slog.String("op", op), slog.String("sql", query), slog.Any("args", args))

	return s.db.SelectContext(ctx, dest, query, args...)
}

func (s *Storage) exec(ctx context.Context, op string, q squirrel.Sqlizer) (int64, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Debug("build query", slog.String("op", op), slog.String("sql", query), slog.Any("args", args))

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Storage) scalar(ctx context.Context, op string, dest any, q squirrel.Sqlizer) error {
	query, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Debug("build query", slog.String("op", op), slog.String("sql", query), slog.Any("args", args))

	return s.db.QueryRowxContext(ctx, query, args...).Scan(dest)
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}
