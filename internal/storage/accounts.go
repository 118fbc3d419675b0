package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/magabrotheeeer/gymadmin/internal/models"
)

var accountColumns = []string{
	"id", "email", "first_name", "last_name", "birth_date", "password_hash",
	"is_active", "is_staff", "is_superuser", "created_at",
}

// CreateAccount сохраняет учётную запись и возвращает её ID.
func (s *Storage) CreateAccount(ctx context.Context, a models.Account) (int, error) {
	const op = "storage.CreateAccount"

	q := s.builder.
		Insert("accounts").
		Columns("email", "first_name", "last_name", "birth_date", "password_hash",
			"is_active", "is_staff", "is_superuser").
		Values(a.Email, a.FirstName, a.LastName, a.BirthDate, a.PasswordHash,
			a.IsActive, a.IsStaff, a.IsSuperuser).
		Suffix("RETURNING id")

	var id int
	if err := s.scalar(ctx, op, &id, q); err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, models.NewError("account", models.ErrExists))
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetAccount возвращает учётную запись по ID.
func (s *Storage) GetAccount(ctx context.Context, id int) (*models.Account, error) {
	const op = "storage.GetAccount"
	return s.getAccountWhere(ctx, op, squirrel.Eq{"id": id})
}

// GetAccountByEmail возвращает учётную запись по email.
func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	const op = "storage.GetAccountByEmail"
	return s.getAccountWhere(ctx, op, squirrel.Eq{"email": email})
}

func (s *Storage) getAccountWhere(ctx context.Context, op string, where squirrel.Eq) (*models.Account, error) {
	q := s.builder.Select(accountColumns...).From("accounts").Where(where).Limit(1)

	var a models.Account
	if err := s.get(ctx, op, &a, q); err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("%s: %w", op, models.NewError("account", models.ErrNotFound))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &a, nil
}

// ListAccounts возвращает учётные записи, подходящие под все заданные фильтры.
func (s *Storage) ListAccounts(ctx context.Context, filter models.AccountFilter) ([]models.Account, error) {
	const op = "storage.ListAccounts"

	equals := squirrel.Eq{}
	if filter.FirstName != nil {
		equals["first_name"] = *filter.FirstName
	}
	if filter.LastName != nil {
		equals["last_name"] = *filter.LastName
	}
	if filter.Email != nil {
		equals["email"] = *filter.Email
	}

	q := s.builder.Select(accountColumns...).From("accounts").Where(equals).OrderBy("id ASC")

	accounts := make([]models.Account, 0)
	if err := s.selectAll(ctx, op, &accounts, q); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return accounts, nil
}

// UpdateAccount меняет имя и фамилию; незаданные поля не трогаются.
func (s *Storage) UpdateAccount(ctx context.Context, id int, upd models.DummyAccountUpdate) (*models.Account, error) {
	const op = "storage.UpdateAccount"

	data := make(map[string]any, 2)
	if upd.FirstName != nil {
		data["first_name"] = *upd.FirstName
	}
	if upd.LastName != nil {
		data["last_name"] = *upd.LastName
	}
	if len(data) == 0 {
		return s.GetAccount(ctx, id)
	}

	q := s.builder.
		Update("accounts").
		SetMap(data).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(accountColumns, ", "))

	var a models.Account
	if err := s.get(ctx, op, &a, q); err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("%s: %w", op, models.NewError("account", models.ErrNotFound))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &a, nil
}

// DeleteAccount удаляет учётную запись вместе с абонементами и посещениями.
func (s *Storage) DeleteAccount(ctx context.Context, id int) error {
	const op = "storage.DeleteAccount"

	n, err := s.exec(ctx, op, s.builder.Delete("accounts").Where(squirrel.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, models.NewError("account", models.ErrNotFound))
	}
	return nil
}
