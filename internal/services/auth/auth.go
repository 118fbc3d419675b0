// Package auth отвечает за вход сотрудников и проверку выданных JWT.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/gymadmin/internal/lib/jwt"
	"github.com/magabrotheeeer/gymadmin/internal/lib/password"
	"github.com/magabrotheeeer/gymadmin/internal/models"
)

// ErrInvalidCredentials неверный email или пароль, либо учётная запись не
// принадлежит активному сотруднику.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AccountRepository описывает поиск учётной записи по email.
type AccountRepository interface {
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
}

// TokenMaker выпускает и проверяет JWT.
type TokenMaker interface {
	GenerateToken(accountID int, email string, isStaff, isSuperuser bool) (string, error)
	ParseToken(tokenStr string) (*jwt.CustomClaims, error)
}

// Service реализует вход сотрудников.
type Service struct {
	accounts AccountRepository
	tokens   TokenMaker
}

// New создаёт сервис входа.
func New(accounts AccountRepository, tokens TokenMaker) *Service {
	return &Service{
		accounts: accounts,
		tokens:   tokens,
	}
}

// Login проверяет пароль и выдаёт токен активному сотруднику.
func (s *Service) Login(ctx context.Context, creds models.Credentials) (string, error) {
	const op = "auth.Login"

	a, err := s.accounts.GetAccountByEmail(ctx, models.NormalizeEmail(creds.Email))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(a.PasswordHash, creds.Password); err != nil {
		return "", ErrInvalidCredentials
	}
	if !a.IsActive || !a.IsStaff {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(a.ID, a.Email, a.IsStaff, a.IsSuperuser)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// ValidateToken проверяет токен и возвращает его утверждения.
func (s *Service) ValidateToken(_ context.Context, token string) (*jwt.CustomClaims, error) {
	const op = "auth.ValidateToken"
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !claims.IsStaff {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	return claims, nil
}
