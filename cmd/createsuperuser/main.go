// Package main реализует команду createsuperuser: создаёт учётную запись
// сотрудника с правами суперпользователя. Пароль берётся из флага -password
// или переменной GYMADMIN_PASSWORD.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/magabrotheeeer/gymadmin/internal/cache"
	"github.com/magabrotheeeer/gymadmin/internal/config"
	"github.com/magabrotheeeer/gymadmin/internal/events"
	"github.com/magabrotheeeer/gymadmin/internal/lib/sl"
	"github.com/magabrotheeeer/gymadmin/internal/migrations"
	"github.com/magabrotheeeer/gymadmin/internal/models"
	accountservice "github.com/magabrotheeeer/gymadmin/internal/services/account"
	"github.com/magabrotheeeer/gymadmin/internal/storage"
)

func main() {
	var email, firstName, lastName, pass, birth string
	flag.StringVar(&email, "email", "", "email сотрудника")
	flag.StringVar(&firstName, "first-name", "", "имя")
	flag.StringVar(&lastName, "last-name", "", "фамилия")
	flag.StringVar(&pass, "password", os.Getenv("GYMADMIN_PASSWORD"), "пароль")
	flag.StringVar(&birth, "birth-date", "", "дата рождения YYYY-MM-DD, необязательно")
	flag.Parse()

	birthDate, err := parseBirthDate(birth)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := run(context.Background(), cfg, logger, email, firstName, lastName, pass, birthDate); err != nil {
		logger.Error("failed to create superuser", sl.Err(err))
		os.Exit(1)
	}
}

// parseBirthDate разбирает необязательную дату рождения. Пустая строка даёт nil.
func parseBirthDate(raw string) (*models.Date, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("-birth-date: %w", err)
	}
	return &d, nil
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, email, firstName, lastName, pass string, birthDate *models.Date) error {
	db, err := storage.New(cfg.StorageConnectionString, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrations.Run(db.DB()); err != nil {
		return err
	}

	svc := accountservice.New(db, cache.Nop{}, events.Nop{}, 0, logger)
	acc, err := svc.CreateSuperuser(ctx, email, firstName, lastName, pass, birthDate)
	if err != nil {
		return err
	}

	fmt.Printf("Superuser created: id=%d email=%s\n", acc.ID, acc.Email)
	return nil
}
