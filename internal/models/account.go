// Package models содержит доменные структуры бэк-офиса спортзала: учётные записи,
// типы абонементов, абонементы и посещения, а также DTO для приёма JSON-запросов
// и фильтры списков.
package models

import (
	"strings"
	"time"
)

// Account зарегистрированный клиент или сотрудник зала.
// Хэш пароля никогда не попадает в JSON.
type Account struct {
	ID           int       `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	BirthDate    *Date     `json:"birth_date,omitempty" db:"birth_date"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	IsStaff      bool      `json:"is_staff" db:"is_staff"`
	IsSuperuser  bool      `json:"is_superuser" db:"is_superuser"`
	CreatedAt    time.Time `json:"-" db:"created_at"`
}

// DummyAccount принимает данные регистрации из JSON-запроса.
type DummyAccount struct {
	Email     string `json:"email" validate:"required,email,max=200"`
	FirstName string `json:"first_name" validate:"required,max=250"`
	LastName  string `json:"last_name" validate:"required,max=250"`
	Password  string `json:"password" validate:"required"`
	BirthDate string `json:"birth_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// DummyAccountUpdate частичное обновление: меняются только имя и фамилия.
type DummyAccountUpdate struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,min=1,max=250"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,min=1,max=250"`
}

// AccountFilter точные фильтры списка, объединяемые через AND.
type AccountFilter struct {
	FirstName *string
	LastName  *string
	Email     *string
}

// NewAccountParams параметры фабрики учётных записей.
type NewAccountParams struct {
	Email       string
	FirstName   string
	LastName    string
	Password    string
	BirthDate   *Date
	IsStaff     bool
	IsSuperuser bool
}

// Credentials данные для входа сотрудника.
type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// NormalizeEmail приводит доменную часть адреса к нижнему регистру.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}
