// Package response формирует JSON-ответы обработчиков: конверты с данными,
// тела ошибок валидации вида "поле -> [сообщения]" и пустые ответы 404.
package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/gymadmin/internal/models"
)

// ErrorResponse тело ответа при непредвиденной ошибке сервера.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"internal error"`
}

// ValidationErrorResponse тело ответа 400 для Swagger-документации.
type ValidationErrorResponse map[string][]string

const (
	// StatusOK значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// Error возвращает тело ответа с ошибкой и переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// Envelope оборачивает данные в объект с одним ключом, например {"user": {...}}.
func Envelope(key string, data any) map[string]any {
	return map[string]any{key: data}
}

// ValidationError переводит ошибки validator в словарь "поле -> сообщения".
// Имена полей берутся из json-тегов, если валидатор создан через request.NewValidator.
func ValidationError(errs validator.ValidationErrors) map[string][]string {
	fields := make(map[string][]string, len(errs))
	for _, err := range errs {
		fields[err.Field()] = append(fields[err.Field()], message(err))
	}
	return fields
}

func message(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", err.Param())
	case "min":
		return "This field may not be blank."
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", err.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", err.Param())
	case "datetime":
		return "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	default:
		return "Invalid value."
	}
}

// BadRequest отвечает 400 с ошибками по полям.
func BadRequest(w http.ResponseWriter, r *http.Request, fields map[string][]string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, fields)
}

// InvalidBody отвечает 400 на тело запроса, которое не удалось разобрать.
func InvalidBody(w http.ResponseWriter, r *http.Request) {
	BadRequest(w, r, map[string][]string{models.NonFieldErrors: {"invalid request body"}})
}

// NotFound отвечает 404 с пустым телом.
func NotFound(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
}

// InternalError отвечает 500 с общим сообщением.
func InternalError(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, Error(msg))
}

// ServiceError выбирает ответ по ошибке сервиса: ValidationError даёт 400,
// models.ErrNotFound даёт 404, всё остальное 500 с сообщением msg.
func ServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	if verr, ok := models.AsValidationError(err); ok {
		BadRequest(w, r, verr.Fields)
		return
	}
	if errors.Is(err, models.ErrNotFound) {
		NotFound(w)
		return
	}
	InternalError(w, r, msg)
}

// Created отвечает 201 с конвертом.
func Created(w http.ResponseWriter, r *http.Request, key string, data any) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, Envelope(key, data))
}

// OK отвечает 200 с конвертом.
func OK(w http.ResponseWriter, r *http.Request, key string, data any) {
	render.JSON(w, r, Envelope(key, data))
}

// NoContent отвечает 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
