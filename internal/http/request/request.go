// Package request содержит общий разбор входящих запросов: JSON-тело,
// идентификатор из пути и числовые/датовые query-параметры.
package request

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/gymadmin/internal/models"
)

// NewValidator создаёт валидатор, который называет поля по json-тегам
// и понимает тег datetime=<layout> для строковых дат.
func NewValidator() *validator.Validate {
	v := validator.New()
	// validator v9 не содержит datetime, он появился только в v10.
	_ = v.RegisterValidation("datetime", isDatetime)
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

func isDatetime(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	_, err := time.Parse(fl.Param(), field.String())
	return err == nil
}

// DecodeJSON разбирает тело запроса в v.
func DecodeJSON(r *http.Request, v any) error {
	return render.DecodeJSON(r.Body, v)
}

// ID возвращает положительный числовой параметр {id} из пути.
// false означает, что такой записи быть не может.
func ID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// QueryString возвращает значение параметра или nil, если он пуст.
func QueryString(r *http.Request, name string) *string {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	return &v
}

// QueryInt разбирает числовой параметр. Ошибка формата добавляется в verr.
func QueryInt(r *http.Request, name string, verr *models.ValidationError) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		verr.Add(name, "A valid integer is required.")
		return nil
	}
	return &v
}

// QueryDate разбирает параметр-дату YYYY-MM-DD. Ошибка формата добавляется в verr.
func QueryDate(r *http.Request, name string, verr *models.ValidationError) *models.Date {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		verr.Add(name, "Date has wrong format. Use one of these formats instead: YYYY-MM-DD.")
		return nil
	}
	return &d
}
