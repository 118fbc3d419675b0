// Package login реализует вход сотрудника зала: по email и паролю выдаётся JWT,
// с которым затем вызываются защищённые маршруты API.
package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/gymadmin/internal/http/request"
	"github.com/magabrotheeeer/gymadmin/internal/http/response"
	"github.com/magabrotheeeer/gymadmin/internal/lib/sl"
	"github.com/magabrotheeeer/gymadmin/internal/models"
	"github.com/magabrotheeeer/gymadmin/internal/services/auth"
)

// Service описывает бизнес-логику входа.
type Service interface {
	Login(ctx context.Context, creds models.Credentials) (string, error)
}

// TokenResponse тело успешного ответа.
type TokenResponse struct {
	Token string `json:"token"`
}

// Handler обрабатывает POST /login.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создаёт обработчик входа.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: request.NewValidator(),
	}
}

// ServeHTTP godoc
// @Summary Вход сотрудника
// @Description Проверяет email и пароль активного сотрудника и возвращает JWT.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.Credentials true "Учётные данные"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} response.ValidationErrorResponse
// @Failure 401 {object} response.ErrorResponse "Неверные учётные данные"
// @Failure 500 {object} response.ErrorResponse
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.login"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.Credentials
	if err := request.DecodeJSON(r, &req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		response.InvalidBody(w, r)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		if verrs, ok := err.(validator.ValidationErrors); ok {
			response.BadRequest(w, r, response.ValidationError(verrs))
			return
		}
		response.InternalError(w, r, "could not validate request")
		return
	}

	token, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Warn("login rejected", slog.String("email", req.Email))
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid credentials"))
			return
		}
		log.Error("login failed", sl.Err(err))
		response.InternalError(w, r, "could not log in")
		return
	}

	log.Info("login success", slog.String("email", req.Email))
	render.JSON(w, r, TokenResponse{Token: token})
}
