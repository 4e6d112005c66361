// Package login реализует HTTP-обработчик входа по форме OAuth2 password grant.
//
// Email передается в поле формы username, пароль в поле password.
// При успехе возвращается {"access_token": ..., "token_type": "bearer"}.
package login

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/budget-manager/internal/http/response"
	"github.com/magabrotheeeer/budget-manager/internal/lib/sl"
	"github.com/magabrotheeeer/budget-manager/internal/models"
	"github.com/magabrotheeeer/budget-manager/internal/services/auth"
)

// Request поля формы входа.
type Request struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// Service описывает вход по email и паролю.
type Service interface {
	Login(ctx context.Context, email, password, client string) (string, error)
}

// Handler обрабатывает HTTP-запросы для авторизации.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Проверяет email и пароль, возвращает токен доступа.
// @Tags Auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Email пользователя"
// @Param password formData string true "Пароль"
// @Success 200 {object} models.Token
// @Failure 400 {object} response.ErrorResponse "Некорректная форма"
// @Failure 401 {object} response.ErrorResponse "Неверный email или пароль"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 429 {object} response.ErrorResponse "Слишком много попыток"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseForm(); err != nil {
		log.Error("failed to parse form", sl.Err(err))
		response.WriteError(w, r, http.StatusBadRequest, "invalid form body")
		return
	}
	req := Request{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	}

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	token, err := h.service.Login(r.Context(), req.Username, req.Password, clientAddr(r))
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		log.Info("invalid credentials")
		response.Unauthorized(w, r, auth.ErrInvalidCredentials.Error())
		return
	case errors.Is(err, auth.ErrTooManyAttempts):
		log.Warn("login locked", slog.String("email", req.Username))
		response.WriteError(w, r, http.StatusTooManyRequests, auth.ErrTooManyAttempts.Error())
		return
	case err != nil:
		log.Error("login failed", sl.Err(err))
		response.WriteError(w, r, http.StatusInternalServerError, "failed to login")
		return
	}

	log.Info("login success")
	render.JSON(w, r, models.NewBearerToken(token))
}

// clientAddr адрес клиента без порта. RealIP уже подставил его в RemoteAddr.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
