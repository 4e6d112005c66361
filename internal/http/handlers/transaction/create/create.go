// Package create реализует HTTP-обработчик создания транзакции.
package create

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/budget-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/budget-manager/internal/http/response"
	"github.com/magabrotheeeer/budget-manager/internal/lib/sl"
	"github.com/magabrotheeeer/budget-manager/internal/models"
)

// Service описывает создание транзакции от имени пользователя.
type Service interface {
	Create(ctx context.Context, user *models.User, draft models.TransactionDraft) (*models.Transaction, error)
}

// Handler обрабатывает POST /api/transactions/.
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
// @Summary Создание транзакции
// @Description Создает транзакцию текущего пользователя. Время создания назначает сервер.
// @Tags Transactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.TransactionRequest true "Данные транзакции"
// @Success 200 {object} models.Transaction
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Нет или недействителен токен"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /transactions/ [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.transaction.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		response.Unauthorized(w, r, "not authenticated")
		return
	}

	var req models.TransactionRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.WriteError(w, r, http.StatusBadRequest, "failed to decode request")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	created, err := h.service.Create(r.Context(), user, req.Draft())
	if err != nil {
		log.Error("failed to create transaction", sl.Err(err))
		response.WriteError(w, r, http.StatusInternalServerError, "could not create transaction")
		return
	}

	log.Info("transaction created", slog.Int64("id", created.ID))
	render.JSON(w, r, created)
}
