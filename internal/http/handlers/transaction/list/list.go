package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/budget-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/budget-manager/internal/http/response"
	"github.com/magabrotheeeer/budget-manager/internal/lib/sl"
	"github.com/magabrotheeeer/budget-manager/internal/models"
)

type Service interface {
	List(ctx context.Context, user *models.User) ([]models.Transaction, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список транзакций
// @Description Возвращает все транзакции текущего пользователя, новые первыми.
// @Tags Transactions
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Transaction
// @Failure 401 {object} response.ErrorResponse "Нет или недействителен токен"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /transactions/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.transaction.list"

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

	list, err := h.service.List(r.Context(), user)
	if err != nil {
		log.Error("failed to list transactions", sl.Err(err))
		response.WriteError(w, r, http.StatusInternalServerError, "could not list transactions")
		return
	}

	log.Debug("transactions listed", slog.Int("count", len(list)))
	render.JSON(w, r, list)
}
