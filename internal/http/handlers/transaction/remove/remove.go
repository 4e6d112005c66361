package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/budget-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/budget-manager/internal/http/response"
	"github.com/magabrotheeeer/budget-manager/internal/lib/sl"
	"github.com/magabrotheeeer/budget-manager/internal/models"
	"github.com/magabrotheeeer/budget-manager/internal/services/transaction"
)

const deletedMessage = "Transaction deleted successfully"

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	Delete(ctx context.Context, user *models.User, id int64) error
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удаление транзакции
// @Tags Transactions
// @Security BearerAuth
// @Produce json
// @Param id path int true "ID транзакции"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.ErrorResponse "Некорректный id"
// @Failure 401 {object} response.ErrorResponse "Нет или недействителен токен"
// @Failure 404 {object} response.ErrorResponse "Транзакция не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /transactions/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.transaction.remove"

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

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Info("failed to decode id from url", sl.Err(err))
		response.WriteError(w, r, http.StatusBadRequest, "failed to decode id from url")
		return
	}

	if err = h.service.Delete(r.Context(), user, id); err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			log.Info("transaction not found", slog.Int64("id", id))
			response.WriteError(w, r, http.StatusNotFound, transaction.ErrNotFound.Error())
			return
		}
		log.Error("failed to delete transaction", sl.Err(err))
		response.WriteError(w, r, http.StatusInternalServerError, "could not delete transaction")
		return
	}

	log.Info("transaction deleted", slog.Int64("id", id))
	render.JSON(w, r, response.Message{Message: deletedMessage})
}
