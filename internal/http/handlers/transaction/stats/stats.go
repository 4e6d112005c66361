// Package stats реализует HTTP-обработчик статистики по транзакциям.
package stats

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

// Service описывает подсчет статистики пользователя.
type Service interface {
	Summarize(ctx context.Context, user *models.User) (*models.Stats, error)
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
// @Summary Статистика
// @Description Итоги доходов и расходов, баланс и разбивка по категориям.
// @Tags Transactions
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Stats
// @Failure 401 {object} response.ErrorResponse "Нет или недействителен токен"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /transactions/stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.transaction.stats"

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

	s, err := h.service.Summarize(r.Context(), user)
	if err != nil {
		log.Error("failed to summarize transactions", sl.Err(err))
		response.WriteError(w, r, http.StatusInternalServerError, "could not calculate stats")
		return
	}

	render.JSON(w, r, s)
}
