// Package transaction реализует операции над транзакциями пользователя.
// Каждая операция ограничена владельцем: чужая транзакция для вызывающего
// не существует.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/budget-manager/internal/lib/metrics"
	"github.com/magabrotheeeer/budget-manager/internal/models"
	"github.com/magabrotheeeer/budget-manager/internal/storage"
)

// ErrNotFound возвращается, если транзакции нет или она принадлежит другому пользователю.
var ErrNotFound = errors.New("transaction not found")

// Repository определяет методы хранилища транзакций.
type Repository interface {
	// CreateTransaction сохраняет транзакцию и возвращает её с назначенным ID.
	CreateTransaction(ctx context.Context, t models.Transaction) (*models.Transaction, error)
	// ListTransactions возвращает транзакции владельца, новые первыми.
	ListTransactions(ctx context.Context, ownerID string) ([]models.Transaction, error)
	// UpdateTransaction заменяет запись с совпадающими ID и OwnerID.
	UpdateTransaction(ctx context.Context, t models.Transaction) (*models.Transaction, error)
	// DeleteTransaction удаляет запись с совпадающими id и ownerID.
	DeleteTransaction(ctx context.Context, id int64, ownerID string) error
}

// Ledger реализует создание, чтение, замену и удаление транзакций.
type Ledger struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

// NewLedger создает новый экземпляр Ledger.
func NewLedger(repo Repository, log *slog.Logger) *Ledger {
	return &Ledger{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// Create сохраняет новую транзакцию от имени user.
func (l *Ledger) Create(ctx context.Context, user *models.User, draft models.TransactionDraft) (*models.Transaction, error) {
	const op = "transaction.Create"

	t := draft.Apply(models.Transaction{
		OwnerID:   user.ID,
		CreatedAt: l.now().UTC(),
	})
	created, err := l.repo.CreateTransaction(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	metrics.IncMutation(metrics.OperationCreate)
	l.log.Debug("transaction created", slog.Int64("id", created.ID), slog.String("owner_id", user.ID))
	return created, nil
}

// List возвращает все транзакции user, новые первыми. Пустой результат не nil.
func (l *Ledger) List(ctx context.Context, user *models.User) ([]models.Transaction, error) {
	const op = "transaction.List"

	list, err := l.repo.ListTransactions(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if list == nil {
		list = []models.Transaction{}
	}
	return list, nil
}

// Update целиком заменяет title, amount, type и category транзакции id.
func (l *Ledger) Update(ctx context.Context, user *models.User, id int64, draft models.TransactionDraft) (*models.Transaction, error) {
	const op = "transaction.Update"

	t := draft.Apply(models.Transaction{ID: id, OwnerID: user.ID})
	updated, err := l.repo.UpdateTransaction(ctx, t)
	if err != nil {
		if errors.Is(err, storage.ErrTransactionNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	metrics.IncMutation(metrics.OperationUpdate)
	return updated, nil
}

// Delete удаляет транзакцию id, если она принадлежит user.
func (l *Ledger) Delete(ctx context.Context, user *models.User, id int64) error {
	const op = "transaction.Delete"

	if err := l.repo.DeleteTransaction(ctx, id, user.ID); err != nil {
		if errors.Is(err, storage.ErrTransactionNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	metrics.IncMutation(metrics.OperationDelete)
	return nil
}
