// Package stats считает итоги по доходам и расходам пользователя.
package stats

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/budget-manager/internal/models"
)

// Repository отдает все транзакции владельца в любом порядке.
type Repository interface {
	TransactionsByOwner(ctx context.Context, ownerID string) ([]models.Transaction, error)
}

// Aggregator пересчитывает статистику при каждом вызове, без кеша.
type Aggregator struct {
	repo Repository
}

// NewAggregator создает новый экземпляр Aggregator.
func NewAggregator(repo Repository) *Aggregator {
	return &Aggregator{repo: repo}
}

// Summarize возвращает статистику по всем транзакциям user.
func (a *Aggregator) Summarize(ctx context.Context, user *models.User) (*models.Stats, error) {
	const op = "stats.Summarize"

	list, err := a.repo.TransactionsByOwner(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s := Aggregate(list)
	return &s, nil
}

// Aggregate суммирует доходы и расходы, общие и по категориям.
// Транзакции с другим type не попадают в суммы, но их категория
// всё равно появляется в ByCategory с нулями.
func Aggregate(list []models.Transaction) models.Stats {
	s := models.Stats{ByCategory: make(map[string]models.CategoryTotals)}

	for _, t := range list {
		c := s.ByCategory[t.Category]
		switch t.Type {
		case models.TypeIncome:
			s.TotalIncome += t.Amount
			c.Income += t.Amount
		case models.TypeExpense:
			s.TotalExpense += t.Amount
			c.Expense += t.Amount
		}
		s.ByCategory[t.Category] = c
	}
	s.Balance = s.TotalIncome - s.TotalExpense
	return s
}
