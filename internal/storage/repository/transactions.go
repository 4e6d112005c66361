package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/budget-manager/internal/models"
	"github.com/magabrotheeeer/budget-manager/internal/storage"
)

const transactionColumns = `id, title, amount, type, category, created_at, owner_id`

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(&t.ID, &t.Title, &t.Amount, &t.Type, &t.Category, &t.CreatedAt, &t.OwnerID)
	return t, err
}

// CreateTransaction вставляет транзакцию и возвращает её с назначенным id.
func (s *Storage) CreateTransaction(ctx context.Context, t models.Transaction) (*models.Transaction, error) {
	const op = "storage.CreateTransaction"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO transactions (title, amount, type, category, created_at, owner_id)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query,
		t.Title, t.Amount, t.Type, t.Category, t.CreatedAt, t.OwnerID).Scan(&t.ID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &t, nil
}

// ListTransactions возвращает транзакции владельца, новые первыми.
func (s *Storage) ListTransactions(ctx context.Context, ownerID string) ([]models.Transaction, error) {
	const op = "storage.ListTransactions"
	query := `SELECT ` + transactionColumns + `
			  FROM transactions
			  WHERE owner_id = $1
			  ORDER BY created_at DESC, id DESC`
	result, err := s.queryTransactions(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// TransactionsByOwner возвращает все транзакции владельца без сортировки.
func (s *Storage) TransactionsByOwner(ctx context.Context, ownerID string) ([]models.Transaction, error) {
	const op = "storage.TransactionsByOwner"
	query := `SELECT ` + transactionColumns + `
			  FROM transactions
			  WHERE owner_id = $1`
	result, err := s.queryTransactions(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func (s *Storage) queryTransactions(ctx context.Context, query string, args ...any) ([]models.Transaction, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateTransaction целиком заменяет title, amount, type и category записи
// с совпадающими id и owner_id. Если такой записи нет, возвращает storage.ErrTransactionNotFound.
func (s *Storage) UpdateTransaction(ctx context.Context, t models.Transaction) (*models.Transaction, error) {
	const op = "storage.UpdateTransaction"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE transactions
			  SET title = $1, amount = $2, type = $3, category = $4
			  WHERE id = $5 AND owner_id = $6
			  RETURNING ` + transactionColumns
	updated, err := scanTransaction(s.DB.QueryRowContext(ctx, query,
		t.Title, t.Amount, t.Type, t.Category, t.ID, t.OwnerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrTransactionNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &updated, nil
}

// DeleteTransaction удаляет запись с совпадающими id и owner_id.
func (s *Storage) DeleteTransaction(ctx context.Context, id int64, ownerID string) error {
	const op = "storage.DeleteTransaction"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM transactions WHERE id = $1 AND owner_id = $2`
	result, err := s.DB.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrTransactionNotFound)
	}
	return nil
}
