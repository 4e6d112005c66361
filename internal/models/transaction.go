package models

import "time"

// Значения Type, которые учитываются в статистике. Хранить можно любую строку.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction финансовая операция, принадлежащая ровно одному пользователю.
// ID, OwnerID и CreatedAt назначает сервер; клиент их не задаёт.
type Transaction struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Amount    float64   `json:"amount"`
	Type      string    `json:"type"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	OwnerID   string    `json:"owner_id"`
}

// TransactionDraft изменяемая клиентом часть транзакции.
// Используется и при создании, и при полной замене в Update.
type TransactionDraft struct {
	Title    string  `json:"title"`
	Amount   float64 `json:"amount"`
	Type     string  `json:"type"`
	Category string  `json:"category"`
}

// TransactionRequest тело запроса на создание или замену транзакции.
// Все поля обязательны, но пустые строки и нулевая сумма допустимы:
// required на указателе проверяет только наличие поля в JSON.
type TransactionRequest struct {
	Title    *string  `json:"title" validate:"required" example:"Groceries"`
	Amount   *float64 `json:"amount" validate:"required" example:"42.5"`
	Type     *string  `json:"type" validate:"required" example:"expense"`
	Category *string  `json:"category" validate:"required" example:"food"`
}

// Draft переводит проверенный запрос в черновик. Отсутствующие поля дают нулевые значения.
func (r TransactionRequest) Draft() TransactionDraft {
	var d TransactionDraft
	if r.Title != nil {
		d.Title = *r.Title
	}
	if r.Amount != nil {
		d.Amount = *r.Amount
	}
	if r.Type != nil {
		d.Type = *r.Type
	}
	if r.Category != nil {
		d.Category = *r.Category
	}
	return d
}

// Apply собирает новое значение транзакции из черновика, сохраняя
// неизменяемые поля (ID, владельца и время создания) исходной записи.
func (d TransactionDraft) Apply(base Transaction) Transaction {
	return Transaction{
		ID:        base.ID,
		Title:     d.Title,
		Amount:    d.Amount,
		Type:      d.Type,
		Category:  d.Category,
		CreatedAt: base.CreatedAt,
		OwnerID:   base.OwnerID,
	}
}
