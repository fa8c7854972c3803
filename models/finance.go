package models

import "time"

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

type PaymentAccount string

const (
	AccountMercadoPago PaymentAccount = "Mercado Pago"
	AccountPagBank     PaymentAccount = "PagBank"
)

var PaymentAccounts = []PaymentAccount{AccountMercadoPago, AccountPagBank}

func (a PaymentAccount) Valid() bool {
	for _, known := range PaymentAccounts {
		if a == known {
			return true
		}
	}
	return false
}

type FinanceCategory struct {
	ID        int    `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	IsDefault bool   `json:"is_default" db:"is_default"`
}

// Transaction is a ledger entry. Amounts are stored in centavos.
type Transaction struct {
	ID          int             `json:"id" db:"id"`
	Type        TransactionType `json:"type" db:"type"`
	AmountCents int64           `json:"amount_cents" db:"amount_cents"`
	Description string          `json:"description" db:"description"`
	CategoryID  *int            `json:"category_id,omitempty" db:"category_id"`
	Account     PaymentAccount  `json:"account" db:"account"`
	Date        time.Time       `json:"date" db:"occurred_on"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// Signed returns the amount with expenses negated.
func (t Transaction) Signed() int64 {
	if t.Type == TransactionExpense {
		return -t.AmountCents
	}
	return t.AmountCents
}

type CategoryTotal struct {
	Category    string `json:"category"`
	AmountCents int64  `json:"amount_cents"`
}

type FinanceReport struct {
	BalanceCents          int64                    `json:"balance_cents"`
	BalanceByAccountCents map[PaymentAccount]int64 `json:"balance_by_account_cents"`
	ExpensesByCategory    []CategoryTotal          `json:"expenses_by_category"`
}
