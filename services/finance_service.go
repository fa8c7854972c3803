package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/Dosada05/atletica-scoreboard/models"
	"github.com/Dosada05/atletica-scoreboard/reports"
	"github.com/Dosada05/atletica-scoreboard/repositories"
)

// UncategorisedLabel groups expenses without a category in reports.
const UncategorisedLabel = "SEM CATEGORIA"

type FinanceService interface {
	ListCategories(ctx context.Context) ([]models.FinanceCategory, error)
	CreateCategory(ctx context.Context, name string) (*models.FinanceCategory, error)
	RenameCategory(ctx context.Context, id int, name string) (*models.FinanceCategory, error)
	DeleteCategory(ctx context.Context, id int) error

	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	CreateTransaction(ctx context.Context, input CreateTransactionInput) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, id int) error

	Report(ctx context.Context) (*models.FinanceReport, error)
	ExportXLSX(ctx context.Context) ([]byte, error)
}

type CreateTransactionInput struct {
	Type        models.TransactionType `json:"type"`
	AmountCents int64                  `json:"amount_cents"`
	Description string                 `json:"description"`
	CategoryID  *int                   `json:"category_id"`
	Account     models.PaymentAccount  `json:"account"`
	// Date defaults to today when zero.
	Date        time.Time              `json:"date"`
}

type financeService struct {
	financeRepo repositories.FinanceRepository
	logger      *slog.Logger
	now         func() time.Time
}

func NewFinanceService(financeRepo repositories.FinanceRepository, logger *slog.Logger) FinanceService {
	return &financeService{
		financeRepo: financeRepo,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *financeService) ListCategories(ctx context.Context) ([]models.FinanceCategory, error) {
	categories, err := s.financeRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list finance categories: %w", err)
	}
	if categories == nil {
		return []models.FinanceCategory{}, nil
	}
	return categories, nil
}

func (s *financeService) CreateCategory(ctx context.Context, name string) (*models.FinanceCategory, error) {
	name, err := normalizeCategoryName(name)
	if err != nil {
		return nil, err
	}
	category := &models.FinanceCategory{Name: name}
	if err := s.financeRepo.CreateCategory(ctx, category); err != nil {
		return nil, mapFinanceError(err)
	}
	return category, nil
}

func (s *financeService) RenameCategory(ctx context.Context, id int, name string) (*models.FinanceCategory, error) {
	name, err := normalizeCategoryName(name)
	if err != nil {
		return nil, err
	}
	if err := s.financeRepo.RenameCategory(ctx, id, name); err != nil {
		return nil, mapFinanceError(err)
	}
	return &models.FinanceCategory{ID: id, Name: name}, nil
}

func (s *financeService) DeleteCategory(ctx context.Context, id int) error {
	if err := s.financeRepo.DeleteCategory(ctx, id); err != nil {
		return mapFinanceError(err)
	}
	return nil
}

func (s *financeService) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	transactions, err := s.financeRepo.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if transactions == nil {
		return []models.Transaction{}, nil
	}
	return transactions, nil
}

func (s *financeService) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*models.Transaction, error) {
	description := strings.TrimSpace(input.Description)
	switch {
	case input.Type != models.TransactionIncome && input.Type != models.TransactionExpense:
		return nil, fmt.Errorf("%w: type must be income or expense", ErrValidationFailed)
	case input.AmountCents <= 0:
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidationFailed)
	case description == "":
		return nil, fmt.Errorf("%w: description is required", ErrValidationFailed)
	case input.Type == models.TransactionExpense && input.CategoryID == nil:
		return nil, fmt.Errorf("%w: expenses need a category", ErrValidationFailed)
	case !input.Account.Valid():
		return nil, fmt.Errorf("%w: unknown account %q", ErrValidationFailed, input.Account)
	}

	date := input.Date
	if date.IsZero() {
		date = s.now()
	}

	transaction := &models.Transaction{
		Type:        input.Type,
		AmountCents: input.AmountCents,
		Description: description,
		CategoryID:  input.CategoryID,
		Account:     input.Account,
		Date:        date,
	}
	if err := s.financeRepo.CreateTransaction(ctx, transaction); err != nil {
		return nil, mapFinanceError(err)
	}
	s.logger.InfoContext(ctx, "transaction recorded",
		slog.Int("transaction_id", transaction.ID),
		slog.String("type", string(transaction.Type)),
		slog.Int64("amount_cents", transaction.AmountCents))
	return transaction, nil
}

func (s *financeService) DeleteTransaction(ctx context.Context, id int) error {
	if err := s.financeRepo.DeleteTransaction(ctx, id); err != nil {
		return mapFinanceError(err)
	}
	return nil
}

func (s *financeService) Report(ctx context.Context) (*models.FinanceReport, error) {
	transactions, categories, err := s.ledger(ctx)
	if err != nil {
		return nil, err
	}
	report := BuildFinanceReport(transactions, categories)
	return &report, nil
}

func (s *financeService) ExportXLSX(ctx context.Context) ([]byte, error) {
	transactions, categories, err := s.ledger(ctx)
	if err != nil {
		return nil, err
	}
	return reports.FinanceXLSX(transactions, categories, BuildFinanceReport(transactions, categories))
}

func (s *financeService) ledger(ctx context.Context) ([]models.Transaction, []models.FinanceCategory, error) {
	transactions, err := s.financeRepo.ListTransactions(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	categories, err := s.financeRepo.ListCategories(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list finance categories: %w", err)
	}
	return transactions, categories, nil
}

// BuildFinanceReport sums the ledger: overall balance, balance per account
// and expenses per category, largest first.
func BuildFinanceReport(transactions []models.Transaction, categories []models.FinanceCategory) models.FinanceReport {
	names := make(map[int]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	report := models.FinanceReport{
		BalanceByAccountCents: make(map[models.PaymentAccount]int64, len(models.PaymentAccounts)),
		ExpensesByCategory:    []models.CategoryTotal{},
	}
	for _, account := range models.PaymentAccounts {
		report.BalanceByAccountCents[account] = 0
	}

	expenses := make(map[string]int64)
	for _, t := range transactions {
		report.BalanceCents += t.Signed()
		report.BalanceByAccountCents[t.Account] += t.Signed()
		if t.Type != models.TransactionExpense {
			continue
		}
		label := UncategorisedLabel
		if t.CategoryID != nil {
			if name, ok := names[*t.CategoryID]; ok {
				label = name
			}
		}
		expenses[label] += t.AmountCents
	}

	for category, amount := range expenses {
		report.ExpensesByCategory = append(report.ExpensesByCategory, models.CategoryTotal{Category: category, AmountCents: amount})
	}
	sort.Slice(report.ExpensesByCategory, func(i, j int) bool {
		a, b := report.ExpensesByCategory[i], report.ExpensesByCategory[j]
		if a.AmountCents != b.AmountCents {
			return a.AmountCents > b.AmountCents
		}
		return a.Category < b.Category
	})
	return report
}

func normalizeCategoryName(name string) (string, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return "", fmt.Errorf("%w: category name is required", ErrValidationFailed)
	}
	return name, nil
}

func mapFinanceError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrCategoryNotFound):
		return ErrCategoryNotFound
	case errors.Is(err, repositories.ErrCategoryNameConflict):
		return ErrCategoryNameConflict
	case errors.Is(err, repositories.ErrCategoryInUse):
		return ErrCategoryInUse
	case errors.Is(err, repositories.ErrTransactionNotFound):
		return ErrTransactionNotFound
	default:
		return fmt.Errorf("finance: %w", err)
	}
}
