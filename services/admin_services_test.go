package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/atletica-scoreboard/models"
)

func TestFinanceService_Categories(t *testing.T) {
	repo := &fakeFinanceRepo{}
	svc := NewFinanceService(repo, discardLogger())
	ctx := context.Background()

	created, err := svc.CreateCategory(ctx, "  uniformes ")
	require.NoError(t, err)
	assert.Equal(t, "UNIFORMES", created.Name)

	_, err = svc.CreateCategory(ctx, "Uniformes")
	assert.ErrorIs(t, err, ErrCategoryNameConflict)

	_, err = svc.CreateCategory(ctx, "")
	assert.ErrorIs(t, err, ErrValidationFailed)

	renamed, err := svc.RenameCategory(ctx, created.ID, "camisetas")
	require.NoError(t, err)
	assert.Equal(t, "CAMISETAS", renamed.Name)

	_, err = svc.CreateTransaction(ctx, CreateTransactionInput{
		Type: models.TransactionExpense, AmountCents: 1500, Description: "Tinta",
		CategoryID: &created.ID, Account: models.AccountPagBank,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteCategory(ctx, created.ID), ErrCategoryInUse)
	assert.ErrorIs(t, svc.DeleteCategory(ctx, 404), ErrCategoryNotFound)
}

func TestFinanceService_TransactionValidation(t *testing.T) {
	category := 1
	valid := CreateTransactionInput{
		Type: models.TransactionExpense, AmountCents: 100, Description: "Bolas",
		CategoryID: &category, Account: models.AccountMercadoPago,
	}
	tests := []struct {
		name   string
		mutate func(*CreateTransactionInput)
	}{
		{"unknown type", func(in *CreateTransactionInput) { in.Type = "transfer" }},
		{"zero amount", func(in *CreateTransactionInput) { in.AmountCents = 0 }},
		{"blank description", func(in *CreateTransactionInput) { in.Description = " " }},
		{"expense without category", func(in *CreateTransactionInput) { in.CategoryID = nil }},
		{"unknown account", func(in *CreateTransactionInput) { in.Account = "Banco X" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewFinanceService(&fakeFinanceRepo{categories: []models.FinanceCategory{{ID: 1, Name: "MATERIAL"}}}, discardLogger())
			input := valid
			tt.mutate(&input)
			_, err := svc.CreateTransaction(context.Background(), input)
			assert.ErrorIs(t, err, ErrValidationFailed)
		})
	}
}

func TestFinanceService_IncomeWithoutCategoryDefaultsDate(t *testing.T) {
	svc := NewFinanceService(&fakeFinanceRepo{}, discardLogger()).(*financeService)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	tx, err := svc.CreateTransaction(context.Background(), CreateTransactionInput{
		Type: models.TransactionIncome, AmountCents: 5000, Description: "Patrocínio", Account: models.AccountPagBank,
	})
	require.NoError(t, err)
	assert.Equal(t, fixed, tx.Date)
	assert.Nil(t, tx.CategoryID)
}

func TestBuildFinanceReport(t *testing.T) {
	material, festa, removed := 1, 2, 99
	categories := []models.FinanceCategory{{ID: material, Name: "MATERIAL"}, {ID: festa, Name: "FESTA"}}
	transactions := []models.Transaction{
		{Type: models.TransactionIncome, AmountCents: 10000, Account: models.AccountMercadoPago},
		{Type: models.TransactionIncome, AmountCents: 2000, Account: models.AccountPagBank},
		{Type: models.TransactionExpense, AmountCents: 3000, CategoryID: &material, Account: models.AccountMercadoPago},
		{Type: models.TransactionExpense, AmountCents: 500, CategoryID: &festa, Account: models.AccountPagBank},
		{Type: models.TransactionExpense, AmountCents: 4500, CategoryID: &festa, Account: models.AccountPagBank},
		{Type: models.TransactionExpense, AmountCents: 700, CategoryID: &removed, Account: models.AccountPagBank},
	}

	report := BuildFinanceReport(transactions, categories)

	assert.Equal(t, int64(3300), report.BalanceCents)
	assert.Equal(t, int64(7000), report.BalanceByAccountCents[models.AccountMercadoPago])
	assert.Equal(t, int64(-3700), report.BalanceByAccountCents[models.AccountPagBank])
	assert.Equal(t, []models.CategoryTotal{
		{Category: "FESTA", AmountCents: 5000},
		{Category: "MATERIAL", AmountCents: 3000},
		{Category: UncategorisedLabel, AmountCents: 700},
	}, report.ExpensesByCategory)
}

func TestBuildFinanceReport_Empty(t *testing.T) {
	report := BuildFinanceReport(nil, nil)
	assert.Zero(t, report.BalanceCents)
	assert.Len(t, report.BalanceByAccountCents, len(models.PaymentAccounts))
	assert.NotNil(t, report.ExpensesByCategory)
}

func TestFinanceService_ExportXLSX(t *testing.T) {
	category := 1
	repo := &fakeFinanceRepo{categories: []models.FinanceCategory{{ID: category, Name: "MATERIAL"}}}
	svc := NewFinanceService(repo, discardLogger())
	_, err := svc.CreateTransaction(context.Background(), CreateTransactionInput{
		Type: models.TransactionExpense, AmountCents: 990, Description: "Apito",
		CategoryID: &category, Account: models.AccountMercadoPago,
	})
	require.NoError(t, err)

	data, err := svc.ExportXLSX(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("PK"), data[:2])
}

func TestInventoryService(t *testing.T) {
	svc := NewInventoryService(newFakeProductRepo(), discardLogger())
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, ProductInput{Name: "Camisa", Size: "XS"})
	assert.ErrorIs(t, err, ErrValidationFailed)
	_, err = svc.CreateProduct(ctx, ProductInput{Name: "Camisa", Size: "M", Quantity: -1})
	assert.ErrorIs(t, err, ErrValidationFailed)
	_, err = svc.CreateProduct(ctx, ProductInput{Name: "Camisa", Size: "M", PriceMemberCents: -5})
	assert.ErrorIs(t, err, ErrValidationFailed)

	product, err := svc.CreateProduct(ctx, ProductInput{
		Name: "Camisa Oficial", Size: "M", Quantity: 3, PriceMemberCents: 5000, PriceNonMemberCents: 6500,
	})
	require.NoError(t, err)

	adjusted, err := svc.AdjustStock(ctx, product.ID, -2)
	require.NoError(t, err)
	assert.Equal(t, 1, adjusted.Quantity)

	_, err = svc.AdjustStock(ctx, product.ID, -2)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	_, err = svc.AdjustStock(ctx, product.ID, 0)
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.AdjustStock(ctx, 77, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)

	updated, err := svc.UpdateProduct(ctx, product.ID, ProductInput{Name: "Camisa Oficial", Size: "G", Quantity: 10})
	require.NoError(t, err)
	assert.Equal(t, "G", updated.Size)

	require.NoError(t, svc.DeleteProduct(ctx, product.ID))
	_, err = svc.GetProductByID(ctx, product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestSettingsService(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(repo)
	ctx := context.Background()

	current, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultAppSettings.PrimaryColor, current.PrimaryColor)

	logo := "https://img.example.test/logo.png"
	updated, err := svc.UpdateSettings(ctx, models.AppSettings{PrimaryColor: "#AABBCC", SecondaryColor: "#001122", LogoURL: &logo})
	require.NoError(t, err)
	assert.Equal(t, "#aabbcc", updated.PrimaryColor)

	stored, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, updated, stored)

	for _, bad := range []string{"red", "#abc", "#gggggg", "aabbcc"} {
		_, err := svc.UpdateSettings(ctx, models.AppSettings{PrimaryColor: bad, SecondaryColor: "#000000"})
		assert.ErrorIs(t, err, ErrValidationFailed, bad)
	}
}
