package reports

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Dosada05/atletica-scoreboard/models"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func sampleEntries() []models.LeaderboardEntry {
	return []models.LeaderboardEntry{
		{AthleticID: 1, Name: "Lobos", RawPoints: 21, Penalties: 0, TotalPoints: 21, Position: 1},
		{AthleticID: 2, Name: "Tigres", RawPoints: 12, Penalties: 4, TotalPoints: 8, Position: 2},
	}
}

func TestStandingsXLSX(t *testing.T) {
	data, err := StandingsXLSX(models.Competition{Name: "JUCA", Year: 2025}, sampleEntries())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(standingsSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "JUCA 2025", title)

	rows, err := f.GetRows(standingsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Posição", "Atlética", "Pontos", "Penalidades", "Total"}, rows[1])
	assert.Equal(t, []string{"2", "Tigres", "12", "4", "8"}, rows[3])
}

func TestFinanceXLSX(t *testing.T) {
	category := 3
	day := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		{ID: 1, Type: models.TransactionIncome, AmountCents: 15000, Description: "Rifa", Account: models.AccountPagBank, Date: day},
		{ID: 2, Type: models.TransactionExpense, AmountCents: 2550, Description: "Gelo", CategoryID: &category, Account: models.AccountMercadoPago, Date: day},
	}
	categories := []models.FinanceCategory{{ID: 3, Name: "EVENTOS"}}
	report := models.FinanceReport{
		BalanceCents:          12450,
		BalanceByAccountCents: map[models.PaymentAccount]int64{models.AccountPagBank: 15000, models.AccountMercadoPago: -2550},
		ExpensesByCategory:    []models.CategoryTotal{{Category: "EVENTOS", AmountCents: 2550}},
	}

	data, err := FinanceXLSX(txs, categories, report)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	ledger, err := f.GetRows(ledgerSheet)
	require.NoError(t, err)
	require.Len(t, ledger, 3)
	assert.Equal(t, []string{"2025-04-02", "Saída", "Gelo", "EVENTOS", "Mercado Pago", "-25.5"}, ledger[2])

	balance, err := f.GetCellValue(summarySheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "124.5", balance)
}

func TestStandingsChart(t *testing.T) {
	palette := PaletteFromSettings(models.DefaultAppSettings)

	png, err := StandingsChart("JUCA 2025", sampleEntries(), palette)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))

	// Every total equal to zero, as at the start of a competition.
	zeroes := []models.LeaderboardEntry{{Name: "A", Position: 1}, {Name: "B", Position: 2}}
	png, err = StandingsChart("", zeroes, palette)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))

	png, err = StandingsChart("", nil, palette)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}

func TestPaletteFromSettings_InvalidColorsFallBack(t *testing.T) {
	p := PaletteFromSettings(models.AppSettings{PrimaryColor: "orange", SecondaryColor: "#123"})
	assert.Equal(t, PaletteFromSettings(models.DefaultAppSettings), p)
}

func TestQRCode(t *testing.T) {
	png, err := QRCode("https://placar.example/", 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))

	_, err = QRCode("", 256)
	assert.Error(t, err)
}
