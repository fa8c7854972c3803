// Package reports renders standings and finance data into downloadable
// documents: XLSX workbooks, PNG charts and QR codes.
package reports

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Dosada05/atletica-scoreboard/models"
)

const (
	standingsSheet = "Classificação"
	ledgerSheet    = "Lançamentos"
	summarySheet   = "Resumo"
)

// StandingsXLSX renders the standings of a competition as a one-sheet workbook.
func StandingsXLSX(competition models.Competition, entries []models.LeaderboardEntry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), standingsSheet); err != nil {
		return nil, err
	}

	title := fmt.Sprintf("%s %d", competition.Name, competition.Year)
	if err := f.SetCellValue(standingsSheet, "A1", title); err != nil {
		return nil, err
	}
	if err := writeHeader(f, standingsSheet, 2, "Posição", "Atlética", "Pontos", "Penalidades", "Total"); err != nil {
		return nil, err
	}

	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+3)
		if err != nil {
			return nil, err
		}
		row := []interface{}{e.Position, e.Name, e.RawPoints, e.Penalties, e.TotalPoints}
		if err := f.SetSheetRow(standingsSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(standingsSheet, "B", "B", 32); err != nil {
		return nil, err
	}

	return writeWorkbook(f)
}

// FinanceXLSX renders the ledger and its summary report.
func FinanceXLSX(transactions []models.Transaction, categories []models.FinanceCategory, report models.FinanceReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ledgerSheet); err != nil {
		return nil, err
	}
	if err := writeHeader(f, ledgerSheet, 1, "Data", "Tipo", "Descrição", "Categoria", "Conta", "Valor (R$)"); err != nil {
		return nil, err
	}

	categoryNames := make(map[int]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	for i, t := range transactions {
		category := ""
		if t.CategoryID != nil {
			category = categoryNames[*t.CategoryID]
		}
		kind := "Entrada"
		if t.Type == models.TransactionExpense {
			kind = "Saída"
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{t.Date.Format("2006-01-02"), kind, t.Description, category, string(t.Account), centsToReais(t.Signed())}
		if err := f.SetSheetRow(ledgerSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(ledgerSheet, "C", "C", 40); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, err
	}
	rows := [][]interface{}{{"Saldo total", centsToReais(report.BalanceCents)}}
	for _, account := range models.PaymentAccounts {
		rows = append(rows, []interface{}{"Saldo " + string(account), centsToReais(report.BalanceByAccountCents[account])})
	}
	rows = append(rows, []interface{}{})
	rows = append(rows, []interface{}{"Despesas por categoria"})
	for _, total := range report.ExpensesByCategory {
		rows = append(rows, []interface{}{total.Category, centsToReais(total.AmountCents)})
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(summarySheet, cell, &rows[i]); err != nil {
			return nil, err
		}
	}

	return writeWorkbook(f)
}

func writeHeader(f *excelize.File, sheet string, row int, titles ...string) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(len(titles), row)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(titles))
	for i, t := range titles {
		values[i] = t
	}
	if err := f.SetSheetRow(sheet, start, &values); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, start, end, style)
}

func writeWorkbook(f *excelize.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func centsToReais(cents int64) float64 {
	return float64(cents) / 100
}
