package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"fintrack/internal/core"
)

const xlsxSheet = "Transactions"

// RenderXLSX produces a styled workbook: a header row, one tinted row per
// transaction (green income, red expense), and a summary block whose values
// match the aggregate. Amounts are written as numbers so spreadsheet
// formulas keep working on the export.
func RenderXLSX(txs []core.Transaction, summary core.Summary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", xlsxSheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#3C3C3C"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, renderErr("xlsx header style", err)
	}
	incomeStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 10, Color: "#00B894"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D4EFDF"}, Pattern: 1},
	})
	if err != nil {
		return nil, renderErr("xlsx income style", err)
	}
	expenseStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 10, Color: "#D63031"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FADBD8"}, Pattern: 1},
	})
	if err != nil {
		return nil, renderErr("xlsx expense style", err)
	}
	numberStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10},
		NumFmt:    4, // #,##0.00
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, renderErr("xlsx number style", err)
	}

	for i, h := range columns {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(xlsxSheet, cell, h); err != nil {
			return nil, renderErr("xlsx header", err)
		}
	}
	if err := f.SetCellStyle(xlsxSheet, "A1", "E1", headerStyle); err != nil {
		return nil, renderErr("xlsx header", err)
	}

	row := 2
	for _, t := range txs {
		rowStyle := expenseStyle
		if t.Type == core.Income {
			rowStyle = incomeStyle
		}
		f.SetCellValue(xlsxSheet, fmt.Sprintf("A%d", row), t.Date.Format(dateLayout))
		f.SetCellValue(xlsxSheet, fmt.Sprintf("B%d", row), titleCase(t.Type))
		f.SetCellValue(xlsxSheet, fmt.Sprintf("C%d", row), t.Category)
		f.SetCellValue(xlsxSheet, fmt.Sprintf("D%d", row), t.Description)
		f.SetCellValue(xlsxSheet, fmt.Sprintf("E%d", row), t.Amount.Float())
		f.SetCellStyle(xlsxSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("D%d", row), rowStyle)
		f.SetCellStyle(xlsxSheet, fmt.Sprintf("E%d", row), fmt.Sprintf("E%d", row), numberStyle)
		row++
	}

	// Summary block under the table
	labelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, renderErr("xlsx label style", err)
	}
	summaryRow := row + 1
	entries := []struct {
		label string
		cents int64
	}{
		{"Total Income:", summary.TotalIncome.Cents},
		{"Total Expenses:", summary.TotalExpense.Cents},
		{"Balance:", summary.Balance.Cents},
	}
	for i, e := range entries {
		f.SetCellValue(xlsxSheet, fmt.Sprintf("D%d", summaryRow+i), e.label)
		f.SetCellValue(xlsxSheet, fmt.Sprintf("E%d", summaryRow+i), core.Money{Cents: e.cents}.Float())
		f.SetCellStyle(xlsxSheet, fmt.Sprintf("D%d", summaryRow+i), fmt.Sprintf("D%d", summaryRow+i), labelStyle)
		f.SetCellStyle(xlsxSheet, fmt.Sprintf("E%d", summaryRow+i), fmt.Sprintf("E%d", summaryRow+i), numberStyle)
	}

	f.SetColWidth(xlsxSheet, "A", "A", 13)
	f.SetColWidth(xlsxSheet, "B", "B", 11)
	f.SetColWidth(xlsxSheet, "C", "C", 20)
	f.SetColWidth(xlsxSheet, "D", "D", 32)
	f.SetColWidth(xlsxSheet, "E", "E", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, renderErr("write xlsx", err)
	}
	return buf.Bytes(), nil
}
