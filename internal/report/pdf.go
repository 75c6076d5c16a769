package report

import (
	"bytes"
	"sort"

	"github.com/jung-kurt/gofpdf"

	"fintrack/internal/core"
)

// Column widths for the transaction table, in mm (A4 printable ~190mm).
var pdfColWidths = []float64{26, 24, 42, 68, 30}

// RenderPDF produces a printable report: summary totals formatted in the
// user's display currency, the category breakdown, and one table row per
// transaction. Every transaction in the input appears exactly once and the
// totals line matches the aggregate passed in.
func RenderPDF(txs []core.Transaction, summary core.Summary, currency string) ([]byte, error) {
	income, err := core.FormatAmount(summary.TotalIncome.Cents, currency)
	if err != nil {
		return nil, renderErr("format income", err)
	}
	expense, err := core.FormatAmount(summary.TotalExpense.Cents, currency)
	if err != nil {
		return nil, renderErr("format expense", err)
	}
	balance, err := core.FormatAmount(summary.Balance.Cents, currency)
	if err != nil {
		return nil, renderErr("format balance", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, tr("Transaction Report"), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	// Summary block
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, tr("Total Income: "+income), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr("Total Expenses: "+expense), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, tr("Balance: "+balance), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Category breakdown, largest expense first
	if len(summary.ExpenseByCategory) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Spending by Category", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, ca := range sortedBreakdown(summary.ExpenseByCategory) {
			amount, err := core.FormatAmount(ca.cents, currency)
			if err != nil {
				return nil, renderErr("format category", err)
			}
			pdf.CellFormat(95, 6, tr(ca.name), "", 0, "L", false, 0, "")
			pdf.CellFormat(40, 6, tr(amount), "", 1, "R", false, 0, "")
		}
		pdf.Ln(4)
	}

	// Transaction table
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(60, 60, 60)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range columns {
		pdf.CellFormat(pdfColWidths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	fill := false
	pdf.SetFillColor(240, 240, 240)
	for _, t := range txs {
		amount, err := core.FormatAmount(t.Amount.Cents, currency)
		if err != nil {
			return nil, renderErr("format amount", err)
		}
		pdf.CellFormat(pdfColWidths[0], 7, t.Date.Format(dateLayout), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(pdfColWidths[1], 7, titleCase(t.Type), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(pdfColWidths[2], 7, tr(clip(t.Category, 28)), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(pdfColWidths[3], 7, tr(clip(t.Description, 46)), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(pdfColWidths[4], 7, tr(amount), "1", 1, "R", fill, 0, "")
		fill = !fill
	}

	if err := pdf.Error(); err != nil {
		return nil, renderErr("build pdf", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, renderErr("write pdf", err)
	}
	return buf.Bytes(), nil
}

type breakdownEntry struct {
	name  string
	cents int64
}

func sortedBreakdown(m map[string]core.Money) []breakdownEntry {
	out := make([]breakdownEntry, 0, len(m))
	for name, amount := range m {
		out = append(out, breakdownEntry{name: name, cents: amount.Cents})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].cents != out[j].cents {
			return out[i].cents > out[j].cents
		}
		return out[i].name < out[j].name
	})
	return out
}

func clip(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
