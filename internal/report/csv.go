package report

import (
	"bytes"
	"encoding/csv"

	"fintrack/internal/core"
)

// RenderCSV writes one row per transaction plus a header row, preserving
// input order. Amounts use a plain dot decimal regardless of the user's
// display currency so the file round-trips machine-readably; no symbol is
// embedded. Dates are ISO 8601.
func RenderCSV(txs []core.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return nil, renderErr("csv header", err)
	}
	for _, t := range txs {
		row := []string{
			t.Date.Format(dateLayout),
			string(t.Type),
			t.Category,
			t.Description,
			t.Amount.Decimal(),
		}
		if err := w.Write(row); err != nil {
			return nil, renderErr("csv row", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, renderErr("csv flush", err)
	}
	return buf.Bytes(), nil
}
