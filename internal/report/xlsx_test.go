package report

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestRenderXLSX(t *testing.T) {
	txs := sample()
	out, err := RenderXLSX(txs, summarize(t, txs))
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("re-open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(xlsxSheet)
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	// Header + transactions + blank + 3 summary lines
	if len(rows) < len(txs)+1 {
		t.Fatalf("expected at least %d rows, got %d", len(txs)+1, len(rows))
	}
	if rows[0][0] != "Date" || rows[0][4] != "Amount" {
		t.Fatalf("header row wrong: %v", rows[0])
	}
	if rows[1][2] != "Food & Dining" {
		t.Fatalf("first data row wrong: %v", rows[1])
	}
}

func TestRenderXLSXEmptySet(t *testing.T) {
	out, err := RenderXLSX(nil, summarize(t, nil))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("empty workbook bytes")
	}
}
