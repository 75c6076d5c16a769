// Package sheets mirrors transaction records to a Google Sheets ledger.
// The spreadsheet is a human-browsable copy only; it is never read back for
// aggregation, which always runs over the primary store.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"fintrack/internal/core"
)

// Ledger is the worker-facing mirror contract.
type Ledger interface {
	AppendTransaction(ctx context.Context, t core.Transaction) error
	RemoveTransaction(ctx context.Context, transactionID string) error
}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ Ledger = (*Client)(nil)

// NewFromEnv creates a mirror client using service account credentials.
// Required: SHEETS_SPREADSHEET_ID. Credentials come from
// SHEETS_SERVICE_ACCOUNT_JSON, SHEETS_SERVICE_ACCOUNT_FILE or
// GOOGLE_APPLICATION_CREDENTIALS. Optional: SHEETS_SHEET_NAME
// (default "Transactions").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("SHEETS_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing SHEETS_SPREADSHEET_ID")
	}

	sheetName := strings.TrimSpace(os.Getenv("SHEETS_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "Transactions"
	}

	svc, err := newService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func newService(ctx context.Context) (*gsheet.Service, error) {
	inline := strings.TrimSpace(os.Getenv("SHEETS_SERVICE_ACCOUNT_JSON"))
	file := strings.TrimSpace(os.Getenv("SHEETS_SERVICE_ACCOUNT_FILE"))
	if inline == "" && file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case inline != "":
		credentialsJSON = []byte(inline)
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = data
	default:
		return nil, errors.New("missing service account credentials (set SHEETS_SERVICE_ACCOUNT_JSON, SHEETS_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	return gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
}

// AppendTransaction appends one ledger row: id, date, type, category,
// description, decimal amount.
func (c *Client) AppendTransaction(ctx context.Context, t core.Transaction) error {
	row := []any{
		t.ID,
		t.Date.Format("2006-01-02"),
		string(t.Type),
		t.Category,
		t.Description,
		t.Amount.Decimal(),
	}
	vr := &gsheet.ValueRange{Values: [][]any{row}}

	_, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, c.sheetName+"!A:F", vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append ledger row: %w", err)
	}
	return nil
}

// RemoveTransaction clears the ledger row whose first column matches the
// transaction ID. A missing row is not an error: the mirror is best-effort
// and the row may never have been appended.
func (c *Client) RemoveTransaction(ctx context.Context, transactionID string) error {
	resp, err := c.svc.Spreadsheets.Values.
		Get(c.spreadsheetID, c.sheetName+"!A:A").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("read ledger ids: %w", err)
	}

	rowIndex := -1
	for i, row := range resp.Values {
		if len(row) > 0 && fmt.Sprint(row[0]) == transactionID {
			rowIndex = i
			break
		}
	}
	if rowIndex < 0 {
		return nil
	}

	rng := fmt.Sprintf("%s!A%d:F%d", c.sheetName, rowIndex+1, rowIndex+1)
	_, err = c.svc.Spreadsheets.Values.
		Clear(c.spreadsheetID, rng, &gsheet.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("clear ledger row: %w", err)
	}
	return nil
}
