package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TxType = "income"
	Expense TxType = "expense"
)

type (
	// TxType is the direction of a transaction: income or expense.
	TxType string

	Money struct {
		Cents int64
	}

	// Transaction is a single income or expense record owned by one user.
	// Once handed to the aggregation core it is treated as immutable.
	Transaction struct {
		ID          string
		Owner       string
		Type        TxType
		Amount      Money
		Category    string
		Description string
		Date        time.Time // normalized to UTC at ingestion
	}

	// UserSettings holds per-user presentation preferences.
	UserSettings struct {
		Owner    string
		Currency string
	}
)

var (
	ErrInvalidType         = errors.New("invalid transaction type")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidCategory     = errors.New("invalid category")
	ErrInvalidDate         = errors.New("invalid date")
	ErrEmptyDescription    = errors.New("empty description")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
)

func (t TxType) Valid() bool {
	return t == Income || t == Expense
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrInvalidCategory
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}
