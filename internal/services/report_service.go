package services

import (
	"context"
	"fmt"

	"fintrack/internal/core"
	"fintrack/internal/report"
	"fintrack/internal/storage"
)

// ReportService derives dashboards and export documents from stored
// transactions. Every call recomputes from the full owner set: fetch,
// filter, aggregate, render. Nothing here is cached or persisted.
type ReportService struct {
	storage         *storage.Repository
	defaultCurrency string
}

func NewReportService(storage *storage.Repository, defaultCurrency string) *ReportService {
	return &ReportService{
		storage:         storage,
		defaultCurrency: defaultCurrency,
	}
}

// Dashboard computes the owner's summary over the given range. Malformed
// records are skipped and counted, never fatal: a dashboard that renders
// with a gap beats one that 500s.
func (s *ReportService) Dashboard(ctx context.Context, owner string, r core.Range) (core.Summary, error) {
	txs, err := s.filtered(ctx, owner, r)
	if err != nil {
		return core.Summary{}, err
	}
	return core.Aggregate(txs, core.Lenient)
}

// MonthlyTrend returns the sparse per-month income/expense series for the
// given range, chronologically ascending.
func (s *ReportService) MonthlyTrend(ctx context.Context, owner string, r core.Range) ([]core.MonthPoint, error) {
	summary, err := s.Dashboard(ctx, owner, r)
	if err != nil {
		return nil, err
	}
	if summary.MonthlyTrend == nil {
		return []core.MonthPoint{}, nil
	}
	return summary.MonthlyTrend, nil
}

// ExportCSV renders the owner's filtered transactions as a CSV document.
// Exports are strict: a malformed record fails the whole call rather than
// producing a silently incomplete file.
func (s *ReportService) ExportCSV(ctx context.Context, owner string, r core.Range) ([]byte, error) {
	txs, _, err := s.exportSet(ctx, owner, r)
	if err != nil {
		return nil, err
	}
	return report.RenderCSV(txs)
}

// ExportPDF renders a summary-plus-table PDF, formatting amounts in the
// owner's preferred currency.
func (s *ReportService) ExportPDF(ctx context.Context, owner string, r core.Range) ([]byte, error) {
	txs, summary, err := s.exportSet(ctx, owner, r)
	if err != nil {
		return nil, err
	}
	settings, err := s.storage.GetSettings(ctx, owner, s.defaultCurrency)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return report.RenderPDF(txs, summary, settings.Currency)
}

// ExportXLSX renders a styled spreadsheet of the filtered transactions.
func (s *ReportService) ExportXLSX(ctx context.Context, owner string, r core.Range) ([]byte, error) {
	txs, summary, err := s.exportSet(ctx, owner, r)
	if err != nil {
		return nil, err
	}
	return report.RenderXLSX(txs, summary)
}

func (s *ReportService) filtered(ctx context.Context, owner string, r core.Range) ([]core.Transaction, error) {
	txs, err := s.storage.ListTransactions(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	return core.Filter(txs, r), nil
}

func (s *ReportService) exportSet(ctx context.Context, owner string, r core.Range) ([]core.Transaction, core.Summary, error) {
	txs, err := s.filtered(ctx, owner, r)
	if err != nil {
		return nil, core.Summary{}, err
	}
	summary, err := core.Aggregate(txs, core.Strict)
	if err != nil {
		return nil, core.Summary{}, err
	}
	return txs, summary, nil
}
