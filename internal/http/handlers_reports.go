package http

import (
	"net/http"

	"fintrack/internal/core"
)

type monthPointResponse struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

type summaryResponse struct {
	TotalIncome       float64              `json:"totalIncome"`
	TotalExpense      float64              `json:"totalExpense"`
	Balance           float64              `json:"balance"`
	TransactionCount  int                  `json:"transactionCount"`
	CategoryBreakdown map[string]float64   `json:"categoryBreakdown"`
	IncomeBreakdown   map[string]float64   `json:"incomeBreakdown"`
	MonthlyTrend      []monthPointResponse `json:"monthlyTrend"`
	SkippedRecords    int                  `json:"skippedRecords,omitempty"`
}

func toSummaryResponse(s core.Summary) summaryResponse {
	out := summaryResponse{
		TotalIncome:       s.TotalIncome.Float(),
		TotalExpense:      s.TotalExpense.Float(),
		Balance:           s.Balance.Float(),
		TransactionCount:  s.TransactionCount,
		CategoryBreakdown: make(map[string]float64, len(s.ExpenseByCategory)),
		IncomeBreakdown:   make(map[string]float64, len(s.IncomeByCategory)),
		MonthlyTrend:      toTrendResponse(s.MonthlyTrend),
		SkippedRecords:    s.Skipped,
	}
	for name, m := range s.ExpenseByCategory {
		out.CategoryBreakdown[name] = m.Float()
	}
	for name, m := range s.IncomeByCategory {
		out.IncomeBreakdown[name] = m.Float()
	}
	return out
}

func toTrendResponse(trend []core.MonthPoint) []monthPointResponse {
	out := make([]monthPointResponse, 0, len(trend))
	for _, p := range trend {
		out = append(out, monthPointResponse{
			Year:    p.Year,
			Month:   p.Month,
			Income:  p.Income.Float(),
			Expense: p.Expense.Float(),
		})
	}
	return out
}

func (s *Server) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFrom(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	rng, err := parseRange(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	summary, err := s.reports.Dashboard(r.Context(), owner, rng)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryResponse(summary))
}

func (s *Server) handleMonthlyAnalytics(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFrom(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	rng, err := parseRange(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	trend, err := s.reports.MonthlyTrend(r.Context(), owner, rng)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTrendResponse(trend))
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFrom(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	rng, err := parseRange(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	out, err := s.reports.ExportCSV(r.Context(), owner, rng)
	if err != nil {
		respondError(w, r, err)
		return
	}
	sendAttachment(w, "text/csv; charset=utf-8", "transactions", "csv", out)
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFrom(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	rng, err := parseRange(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	out, err := s.reports.ExportPDF(r.Context(), owner, rng)
	if err != nil {
		respondError(w, r, err)
		return
	}
	sendAttachment(w, "application/pdf", "transaction_report", "pdf", out)
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFrom(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	rng, err := parseRange(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	out, err := s.reports.ExportXLSX(r.Context(), owner, rng)
	if err != nil {
		respondError(w, r, err)
		return
	}
	sendAttachment(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "transactions", "xlsx", out)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"expense": core.Categories(core.Expense),
		"income":  core.Categories(core.Income),
	})
}

func (s *Server) handleCurrencies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, core.SupportedCurrencies())
}
