package http

import (
	"encoding/json"
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/services"
)

type transactionRequest struct {
	Type        string      `json:"type"`
	Amount      json.Number `json:"amount"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Date        string      `json:"date"`
}

type transactionResponse struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

func toTransactionResponse(t core.Transaction) transactionResponse {
	return transactionResponse{
		ID:          t.ID,
		Type:        string(t.Type),
		Amount:      t.Amount.Float(),
		Category:    t.Category,
		Description: t.Description,
		Date:        t.Date.Format("2006-01-02"),
	}
}

func decodeTransactionRequest(r *http.Request) (services.TransactionInput, error) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return services.TransactionInput{}, err
	}
	return services.TransactionInput{
		Type:        req.Type,
		Amount:      req.Amount.String(),
		Category:    req.Category,
		Description: req.Description,
		Date:        req.Date,
	}, nil
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFrom(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	in, err := decodeTransactionRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := s.transactions.Create(r.Context(), owner, in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionResponse(created))
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFrom(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	txs, err := s.transactions.List(r.Context(), owner)
	if err != nil {
		respondError(w, r, err)
		return
	}

	out := make([]transactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, toTransactionResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFrom(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	t, err := s.transactions.Get(r.Context(), owner, r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(t))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFrom(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	in, err := decodeTransactionRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := s.transactions.Update(r.Context(), owner, r.PathValue("id"), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(updated))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFrom(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.transactions.Delete(r.Context(), owner, r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type settingsRequest struct {
	Currency string `json:"currency"`
}

type settingsResponse struct {
	Owner    string `json:"owner"`
	Currency string `json:"currency"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFrom(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	settings, err := s.transactions.Settings(r.Context(), owner)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settingsResponse{Owner: settings.Owner, Currency: settings.Currency})
}

func (s *Server) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFrom(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	saved, err := s.transactions.SaveSettings(r.Context(), owner, req.Currency)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settingsResponse{Owner: saved.Owner, Currency: saved.Currency})
}
