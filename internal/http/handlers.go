package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ledgerlite/internal/core"
	"ledgerlite/internal/log"
)

type transactionRequest struct {
	Type        string     `json:"type"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Amount      core.Money `json:"amount"`
	Date        string     `json:"date"`
}

type manualSavingRequest struct {
	Amount      core.Money `json:"amount"`
	Description string     `json:"description"`
	Date        string     `json:"date,omitempty"`
}

type fixedCostRequest struct {
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Amount      core.Money `json:"amount"`
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)

	txs, err := s.ledger.ListTransactions(r.Context(), userID)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "List transactions failed", log.FieldUserID, userID, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not load transactions")
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date, ok := parseDate(req.Date)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "invalid date, expected YYYY-MM-DD")
		return
	}

	form := core.TransactionForm{
		Type:        core.TransactionType(strings.TrimSpace(req.Type)),
		Category:    sanitizeInput(req.Category),
		Description: sanitizeInput(req.Description),
		Amount:      req.Amount,
		Date:        date,
	}

	tx, err := s.ledger.AddTransaction(r.Context(), userID, form)
	if err != nil {
		if errors.Is(err, core.ErrInvalidType) || errors.Is(err, core.ErrInvalidAmount) ||
			errors.Is(err, core.ErrEmptyCategory) || errors.Is(err, core.ErrZeroDate) ||
			errors.Is(err, core.ErrDescriptionLong) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Add transaction failed", log.FieldUserID, userID, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not save transaction")
		return
	}

	s.invalidateUser(userID)
	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)
	id := r.PathValue("id")
	if strings.TrimSpace(id) == "" {
		writeError(w, http.StatusBadRequest, "missing transaction id")
		return
	}

	if err := s.ledger.DeleteTransaction(r.Context(), userID, id); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Delete transaction failed",
			log.FieldUserID, userID, log.FieldTransactionID, id, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not delete transaction")
		return
	}

	s.invalidateUser(userID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)
	month, year, ok := monthYearParams(r, time.Now())
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid month or year")
		return
	}

	key := s.cacheKey(userID, "summary", strconv.Itoa(year), strconv.Itoa(int(month)))
	if cached, found := s.summaryCache.Get(key); found {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	summary, err := s.ledger.Summary(r.Context(), userID, month, year)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Summary failed",
			log.FieldUserID, userID, log.FieldMonth, int(month), log.FieldYear, year, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not compute summary")
		return
	}

	s.summaryCache.Set(key, summary)
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)

	months := s.chartMonths
	if v := strings.TrimSpace(r.URL.Query().Get("months")); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 36 {
			writeError(w, http.StatusBadRequest, "invalid months, expected 1-36")
			return
		}
		months = m
	}

	key := s.cacheKey(userID, "chart", strconv.Itoa(months))
	if cached, found := s.chartCache.Get(key); found {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	series, err := s.ledger.ChartSeries(r.Context(), userID, months)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Chart series failed", log.FieldUserID, userID, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not compute chart series")
		return
	}

	s.chartCache.Set(key, series)
	writeJSON(w, http.StatusOK, series)
}

func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)
	month, year, ok := monthYearParams(r, time.Now())
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid month or year")
		return
	}

	key := s.cacheKey(userID, "breakdown", strconv.Itoa(year), strconv.Itoa(int(month)))
	if cached, found := s.breakdownCache.Get(key); found {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	breakdown, err := s.ledger.CategoryBreakdown(r.Context(), userID, month, year)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Category breakdown failed",
			log.FieldUserID, userID, log.FieldMonth, int(month), log.FieldYear, year, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not compute breakdown")
		return
	}

	s.breakdownCache.Set(key, breakdown)
	writeJSON(w, http.StatusOK, breakdown)
}

func (s *Server) handleSavingsSummary(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)

	key := s.cacheKey(userID, "savings")
	if cached, found := s.savingsCache.Get(key); found {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	summary, err := s.ledger.SavingsSummary(r.Context(), userID)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Savings summary failed", log.FieldUserID, userID, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not compute savings summary")
		return
	}

	s.savingsCache.Set(key, summary)
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleAddManualSaving(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)

	var req manualSavingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var date time.Time
	if req.Date != "" {
		parsed, ok := parseDate(req.Date)
		if !ok {
			writeError(w, http.StatusUnprocessableEntity, "invalid date, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	tx, err := s.ledger.AddManualSaving(r.Context(), userID, req.Amount, sanitizeInput(req.Description), date)
	if err != nil {
		if errors.Is(err, core.ErrInvalidAmount) || errors.Is(err, core.ErrDescriptionLong) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Add manual saving failed", log.FieldUserID, userID, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not save contribution")
		return
	}

	s.invalidateUser(userID)
	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, core.AllCategories())
}

func (s *Server) handleListFixedCosts(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)

	items, err := s.ledger.ListFixedCosts(r.Context(), userID)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "List fixed costs failed", log.FieldUserID, userID, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not load fixed costs")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleAddFixedCost(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)

	var req fixedCostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	form := core.FixedCostForm{
		Category:    sanitizeInput(req.Category),
		Description: sanitizeInput(req.Description),
		Amount:      req.Amount,
	}

	item, err := s.ledger.AddFixedCost(r.Context(), userID, form)
	if err != nil {
		if errors.Is(err, core.ErrEmptyCategory) || errors.Is(err, core.ErrEmptyDescription) ||
			errors.Is(err, core.ErrInvalidAmount) || errors.Is(err, core.ErrDescriptionLong) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Add fixed cost failed", log.FieldUserID, userID, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not save fixed cost")
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleDeleteFixedCost(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)
	id := r.PathValue("id")
	if strings.TrimSpace(id) == "" {
		writeError(w, http.StatusBadRequest, "missing fixed cost id")
		return
	}

	if err := s.ledger.DeleteFixedCost(r.Context(), userID, id); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Delete fixed cost failed",
			log.FieldUserID, userID, "fixed_cost_id", id, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not delete fixed cost")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSessionRefresh(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)

	result, err := s.processor.Refresh(r.Context(), userID)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Session refresh failed", log.FieldUserID, userID, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "session refresh failed")
		return
	}

	if result.FixedCostsApplied > 0 || result.SavingsProcessed > 0 {
		s.invalidateUser(userID)
	}
	writeJSON(w, http.StatusOK, result)
}
