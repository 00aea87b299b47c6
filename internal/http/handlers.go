package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"kharcha/internal/core"
	"kharcha/internal/storage"
)

// now is a hook for tests that pin the budget month.
var now = time.Now

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps domain errors onto status codes: validation failures
// are the client's fault, an unavailable store is temporary, everything
// else is a plain 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *core.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error": ve.Error(),
			"field": ve.Field,
		})
	case errors.Is(err, core.ErrStorageUnavailable):
		slog.ErrorContext(r.Context(), "Store unavailable", "error", err, "url", r.URL.Path)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "storage unavailable"})
	default:
		slog.ErrorContext(r.Context(), "Request failed", "error", err, "url", r.URL.Path)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		badRequest(w, "invalid JSON body")
		return false
	}
	return true
}

// idParam parses the required id query parameter.
func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.URL.Query().Get("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		badRequest(w, "missing or invalid id")
		return 0, false
	}
	return id, true
}

// rangeParams reads the optional start/end bounds, defaulting to a
// range that covers everything.
func rangeParams(r *http.Request) (start, end string) {
	q := r.URL.Query()
	start = q.Get("start")
	end = q.Get("end")
	if start == "" {
		start = "0000-01-01"
	}
	if end == "" {
		end = "9999-12-31"
	}
	return start, end
}

func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listExpenses(w, r)
	case http.MethodPost:
		s.createExpense(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) listExpenses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ctx := r.Context()

	var (
		rows []core.Expense
		err  error
	)
	switch {
	case q.Get("limit") != "":
		limit, convErr := strconv.Atoi(q.Get("limit"))
		if convErr != nil || limit <= 0 {
			badRequest(w, "invalid limit")
			return
		}
		rows, err = s.store.ListRecent(ctx, limit)
	case q.Get("start") != "" || q.Get("end") != "":
		start, end := rangeParams(r)
		rows, err = s.store.ListByDateRange(ctx, start, end)
	default:
		rows, err = s.store.ListAll(ctx)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	if rows == nil {
		rows = []core.Expense{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) createExpense(w http.ResponseWriter, r *http.Request) {
	var in core.NewExpense
	if !decodeBody(w, r, &in) {
		return
	}

	id, err := s.expenses.CreateExpense(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	e, err := s.store.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if e == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "expense not found"})
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var in core.NewExpense
	if !decodeBody(w, r, &in) {
		return
	}

	if err := s.expenses.UpdateExpense(r.Context(), id, in); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := s.expenses.DeleteExpense(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTotal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	start, end := rangeParams(r)

	total, err := s.store.TotalInRange(r.Context(), start, end)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"total": total})
}

func (s *Server) handleCategoryTotals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	start, end := rangeParams(r)

	totals, err := s.store.TotalsByCategory(r.Context(), start, end)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if totals == nil {
		totals = []storage.CategoryTotal{}
	}
	writeJSON(w, http.StatusOK, totals)
}

func (s *Server) handleDailyTotals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	start, end := rangeParams(r)

	totals, err := s.store.DailyTotals(r.Context(), start, end)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if totals == nil {
		totals = []storage.DailyTotal{}
	}
	writeJSON(w, http.StatusOK, totals)
}

func (s *Server) handleWeeklyTotals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	start, end := rangeParams(r)

	totals, err := s.store.WeeklyTotals(r.Context(), start, end)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if totals == nil {
		totals = []storage.WeeklyTotal{}
	}
	writeJSON(w, http.StatusOK, totals)
}

func (s *Server) handleBudget(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	status, err := s.expenses.MonthlyBudgetStatus(r.Context(), now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		raw, err := s.store.AllSettings(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, raw)
	case http.MethodPost:
		var in map[string]string
		if !decodeBody(w, r, &in) {
			return
		}
		for key, value := range in {
			if key == core.KeySchemaVersion {
				badRequest(w, "schema_version is not writable")
				return
			}
			if err := s.store.SetSetting(r.Context(), key, value); err != nil {
				writeError(w, r, err)
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"categories":      core.Categories,
		"payment_methods": core.PaymentMethods,
		"currencies":      core.Currencies,
	})
}

// handleExport returns the whole database as one document: expenses
// oldest first plus the raw settings map.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	ctx := r.Context()

	rows, err := s.store.ExportAll(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if rows == nil {
		rows = []core.Expense{}
	}

	settings, err := s.store.AllSettings(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"expenses": rows,
		"settings": settings,
	})
}

func (s *Server) handleWipe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	if err := s.store.WipeAll(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
