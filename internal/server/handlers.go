package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ivanoskov/gasto_efectivo/internal/auth"
	"github.com/ivanoskov/gasto_efectivo/internal/model"
	"github.com/ivanoskov/gasto_efectivo/internal/repository"
	"github.com/ivanoskov/gasto_efectivo/internal/service"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondFailure maps the error taxonomy onto status codes: invalid input
// is the caller's fault, rejected credentials are unauthorized, and store
// failures surface as a bad gateway since the backend is a remote service.
func respondFailure(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	var aerr *auth.Error
	var serr *repository.StoreError
	switch {
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, verr.Error())
	case errors.As(err, &aerr):
		respondError(w, http.StatusUnauthorized, aerr.Error())
	case errors.As(err, &serr):
		respondError(w, http.StatusBadGateway, serr.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token     string `json:"token,omitempty"`
	Email     string `json:"email"`
	Confirmed bool   `json:"confirmed"`
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := auth.SignIn(s.cfg, req.Email, req.Password)
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sessionResponse{
		Token:     s.sessions.add(session),
		Email:     session.Email(),
		Confirmed: true,
	})
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := auth.SignUp(s.cfg, req.Email, req.Password)
	if err != nil {
		respondFailure(w, err)
		return
	}

	resp := sessionResponse{Email: session.Email(), Confirmed: session.Confirmed()}
	// Only a confirmed signup yields a token the client can use right
	// away; otherwise the user confirms by email and signs in.
	if session.Confirmed() {
		resp.Token = s.sessions.add(session)
	}
	respondJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	entry := s.sessions.remove(bearerToken(r))
	if entry != nil && entry.session != nil {
		// Best effort: the local session is gone either way.
		if err := entry.session.SignOut(); err != nil {
			log.Printf("sign out: %v", err)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := entryFrom(r).tracker.Categories(r.Context())
	if err != nil {
		respondFailure(w, err)
		return
	}
	if categories == nil {
		categories = []model.Category{}
	}
	respondJSON(w, http.StatusOK, categories)
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := entryFrom(r).tracker.AddCategory(r.Context(), req.Name)
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, category)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := entryFrom(r).tracker.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondFailure(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	day := model.Today()
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := model.ParseDate(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "month must be YYYY-MM-DD")
			return
		}
		day = parsed
	}

	budget, err := entryFrom(r).tracker.BudgetFor(r.Context(), day)
	if err != nil {
		respondFailure(w, err)
		return
	}
	// No budget set is a valid answer, not an error.
	respondJSON(w, http.StatusOK, budget)
}

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Month  model.Date `json:"month"`
		Amount float64    `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Month.IsZero() {
		respondError(w, http.StatusBadRequest, "month is required")
		return
	}

	budget, err := entryFrom(r).tracker.SetBudget(r.Context(), req.Month, req.Amount)
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, budget)
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	if err := entryFrom(r).tracker.DeleteBudget(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondFailure(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// rangeParams parses the required inclusive from/to pair.
func rangeParams(r *http.Request) (model.Date, model.Date, error) {
	from, err := model.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		return model.Date{}, model.Date{}, errors.New("from must be YYYY-MM-DD")
	}
	to, err := model.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		return model.Date{}, model.Date{}, errors.New("to must be YYYY-MM-DD")
	}
	return from, to, nil
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	from, to, err := rangeParams(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	expenses, err := entryFrom(r).tracker.Expenses(r.Context(), from, to)
	if err != nil {
		respondFailure(w, err)
		return
	}
	if expenses == nil {
		expenses = []model.Expense{}
	}
	respondJSON(w, http.StatusOK, expenses)
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date        model.Date `json:"date"`
		Amount      float64    `json:"amount"`
		CategoryID  *string    `json:"category_id"`
		Description string     `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Date.IsZero() {
		respondError(w, http.StatusBadRequest, "date is required")
		return
	}

	expense, err := entryFrom(r).tracker.AddExpense(r.Context(), req.Date, req.Amount, req.CategoryID, req.Description)
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, expense)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := entryFrom(r).tracker.DeleteExpense(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondFailure(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	snapshot, err := entryFrom(r).tracker.MonthlySnapshot(r.Context(), model.Today())
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	from, to, err := rangeParams(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := entryFrom(r).tracker.RangeReport(r.Context(), from, to)
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleCategoryChart(w http.ResponseWriter, r *http.Request) {
	from, to, err := rangeParams(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := entryFrom(r).tracker.RangeReport(r.Context(), from, to)
	if err != nil {
		respondFailure(w, err)
		return
	}
	png, err := s.charts.CategoryPie(report.Breakdown)
	if err != nil {
		respondFailure(w, err)
		return
	}
	writePNG(w, png)
}

func (s *Server) handleDailyChart(w http.ResponseWriter, r *http.Request) {
	from, to, err := rangeParams(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := entryFrom(r).tracker.RangeReport(r.Context(), from, to)
	if err != nil {
		respondFailure(w, err)
		return
	}
	png, err := s.charts.DailyLine(report.Daily)
	if err != nil {
		respondFailure(w, err)
		return
	}
	writePNG(w, png)
}

func writePNG(w http.ResponseWriter, png []byte) {
	if png == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(png); err != nil {
		log.Printf("writing chart: %v", err)
	}
}
