package http

import (
	"net/http"

	"github.com/Markdcoder/mobile-fintech-dashboard/internal/core"
	"github.com/Markdcoder/mobile-fintech-dashboard/internal/services"
)

const emptyResultMessage = "No transactions match your filters."

// transactionsView feeds the "transactions" partial.
type transactionsView struct {
	Transactions []core.Transaction
	Summary      core.Summary
	Filter       FilterParams
	Empty        string
}

func newTransactionsView(txs []core.Transaction, f FilterParams) transactionsView {
	return transactionsView{
		Transactions: txs,
		Summary:      core.Summarize(txs),
		Filter:       f,
		Empty:        emptyResultMessage,
	}
}

type dashboardView struct {
	pageData
	Account    core.Account
	Actions    []core.QuickAction
	Categories []string
	List       transactionsView
	Ack        *services.Acknowledgement
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}
	s.renderDashboard(w, r, ParseFilterParams(r.URL.Query()), nil)
}

func (s *Server) renderDashboard(w http.ResponseWriter, r *http.Request, f FilterParams, ack *services.Acknowledgement) {
	d, err := s.dashboard.Load(r.Context(), f.Query, f.Category)
	if err != nil {
		s.requestLogger(r).ErrorContext(r.Context(), "Dashboard load error", "error", err)
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}
	s.events.LogFilter(r.Context(), f.Query, f.Category, len(d.Transactions))

	s.render(w, r, "dashboard.html", http.StatusOK, dashboardView{
		pageData:   s.page(r),
		Account:    d.Account,
		Actions:    d.Actions,
		Categories: d.Categories,
		List:       newTransactionsView(d.Transactions, f),
		Ack:        ack,
	})
}

// handleTransactionsPartial re-renders only the transaction list.
func (s *Server) handleTransactionsPartial(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	f := ParseFilterParams(r.URL.Query())
	txs, err := s.dashboard.Filter(r.Context(), f.Query, f.Category)
	if err != nil {
		s.requestLogger(r).ErrorContext(r.Context(), "Transaction filter error", "error", err)
		InternalServerError("Failed to load transactions").Write(w)
		return
	}
	s.events.LogFilter(r.Context(), f.Query, f.Category, len(txs))

	body, err := s.renderString("transactions", newTransactionsView(txs, f))
	if err != nil {
		s.requestLogger(r).ErrorContext(r.Context(), "Template execution failed", "error", err, "template", "transactions")
		InternalServerError("Failed to render transactions").Write(w)
		return
	}
	NewHTMXResponse().
		TriggerTransactionsFiltered(len(txs)).
		BodyHTML(body).
		Write(w)
}

type transactionsResponse struct {
	Query        string             `json:"query"`
	Category     string             `json:"category"`
	Count        int                `json:"count"`
	Transactions []core.Transaction `json:"transactions"`
}

func (s *Server) handleTransactionsAPI(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	f := ParseFilterParams(r.URL.Query())
	txs, err := s.dashboard.Filter(r.Context(), f.Query, f.Category)
	if err != nil {
		s.requestLogger(r).ErrorContext(r.Context(), "Transaction filter error", "error", err)
		writeJSON(w, r, http.StatusInternalServerError, map[string]string{"error": "failed to load transactions"})
		return
	}
	writeJSON(w, r, http.StatusOK, transactionsResponse{
		Query:        f.Query,
		Category:     f.Category,
		Count:        len(txs),
		Transactions: txs,
	})
}
