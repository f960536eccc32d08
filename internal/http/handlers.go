package http

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jeffrin-samuel/expense-tracker/internal/core"
	"github.com/jeffrin-samuel/expense-tracker/internal/currency"
	"github.com/jeffrin-samuel/expense-tracker/internal/log"
)

type summaryView struct {
	Balance         string
	Income          string
	Expense         string
	BalanceNegative bool
}

type itemView struct {
	ID          string
	Description string
	Category    string
	Amount      string
	Income      bool
}

type groupView struct {
	Label string
	Items []itemView
}

type listView struct {
	Groups []groupView
	// NoTransactions distinguishes "nothing recorded yet" from "nothing
	// matches the filters" for the empty state message.
	NoTransactions bool
}

func (s *Server) currentSummary() summaryView {
	sum := core.Summarize(s.ledger.Transactions())
	code := s.ledger.Currency()
	return summaryView{
		Balance:         currency.Format(sum.Balance, code),
		Income:          currency.Format(sum.TotalIncome, code),
		Expense:         currency.Format(sum.TotalExpense, code),
		BalanceNegative: sum.Balance.IsNegative(),
	}
}

// itemViews formats each record for display. A record's own currency
// wins; records persisted before currency tracking fall back to the
// current global selection.
func (s *Server) itemViews(groups []core.DayGroup) []groupView {
	global := s.ledger.Currency()
	out := make([]groupView, 0, len(groups))
	for _, g := range groups {
		gv := groupView{Label: g.Label}
		for _, t := range g.Transactions {
			code := t.Currency
			if code == "" {
				code = global
			}
			sign := "-"
			if t.Type == core.Income {
				sign = "+"
			}
			gv.Items = append(gv.Items, itemView{
				ID:          t.ID,
				Description: t.Description,
				Category:    t.Category,
				Amount:      sign + currency.Format(t.Amount, code),
				Income:      t.Type == core.Income,
			})
		}
		out = append(out, gv)
	}
	return out
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Templates not loaded",
			log.FieldOperation, log.OpRender, log.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	txs := s.ledger.Transactions()
	filtered := core.Filter{}.Apply(txs)
	data := struct {
		DarkMode          bool
		Currency          string
		Codes             []string
		IncomeCategories  []string
		ExpenseCategories []string
		FilterCategories  []string
		Summary           summaryView
		List              listView
	}{
		DarkMode:          s.ledger.DarkMode(),
		Currency:          s.ledger.Currency(),
		Codes:             currency.Codes,
		IncomeCategories:  core.Categories[core.Income],
		ExpenseCategories: core.Categories[core.Expense],
		FilterCategories:  core.UsedCategories(txs),
		Summary:           s.currentSummary(),
		List: listView{
			Groups:         s.itemViews(core.GroupByDay(filtered)),
			NoTransactions: len(txs) == 0,
		},
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Index template execution failed",
			log.FieldOperation, log.OpRender, log.FieldError, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Parse form error",
			log.FieldError, err, log.FieldPath, r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="notice error">Invalid request format</div>`))
		return
	}

	desc := sanitizeInput(r.Form.Get("description"))
	amountStr := strings.TrimSpace(r.Form.Get("amount"))
	typ := core.Type(strings.TrimSpace(r.Form.Get("type")))
	category := sanitizeInput(r.Form.Get("category"))

	if desc == "" {
		writeNotice(w, http.StatusUnprocessableEntity, "error", "Please enter a description")
		return
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil || !amount.IsPositive() {
		writeNotice(w, http.StatusUnprocessableEntity, "error", "Please enter a valid positive amount")
		return
	}
	if category == "" {
		writeNotice(w, http.StatusUnprocessableEntity, "error", "Please select a category")
		return
	}
	date, err := parseDate(r.Form.Get("date"))
	if err != nil {
		writeNotice(w, http.StatusUnprocessableEntity, "error", "Please enter a valid date")
		return
	}

	tx, err := core.NewTransaction(desc, amount, typ, category, date, s.ledger.Currency())
	if err != nil {
		writeNotice(w, http.StatusUnprocessableEntity, "error", "Invalid transaction: "+err.Error())
		return
	}
	if err := s.ledger.Add(r.Context(), tx); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Transaction add error",
			log.FieldOperation, log.OpAdd, log.FieldError, err, log.FieldTxID, tx.ID)
		writeNotice(w, http.StatusInternalServerError, "error", "Could not save the transaction")
		return
	}

	s.listCache.Purge()
	kind := "Expense"
	if tx.Type == core.Income {
		kind = "Income"
	}
	w.Header().Set("HX-Trigger", `{"transactions:changed": {}}`)
	writeNotice(w, http.StatusOK, "success", kind+" added successfully")
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="notice error">Invalid request format</div>`))
		return
	}

	id := strings.TrimSpace(r.Form.Get("id"))
	if err := s.ledger.Delete(r.Context(), id); err != nil {
		// Deleting an absent id is a no-op, not a failure.
		log.FromContext(r.Context()).WarnContext(r.Context(), "Delete of unknown transaction",
			log.FieldOperation, log.OpDelete, log.FieldTxID, id, log.FieldError, err)
	}

	s.listCache.Purge()
	w.Header().Set("HX-Trigger", `{"transactions:changed": {}}`)
	writeNotice(w, http.StatusOK, "success", "Transaction deleted")
}

func (s *Server) handleSetCurrency(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	code := strings.ToUpper(strings.TrimSpace(r.Form.Get("currency")))
	if err := s.ledger.SetCurrency(r.Context(), code); err != nil {
		writeNotice(w, http.StatusUnprocessableEntity, "error", "Unsupported currency")
		return
	}

	s.listCache.Purge()
	w.Header().Set("HX-Trigger", `{"transactions:changed": {}}`)
	writeNotice(w, http.StatusOK, "success", "Currency set to "+code)
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	dark := r.Form.Get("dark") == "true" || r.Form.Get("dark") == "on"
	if err := s.ledger.SetDarkMode(r.Context(), dark); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Theme change error",
			log.FieldError, err, log.FieldDarkMode, dark)
		writeNotice(w, http.StatusInternalServerError, "error", "Could not save the theme")
		return
	}
	w.WriteHeader(http.StatusOK)
}

// handleTransactionList renders the filtered, grouped list partial.
// Rendered fragments are memoized per filter params and purged on any
// mutation.
func (s *Server) handleTransactionList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	q := sanitizeInput(r.URL.Query().Get("q"))
	typ := strings.TrimSpace(r.URL.Query().Get("type"))
	category := strings.TrimSpace(r.URL.Query().Get("category"))

	// Length-prefixed so no search text can collide with another
	// param combination.
	key := fmt.Sprintf("%d:%s/%d:%s/%d:%s", len(q), q, len(typ), typ, len(category), category)
	if html, found := s.listCache.Get(key); found {
		log.FromContext(r.Context()).DebugContext(r.Context(), "List cache hit",
			log.FieldOperation, log.OpList, log.FieldFilterQuery, key)
		_, _ = w.Write([]byte(html))
		return
	}

	txs := s.ledger.Transactions()
	filtered := core.Filter{Search: q, Type: typ, Category: category}.Apply(txs)
	data := listView{
		Groups:         s.itemViews(core.GroupByDay(filtered)),
		NoTransactions: len(txs) == 0,
	}

	html, err := s.renderToString("transaction_list.html", data)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "List template execution error",
			log.FieldOperation, log.OpList, log.FieldError, err)
		_, _ = w.Write([]byte(`<div class="notice error">Could not render transactions</div>`))
		return
	}

	s.listCache.Set(key, html)
	_, _ = w.Write([]byte(html))
}

// handleCategoryOptions re-renders the filter dropdown's options so a
// category first used by a new record becomes filterable without a full
// page reload.
func (s *Server) handleCategoryOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	html, err := s.renderToString("category_options.html", core.UsedCategories(s.ledger.Transactions()))
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Category options template execution error",
			log.FieldOperation, log.OpRender, log.FieldError, err)
		_, _ = w.Write([]byte(`<option value="all">All Categories</option>`))
		return
	}
	_, _ = w.Write([]byte(html))
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	html, err := s.renderToString("summary_cards.html", s.currentSummary())
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Summary template execution error",
			log.FieldOperation, log.OpRender, log.FieldError, err)
		_, _ = w.Write([]byte(`<div class="notice error">Could not render summary</div>`))
		return
	}
	_, _ = w.Write([]byte(html))
}

func (s *Server) renderToString(name string, data any) (string, error) {
	if s.templates == nil {
		return "", errTemplatesNotLoaded
	}
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeNotice(w http.ResponseWriter, status int, kind, msg string) {
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`<div class="notice ` + kind + `">` + template.HTMLEscapeString(msg) + `</div>`))
}
