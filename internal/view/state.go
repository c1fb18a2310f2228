package view

import (
	"sync"

	"PortfolioDeck/internal/filter"
	"PortfolioDeck/internal/model"
)

// InputError rejects a user action client-side, before any network call.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string { return e.Reason }

// FormSession caches fetched prices for the lifetime of one open mutation
// form. The cache dies with the form; a price fetched for an earlier form
// opening is never reused.
type FormSession struct {
	prices map[string]float64
}

func newFormSession() *FormSession {
	return &FormSession{prices: make(map[string]float64)}
}

// Price returns the cached price for a company, if fetched in this form.
func (f *FormSession) Price(company string) (float64, bool) {
	if f == nil {
		return 0, false
	}
	price, ok := f.prices[company]
	return price, ok
}

func (f *FormSession) put(company string, price float64) {
	f.prices[company] = price
}

// State is the per-session view state: the last successfully fetched
// snapshots, the open form's price cache, the active filter, and the
// quote-view generation counter. Nothing here is ever fresher than the last
// completed fetch. The mutex stands in for the original single-writer event
// loop; all writes funnel through the controller.
type State struct {
	mu sync.Mutex

	holdings     []model.Holding
	transactions []model.Transaction
	statement    []model.StatementEntry
	companies    []string
	balance      int64
	balanceKnown bool

	criteria filter.Criteria
	form     *FormSession

	selected string
	quoteGen uint64
}

func NewState() *State { return &State{} }

func (s *State) SetHoldings(holdings []model.Holding) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.holdings = holdings
}

func (s *State) Holdings() []model.Holding {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Holding(nil), s.holdings...)
}

func (s *State) SetTransactions(txs []model.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = txs
}

func (s *State) Transactions() []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Transaction(nil), s.transactions...)
}

func (s *State) SetStatement(entries []model.StatementEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statement = entries
}

func (s *State) Statement() []model.StatementEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.StatementEntry(nil), s.statement...)
}

func (s *State) SetCompanies(companies []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies = companies
}

// Companies returns the dropdown set of currently held tickers.
func (s *State) Companies() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.companies...)
}

func (s *State) SetBalance(balance int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balance = balance
	s.balanceKnown = true
}

// Balance returns the last fetched balance and whether one was ever fetched.
func (s *State) Balance() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance, s.balanceKnown
}

func (s *State) SetFilter(c filter.Criteria) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = c
}

func (s *State) ClearFilter() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = filter.Criteria{}
}

func (s *State) Filter() filter.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

// OpenForm starts a new form session, discarding any prior one.
func (s *State) OpenForm() *FormSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = newFormSession()
	return s.form
}

// CloseForm invalidates the open form's price cache.
func (s *State) CloseForm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = nil
}

// FormOpen reports whether a mutation form session is open.
func (s *State) FormOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form != nil
}

// CacheFormPrice stores a fetched price in the open form, if any.
func (s *State) CacheFormPrice(company string, price float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.form == nil {
		return false
	}
	s.form.put(company, price)
	return true
}

// FormPrice returns the open form's cached price for a company.
func (s *State) FormPrice(company string) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.Price(company)
}

// BeginQuoteView records a new quote selection and returns its generation
// token. A fetch completing with an older token must not touch the chart.
func (s *State) BeginQuoteView(company string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = company
	s.quoteGen++
	return s.quoteGen
}

// QuoteViewCurrent reports whether gen is still the live quote selection.
func (s *State) QuoteViewCurrent(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen == s.quoteGen
}

// Selected returns the current quote selection ("" means the combined view).
func (s *State) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}
