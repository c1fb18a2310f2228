package view

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"PortfolioDeck/internal/aggregate"
	"PortfolioDeck/internal/chart"
	"PortfolioDeck/internal/filter"
	"PortfolioDeck/internal/gateway"
	"PortfolioDeck/internal/journal"
	"PortfolioDeck/internal/model"
	"PortfolioDeck/internal/notify"
	"PortfolioDeck/internal/series"

	"github.com/google/uuid"
)

// Backend is the bookkeeping service surface the controller consumes.
type Backend interface {
	Holdings(ctx context.Context) ([]model.Holding, error)
	Companies(ctx context.Context) ([]string, error)
	Transactions(ctx context.Context) ([]model.Transaction, error)
	Balance(ctx context.Context) (int64, error)
	Statement(ctx context.Context) ([]model.StatementEntry, error)
	AddHolding(ctx context.Context, order gateway.HoldingOrder) error
	RemoveHolding(ctx context.Context, order gateway.HoldingOrder) error
	Liquidate(ctx context.Context, order gateway.LiquidationOrder) error
	Deposit(ctx context.Context, order gateway.CashOrder) error
	Withdraw(ctx context.Context, order gateway.CashOrder) error
}

// Quotes is the price-quote service surface.
type Quotes interface {
	History(ctx context.Context, company string) (*model.QuoteSeries, error)
}

// Controller orchestrates fetch, transform and render for one dashboard
// session. Every successful mutation is followed by a fetch fan-out of the
// views derived from the records it touched; no view is ever patched
// incrementally. Failures are surfaced as notifications and leave the prior
// view state intact.
type Controller struct {
	backend Backend
	quotes  Quotes
	state   *State
	board   *chart.Board
	notify  notify.Notifier
	journal journal.Journal
	now     func() time.Time
}

// NewController wires a controller over its collaborators.
func NewController(backend Backend, quotes Quotes, board *chart.Board, n notify.Notifier, j journal.Journal) *Controller {
	return &Controller{
		backend: backend,
		quotes:  quotes,
		state:   NewState(),
		board:   board,
		notify:  n,
		journal: j,
		now:     time.Now,
	}
}

// State exposes the session state for read-side rendering.
func (c *Controller) State() *State { return c.state }

// stamp is the wire timestamp for mutation payloads: UTC, no zone marker.
func (c *Controller) stamp() string {
	return c.now().UTC().Format(model.Stamp)
}

// LoadAll performs the initial page-load fan-out. The five fetches are
// independent and run concurrently; each failure is reported without
// discarding whatever the others loaded.
func (c *Controller) LoadAll(ctx context.Context) {
	c.refreshAll(ctx, "load")
}

func (c *Controller) refreshAll(ctx context.Context, trigger string) {
	tasks := []struct {
		name string
		run  func(context.Context) error
	}{
		{"portfolio", c.refreshHoldings},
		{"transactions", c.refreshTransactions},
		{"companies", c.refreshCompanies},
		{"balance", c.refreshBalance},
		{"statement", c.refreshStatement},
	}

	var failures int64
	var wg sync.WaitGroup
	for _, t := range tasks {
		wg.Add(1)
		go func(name string, run func(context.Context) error) {
			defer wg.Done()
			if err := run(ctx); err != nil {
				atomic.AddInt64(&failures, 1)
				c.notify.Failure("Error loading %s: %v", name, err)
			}
		}(t.name, t.run)
	}
	wg.Wait()

	c.recordRefresh(trigger, "portfolio,transactions,companies,balance,statement", int(failures))
}

func (c *Controller) refreshSettlement(ctx context.Context, trigger string) {
	var failures int
	if err := c.refreshBalance(ctx); err != nil {
		failures++
		c.notify.Failure("Error loading balance: %v", err)
	}
	if err := c.refreshStatement(ctx); err != nil {
		failures++
		c.notify.Failure("Error loading statement: %v", err)
	}
	c.recordRefresh(trigger, "balance,statement", failures)
}

func (c *Controller) refreshHoldings(ctx context.Context) error {
	holdings, err := c.backend.Holdings(ctx)
	c.recordFetch("holdings", "", err)
	if err != nil {
		return err
	}
	c.state.SetHoldings(holdings)
	return c.board.ReplaceValuation(aggregate.BuildValuation(holdings))
}

func (c *Controller) refreshTransactions(ctx context.Context) error {
	txs, err := c.backend.Transactions(ctx)
	c.recordFetch("transactions", "", err)
	if err != nil {
		return err
	}
	c.state.SetTransactions(txs)
	return nil
}

func (c *Controller) refreshCompanies(ctx context.Context) error {
	companies, err := c.backend.Companies(ctx)
	c.recordFetch("companies", "", err)
	if err != nil {
		return err
	}
	c.state.SetCompanies(companies)
	return nil
}

func (c *Controller) refreshBalance(ctx context.Context) error {
	balance, err := c.backend.Balance(ctx)
	c.recordFetch("balance", "", err)
	if err != nil {
		return err
	}
	c.state.SetBalance(balance)
	return nil
}

func (c *Controller) refreshStatement(ctx context.Context) error {
	entries, err := c.backend.Statement(ctx)
	c.recordFetch("statement", "", err)
	if err != nil {
		return err
	}
	c.state.SetStatement(entries)
	return c.board.ReplaceTrend(aggregate.BuildBalanceTrend(entries))
}

// OpenForm starts a mutation form session. Prices fetched while it is open
// are cached for submission and discarded when the form closes.
func (c *Controller) OpenForm() { c.state.OpenForm() }

// CloseForm discards the open form and its price cache.
func (c *Controller) CloseForm() { c.state.CloseForm() }

// FetchFormPrice fetches a fresh quote for the open form and caches its last
// close for the submission payload.
func (c *Controller) FetchFormPrice(ctx context.Context, company string) (float64, error) {
	// The cache is form-scoped; without a form the fetch would be discarded.
	if !c.state.FormOpen() {
		return 0, &InputError{Reason: "no open mutation form"}
	}
	history, err := c.quotes.History(ctx, company)
	c.recordFetch("quote", company, err)
	if err != nil {
		c.notify.Failure("Error fetching price for %s: %v", company, err)
		return 0, err
	}
	price, ok := history.LastClose()
	if !ok {
		err := &gateway.ValidationError{Op: "quote " + company, Reason: "no close prices"}
		c.notify.Failure("Error fetching price for %s: %v", company, err)
		return 0, err
	}
	if !c.state.CacheFormPrice(company, price) {
		return 0, &InputError{Reason: "no open mutation form"}
	}
	return price, nil
}

// AddAsset submits a buy for the open form. Submission blocks unless a price
// was fetched during this form session.
func (c *Controller) AddAsset(ctx context.Context, company string, quantity int64) error {
	if company == "" {
		return c.reject("a company is required")
	}
	if quantity <= 0 {
		return c.reject("quantity must be positive")
	}
	price, ok := c.state.FormPrice(company)
	if !ok {
		return c.reject("no fetched price for %s; fetch a quote before submitting", company)
	}

	order := gateway.HoldingOrder{Company: company, Quantity: quantity, Price: price, Timestamp: c.stamp()}
	err := c.backend.AddHolding(ctx, order)
	c.recordMutation(&journal.MutationEvent{Op: "ADD", Company: company, Quantity: quantity, Price: price}, err)
	if err != nil {
		c.notify.Failure("Error: %v", err)
		return err
	}
	c.notify.Success("Asset added: %s ×%d @ %.2f", company, quantity, price)
	c.refreshAll(ctx, "add")
	return nil
}

// RemoveAsset submits a sell for the open form.
func (c *Controller) RemoveAsset(ctx context.Context, company string, quantity int64) error {
	if company == "" {
		return c.reject("a company is required")
	}
	if quantity <= 0 {
		return c.reject("quantity must be positive")
	}
	price, ok := c.state.FormPrice(company)
	if !ok {
		return c.reject("no fetched price for %s; fetch a quote before submitting", company)
	}

	order := gateway.HoldingOrder{Company: company, Quantity: quantity, Price: price, Timestamp: c.stamp()}
	err := c.backend.RemoveHolding(ctx, order)
	c.recordMutation(&journal.MutationEvent{Op: "REMOVE", Company: company, Quantity: quantity, Price: price}, err)
	if err != nil {
		c.notify.Failure("Error: %v", err)
		return err
	}
	c.notify.Success("Asset removed: %s ×%d @ %.2f", company, quantity, price)
	c.refreshAll(ctx, "remove")
	return nil
}

// LiquidateCompany closes the entire position in one company.
func (c *Controller) LiquidateCompany(ctx context.Context, company string) error {
	if company == "" {
		return c.reject("a company is required")
	}
	price, ok := c.state.FormPrice(company)
	if !ok {
		return c.reject("no fetched price for %s; fetch a quote before submitting", company)
	}

	order := gateway.LiquidationOrder{Company: company, Price: price, Timestamp: c.stamp()}
	err := c.backend.Liquidate(ctx, order)
	c.recordMutation(&journal.MutationEvent{Op: "LIQUIDATE", Company: company, Price: price}, err)
	if err != nil {
		c.notify.Failure("Error: %v", err)
		return err
	}
	c.notify.Success("Position liquidated: %s @ %.2f", company, price)
	c.refreshAll(ctx, "liquidate")
	return nil
}

// LiquidateAll closes every held position, one liquidation per company. A
// failing company is reported and skipped; the loop carries on, and a single
// refresh fan-out follows once any liquidation succeeded.
func (c *Controller) LiquidateAll(ctx context.Context) error {
	companies := c.state.Companies()
	if len(companies) == 0 {
		return c.reject("no holdings to liquidate")
	}

	var errs []error
	succeeded := 0
	for _, company := range companies {
		history, err := c.quotes.History(ctx, company)
		c.recordFetch("quote", company, err)
		if err != nil {
			c.notify.Failure("Error fetching price for %s: %v", company, err)
			errs = append(errs, err)
			continue
		}
		price, ok := history.LastClose()
		if !ok {
			err := &gateway.ValidationError{Op: "quote " + company, Reason: "no close prices"}
			c.notify.Failure("Error fetching price for %s: %v", company, err)
			errs = append(errs, err)
			continue
		}

		order := gateway.LiquidationOrder{Company: company, Price: price, Timestamp: c.stamp()}
		err = c.backend.Liquidate(ctx, order)
		c.recordMutation(&journal.MutationEvent{Op: "LIQUIDATE", Company: company, Price: price}, err)
		if err != nil {
			c.notify.Failure("Error liquidating %s: %v", company, err)
			errs = append(errs, err)
			continue
		}
		succeeded++
	}

	if succeeded > 0 {
		c.notify.Success("Liquidated %d of %d positions", succeeded, len(companies))
		c.refreshAll(ctx, "liquidate-all")
	}
	return errors.Join(errs...)
}

// Deposit adds funds to the settlement account. Amounts round to the nearest
// whole unit; the ledger is integer-denominated.
func (c *Controller) Deposit(ctx context.Context, amount float64) error {
	if math.IsNaN(amount) || amount <= 0 {
		return c.reject("please enter a valid positive amount")
	}

	order := gateway.CashOrder{Amount: int64(math.Round(amount)), Timestamp: c.stamp()}
	err := c.backend.Deposit(ctx, order)
	c.recordMutation(&journal.MutationEvent{Op: "DEPOSIT", Amount: order.Amount}, err)
	if err != nil {
		c.notify.Failure("Error: %v", err)
		return err
	}
	c.notify.Success("Funds added: %d", order.Amount)
	c.refreshSettlement(ctx, "deposit")
	return nil
}

// Withdraw removes funds from the settlement account. The last known balance
// gates the request client-side: an overdraft never reaches the network.
func (c *Controller) Withdraw(ctx context.Context, amount float64) error {
	if math.IsNaN(amount) || amount <= 0 {
		return c.reject("please enter a valid positive amount")
	}
	balance, known := c.state.Balance()
	if !known {
		return c.reject("balance not loaded yet; refresh before withdrawing")
	}
	if amount > float64(balance) {
		return c.reject("insufficient balance to withdraw this amount")
	}

	order := gateway.CashOrder{Amount: int64(math.Round(amount)), Timestamp: c.stamp()}
	err := c.backend.Withdraw(ctx, order)
	c.recordMutation(&journal.MutationEvent{Op: "WITHDRAW", Amount: order.Amount}, err)
	if err != nil {
		c.notify.Failure("Error: %v", err)
		return err
	}
	c.notify.Success("Funds withdrawn: %d", order.Amount)
	c.refreshSettlement(ctx, "withdraw")
	return nil
}

// ShowQuotes switches the quote chart. The empty selection renders the
// combined view over every held ticker; a concrete ticker renders the 24h
// windowed single view. Both always re-fetch, even when re-selecting the
// same ticker: quote data is time-sensitive. Each switch takes a generation
// token so a superseded fetch cannot overwrite a newer selection.
func (c *Controller) ShowQuotes(ctx context.Context, company string) error {
	gen := c.state.BeginQuoteView(company)
	if company == "" {
		return c.showCombined(ctx, gen)
	}
	return c.showSingle(ctx, gen, company)
}

func (c *Controller) showSingle(ctx context.Context, gen uint64, company string) error {
	history, err := c.quotes.History(ctx, company)
	c.recordFetch("quote", company, err)
	if err != nil {
		c.notify.Failure("Error loading quotes for %s: %v", company, err)
		return err
	}
	sv, err := series.WindowLast24h(history)
	if err != nil {
		c.notify.Failure("Error loading quotes for %s: %v", company, err)
		return err
	}
	if !c.state.QuoteViewCurrent(gen) {
		log.Printf("[INFO] dropping stale quote view for %s", company)
		return nil
	}
	return c.board.ReplaceSeries(sv)
}

func (c *Controller) showCombined(ctx context.Context, gen uint64) error {
	companies := c.state.Companies()
	batch := make([]*model.QuoteSeries, 0, len(companies))
	for _, company := range companies {
		history, err := c.quotes.History(ctx, company)
		c.recordFetch("quote", company, err)
		if err != nil {
			// A partially failed batch still renders; the combiner drops nils.
			c.notify.Failure("Error loading quotes for %s: %v", company, err)
			batch = append(batch, nil)
			continue
		}
		batch = append(batch, history)
	}
	if !c.state.QuoteViewCurrent(gen) {
		log.Println("[INFO] dropping stale combined quote view")
		return nil
	}
	return c.board.ReplaceCombined(series.Combine(batch))
}

// FilterTransactions narrows the cached transaction snapshot. It never
// re-fetches; a stale snapshot yields stale results by design.
func (c *Controller) FilterTransactions(crit filter.Criteria) ([]model.Transaction, error) {
	rows, err := filter.Transactions(c.state.Transactions(), crit)
	if err != nil {
		inputErr := &InputError{Reason: err.Error()}
		c.notify.Failure("Error: %v", inputErr)
		return nil, inputErr
	}
	c.state.SetFilter(crit)
	return rows, nil
}

// FilterStatement narrows the cached statement snapshot.
func (c *Controller) FilterStatement(crit filter.Criteria) ([]model.StatementEntry, error) {
	rows, err := filter.Statement(c.state.Statement(), crit)
	if err != nil {
		inputErr := &InputError{Reason: err.Error()}
		c.notify.Failure("Error: %v", inputErr)
		return nil, inputErr
	}
	c.state.SetFilter(crit)
	return rows, nil
}

// ClearFilter drops the active filter clauses.
func (c *Controller) ClearFilter() { c.state.ClearFilter() }

func (c *Controller) reject(format string, args ...any) error {
	err := &InputError{Reason: fmt.Sprintf(format, args...)}
	c.notify.Failure("%s", err.Reason)
	return err
}

func (c *Controller) recordFetch(resource, company string, err error) {
	evt := &journal.FetchEvent{RequestID: uuid.NewString(), Resource: resource, Company: company, Outcome: "OK"}
	if err != nil {
		evt.Outcome = "FAIL"
		evt.Error = err.Error()
	}
	if jerr := c.journal.RecordFetch(evt); jerr != nil {
		log.Printf("[ERROR] record fetch: %v", jerr)
	}
}

func (c *Controller) recordMutation(evt *journal.MutationEvent, err error) {
	evt.RequestID = uuid.NewString()
	evt.Outcome = "OK"
	if err != nil {
		evt.Outcome = "FAIL"
		evt.Error = err.Error()
	}
	if jerr := c.journal.RecordMutation(evt); jerr != nil {
		log.Printf("[ERROR] record mutation: %v", jerr)
	}
}

func (c *Controller) recordRefresh(trigger, views string, failures int) {
	if err := c.journal.RecordRefresh(&journal.RefreshEvent{Trigger: trigger, Views: views, Failures: failures}); err != nil {
		log.Printf("[ERROR] record refresh: %v", err)
	}
}
