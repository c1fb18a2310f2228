package chart

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"PortfolioDeck/internal/aggregate"
	"PortfolioDeck/internal/model"

	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"
)

var sparks = []rune("▁▂▃▄▅▆▇█")

// TermRenderer turns view models into terminal frames: markdown through
// glamour, with block-character bars standing in for the pie and line charts.
// Concurrent refreshes share one renderer; glamour's ANSI block stack is
// mutable, so render calls are serialized.
type TermRenderer struct {
	g        *glamour.TermRenderer
	mu       sync.Mutex
	currency string
}

func (r *TermRenderer) render(md string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.g.Render(md)
}

// NewTermRenderer creates a renderer displaying cash in the given currency.
func NewTermRenderer(currency string) (*TermRenderer, error) {
	g, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(110),
	)
	if err != nil {
		return nil, fmt.Errorf("init term renderer: %w", err)
	}
	return &TermRenderer{g: g, currency: currency}, nil
}

// Valuation renders the portfolio composition view.
func (r *TermRenderer) Valuation(v *model.ValuationView) (string, error) {
	var b strings.Builder
	b.WriteString("## Portfolio Distribution\n\n")
	if v.Empty() {
		b.WriteString("_No holdings._\n")
		return r.render(b.String())
	}

	b.WriteString("| Ticker | Value | Share | |\n")
	b.WriteString("|:---|---:|---:|:---|\n")
	for i, label := range v.Labels {
		fmt.Fprintf(&b, "| %s | %s | %.1f%% | %s |\n",
			label,
			humanize.CommafWithDigits(v.Values[i], 2),
			v.Shares[i]*100,
			strings.Repeat("█", int(math.Round(v.Shares[i]*24))),
		)
	}
	fmt.Fprintf(&b, "\nTotal value: **%s**\n", humanize.CommafWithDigits(v.Total.InexactFloat64(), 2))
	return r.render(b.String())
}

// BalanceTrend renders the settlement balance history.
func (r *TermRenderer) BalanceTrend(v *model.BalanceTrendView) (string, error) {
	var b strings.Builder
	b.WriteString("## Balance Trend\n\n")
	if v.Empty() {
		b.WriteString("_No statement entries._\n")
		return r.render(b.String())
	}

	values := make([]float64, len(v.Points))
	for i, p := range v.Points {
		values[i] = float64(p.Balance)
	}
	fmt.Fprintf(&b, "`%s`\n\n", sparkline(values))

	b.WriteString("| Date | Balance |\n|:---|---:|\n")
	for _, p := range v.Points {
		fmt.Fprintf(&b, "| %s | %s |\n", p.Label, aggregate.Cash(p.Balance, r.currency).Display())
	}
	return r.render(b.String())
}

// Series renders the single-ticker windowed view (open prices).
func (r *TermRenderer) Series(v *model.SeriesView) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s — last 24h\n\n", v.Company)
	if v.Empty() {
		b.WriteString("_No samples in window._\n")
		return r.render(b.String())
	}

	fmt.Fprintf(&b, "`%s`\n\n", sparkline(v.Values))
	lo, hi := bounds(v.Values)
	fmt.Fprintf(&b, "%d samples, %s → %s, open %s … %s\n",
		len(v.Values), v.Labels[0], v.Labels[len(v.Labels)-1],
		humanize.CommafWithDigits(lo, 2), humanize.CommafWithDigits(hi, 2))
	return r.render(b.String())
}

// Combined renders the multi-ticker view (close prices) on the shared axis.
func (r *TermRenderer) Combined(v *model.CombinedSeriesView) (string, error) {
	var b strings.Builder
	b.WriteString("## Price Trends\n\n")
	if v.Empty() {
		b.WriteString("_No quote data._\n")
		return r.render(b.String())
	}

	b.WriteString("| Ticker | Trend | Last close |\n|:---|:---|---:|\n")
	for i, company := range v.Companies {
		last := "-"
		if n := len(v.Values[i]); n > 0 {
			last = humanize.CommafWithDigits(v.Values[i][n-1], 2)
		}
		fmt.Fprintf(&b, "| %s | `%s` | %s |\n", company, sparkline(v.Values[i]), last)
	}
	if len(v.Labels) > 0 {
		fmt.Fprintf(&b, "\nAxis: %s → %s (%d samples)\n",
			v.Labels[0], v.Labels[len(v.Labels)-1], len(v.Labels))
	}
	return r.render(b.String())
}

// HoldingsTable renders the raw holdings table.
func (r *TermRenderer) HoldingsTable(holdings []model.Holding) (string, error) {
	var b strings.Builder
	b.WriteString("## Holdings\n\n")
	if len(holdings) == 0 {
		b.WriteString("_No holdings found._\n")
		return r.render(b.String())
	}
	b.WriteString("| Ticker | Quantity | Avg Price | Updated |\n|:---|---:|---:|:---|\n")
	for _, h := range holdings {
		fmt.Fprintf(&b, "| %s | %d | %s | %s |\n",
			h.Company, h.Quantity, h.AvgPrice.StringFixed(2), h.TimeStamp)
	}
	return r.render(b.String())
}

// TransactionsTable renders the equity ledger table.
func (r *TermRenderer) TransactionsTable(txs []model.Transaction) (string, error) {
	var b strings.Builder
	b.WriteString("## Transactions\n\n")
	if len(txs) == 0 {
		b.WriteString("_No transactions found._\n")
		return r.render(b.String())
	}
	b.WriteString("| Time | Ticker | Action | Price | Quantity |\n|:---|:---|:---|---:|---:|\n")
	for _, tx := range txs {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %d |\n",
			tx.TimeStamp, tx.Company, tx.Action, tx.Price.StringFixed(2), tx.Quantity)
	}
	return r.render(b.String())
}

// StatementTable renders the cash ledger table.
func (r *TermRenderer) StatementTable(entries []model.StatementEntry) (string, error) {
	var b strings.Builder
	b.WriteString("## Account Statement\n\n")
	if len(entries) == 0 {
		b.WriteString("_No statement entries found._\n")
		return r.render(b.String())
	}
	b.WriteString("| Time | Action | Amount | Balance |\n|:---|:---|---:|---:|\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			e.TimeStamp, e.Action,
			aggregate.Cash(e.Amount, r.currency).Display(),
			aggregate.Cash(e.Balance, r.currency).Display())
	}
	return r.render(b.String())
}

// sparkline scales values into one row of block characters.
func sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := bounds(values)
	span := hi - lo
	var b strings.Builder
	for _, v := range values {
		idx := 0
		if span > 0 {
			idx = int(math.Round((v - lo) / span * float64(len(sparks)-1)))
		}
		b.WriteRune(sparks[idx])
	}
	return b.String()
}

func bounds(values []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
