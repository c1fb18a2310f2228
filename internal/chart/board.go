package chart

import (
	"io"

	"PortfolioDeck/internal/model"
)

// Board groups the dashboard's chart slots. The quote slot is shared by the
// single-ticker and combined views: selecting either replaces whatever the
// slot held before.
type Board struct {
	term      *TermRenderer
	Valuation *Handle
	Trend     *Handle
	Quotes    *Handle
}

// NewBoard creates the three chart slots writing frames to out.
func NewBoard(term *TermRenderer, out io.Writer) *Board {
	return &Board{
		term:      term,
		Valuation: NewHandle("valuation", out),
		Trend:     NewHandle("balance-trend", out),
		Quotes:    NewHandle("quotes", out),
	}
}

// ReplaceValuation renders and swaps in the portfolio composition chart.
func (b *Board) ReplaceValuation(v *model.ValuationView) error {
	frame, err := b.term.Valuation(v)
	if err != nil {
		return err
	}
	b.Valuation.Replace(frame)
	return nil
}

// ReplaceTrend renders and swaps in the balance trend chart.
func (b *Board) ReplaceTrend(v *model.BalanceTrendView) error {
	frame, err := b.term.BalanceTrend(v)
	if err != nil {
		return err
	}
	b.Trend.Replace(frame)
	return nil
}

// ReplaceSeries renders and swaps the quote slot to the single-ticker view.
func (b *Board) ReplaceSeries(v *model.SeriesView) error {
	frame, err := b.term.Series(v)
	if err != nil {
		return err
	}
	b.Quotes.Replace(frame)
	return nil
}

// ReplaceCombined renders and swaps the quote slot to the multi-ticker view.
func (b *Board) ReplaceCombined(v *model.CombinedSeriesView) error {
	frame, err := b.term.Combined(v)
	if err != nil {
		return err
	}
	b.Quotes.Replace(frame)
	return nil
}
