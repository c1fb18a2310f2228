package model

import "github.com/shopspring/decimal"

// ValuationView is the render-ready portfolio composition model feeding the
// proportional (pie-style) visualization. Labels, Values and Shares are
// parallel; Shares sum to 1 unless the view is empty.
type ValuationView struct {
	Labels []string
	Values []float64
	Shares []float64
	Total  decimal.Decimal
}

// Empty reports whether the view carries no holdings. An empty view is valid
// and renders as a placeholder, never as an error.
func (v *ValuationView) Empty() bool { return v == nil || len(v.Labels) == 0 }

// TrendPoint is one chronological point of the balance trend.
type TrendPoint struct {
	Label   string
	Balance int64
}

// BalanceTrendView is the render-ready balance history model, oldest first.
type BalanceTrendView struct {
	Points []TrendPoint
}

func (v *BalanceTrendView) Empty() bool { return v == nil || len(v.Points) == 0 }

// SeriesView is a single-ticker windowed price series. Values carry the open
// price of each retained sample; labels are the HH:mm of each sample.
type SeriesView struct {
	Company string
	Labels  []string
	Values  []float64
}

func (v *SeriesView) Empty() bool { return v == nil || len(v.Labels) == 0 }

// CombinedSeriesView aligns several tickers on one shared label axis taken
// from the first surviving series. Values[i] carries the close prices of
// Companies[i] and keeps that series' own length.
type CombinedSeriesView struct {
	Labels    []string
	Companies []string
	Values    [][]float64
}

func (v *CombinedSeriesView) Empty() bool { return v == nil || len(v.Companies) == 0 }
