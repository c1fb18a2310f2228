package model

// QuoteSeries holds one ticker's price history as returned by the quote
// service: parallel arrays indexed together.
type QuoteSeries struct {
	Company   string    `json:"-"`
	Timestamp []string  `json:"timestamp"`
	Open      []float64 `json:"open"`
	Close     []float64 `json:"close"`
	Low       []float64 `json:"low"`
}

// LastClose returns the most recent close price, if any.
func (q *QuoteSeries) LastClose() (float64, bool) {
	if q == nil || len(q.Close) == 0 {
		return 0, false
	}
	return q.Close[len(q.Close)-1], true
}
