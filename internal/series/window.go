// Package series aligns and windows quote histories for trend visualization.
package series

import (
	"fmt"
	"time"

	"PortfolioDeck/internal/model"
)

// quoteZone is the fixed UTC-4 offset quote timestamps are quoted in. It is
// a policy constant, never auto-detected from the host.
var quoteZone = time.FixedZone("UTC-4", -4*60*60)

// WindowLast24h restricts a price series to the trailing 24 hours ending at
// its latest sample and keeps the open price of each retained sample. Labels
// are the HH:mm of each sample. The single-ticker view plots open prices;
// the combined view plots closes.
func WindowLast24h(q *model.QuoteSeries) (*model.SeriesView, error) {
	view := &model.SeriesView{}
	if q == nil || len(q.Timestamp) == 0 {
		return view, nil
	}
	view.Company = q.Company

	latest, err := time.ParseInLocation(model.Stamp, q.Timestamp[len(q.Timestamp)-1], quoteZone)
	if err != nil {
		return nil, fmt.Errorf("parse latest sample %q: %w", q.Timestamp[len(q.Timestamp)-1], err)
	}
	cutoff := latest.Add(-24 * time.Hour)

	for i, stamp := range q.Timestamp {
		if i >= len(q.Open) {
			break
		}
		t, err := time.ParseInLocation(model.Stamp, stamp, quoteZone)
		if err != nil {
			continue
		}
		if t.Before(cutoff) || t.After(latest) {
			continue
		}
		view.Labels = append(view.Labels, model.ClockOf(stamp))
		view.Values = append(view.Values, q.Open[i])
	}
	return view, nil
}
