package series

import "PortfolioDeck/internal/model"

// Combine aligns several tickers' histories on one shared label axis for the
// multi-ticker trend view. The first surviving series' timestamps define the
// axis; the remaining series are assumed to share its cadence, which is a
// documented precondition rather than something verified here. Nil series and
// series without timestamps are dropped, so a partially failed fetch batch
// still yields a view over whatever arrived.
func Combine(batch []*model.QuoteSeries) *model.CombinedSeriesView {
	view := &model.CombinedSeriesView{}

	for _, q := range batch {
		if q == nil || len(q.Timestamp) == 0 {
			continue
		}
		if view.Labels == nil {
			view.Labels = make([]string, 0, len(q.Timestamp))
			for _, stamp := range q.Timestamp {
				view.Labels = append(view.Labels, model.ClockOf(stamp))
			}
		}
		closes := make([]float64, len(q.Close))
		copy(closes, q.Close)
		view.Companies = append(view.Companies, q.Company)
		view.Values = append(view.Values, closes)
	}
	return view
}
