package aggregate

import (
	"PortfolioDeck/internal/model"

	"github.com/shopspring/decimal"
)

// BuildValuation projects raw holdings into the portfolio composition view.
// Each holding is worth quantity times average price; shares are fractions of
// the total. An empty holdings list yields a valid empty view, never an error.
func BuildValuation(holdings []model.Holding) *model.ValuationView {
	view := &model.ValuationView{Total: decimal.Zero}

	values := make([]decimal.Decimal, 0, len(holdings))
	for _, h := range holdings {
		value := h.AvgPrice.Mul(decimal.NewFromInt(h.Quantity))
		values = append(values, value)
		view.Labels = append(view.Labels, h.Company)
		view.Values = append(view.Values, value.InexactFloat64())
		view.Total = view.Total.Add(value)
	}

	view.Shares = make([]float64, len(values))
	if view.Total.IsPositive() {
		for i, value := range values {
			view.Shares[i] = value.Div(view.Total).InexactFloat64()
		}
	}
	return view
}
