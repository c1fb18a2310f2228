package aggregate

import (
	"PortfolioDeck/internal/model"

	"github.com/Rhymond/go-money"
)

// trendDepth is how many statement entries feed the balance trend.
const trendDepth = 10

// BuildBalanceTrend maps the most recent statement entries to chronological
// (date label, resulting balance) points. The backend delivers newest first;
// the reversal is mandatory so the trend always plots left to right in time.
func BuildBalanceTrend(statement []model.StatementEntry) *model.BalanceTrendView {
	recent := statement
	if len(recent) > trendDepth {
		recent = recent[:trendDepth]
	}

	view := &model.BalanceTrendView{}
	for i := len(recent) - 1; i >= 0; i-- {
		view.Points = append(view.Points, model.TrendPoint{
			Label:   model.DateOf(recent[i].TimeStamp),
			Balance: recent[i].Balance,
		})
	}
	return view
}

// Cash wraps a whole-unit ledger amount for display and comparison. The
// settlement ledger is integer-denominated in major units.
func Cash(amount int64, currency string) *money.Money {
	cur := money.GetCurrency(currency)
	if cur == nil {
		cur = money.GetCurrency(money.USD)
	}
	minor := amount
	for i := 0; i < cur.Fraction; i++ {
		minor *= 10
	}
	return money.New(minor, cur.Code)
}
