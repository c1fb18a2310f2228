package model

import "github.com/shopspring/decimal"

// Equity ledger actions as stored by the backend.
const (
	ActionBuy       = "BUY"
	ActionSell      = "SELL"
	ActionLiquidate = "LIQUIDATE"
)

// Settlement account actions as stored by the backend.
const (
	ActionDeposit  = "DEPOSIT"
	ActionWithdraw = "WITHDRAW"
	ActionPurchase = "PURCHASE"
)

// Stamp is the timestamp format used on the wire by both backend and
// quote service: "YYYY-MM-DD HH:mm:ss", no zone designator.
const Stamp = "2006-01-02 15:04:05"

// Holding is one current position: unique per company, created on first buy,
// removed by the backend once quantity reaches zero.
type Holding struct {
	Company   string          `json:"company"`
	Quantity  int64           `json:"quantity"`
	AvgPrice  decimal.Decimal `json:"avg_price"`
	TimeStamp string          `json:"time_stamp"`
}

// Transaction is one immutable row of the equity ledger. The backend returns
// transactions newest first.
type Transaction struct {
	TimeStamp string          `json:"time_stamp"`
	Company   string          `json:"company"`
	Action    string          `json:"action"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
}

// StatementEntry is one row of the cash ledger. Balance is the authoritative
// running balance after the entry; the ledger is integer-denominated.
type StatementEntry struct {
	TimeStamp string `json:"time_stamp"`
	Action    string `json:"action"`
	Amount    int64  `json:"transaction_amount"`
	Balance   int64  `json:"current_balance"`
}

// DateOf returns the calendar-date portion of a wire timestamp.
func DateOf(stamp string) string {
	if len(stamp) < 10 {
		return stamp
	}
	return stamp[:10]
}

// ClockOf returns the HH:mm portion of a wire timestamp.
func ClockOf(stamp string) string {
	if len(stamp) < 16 {
		return stamp
	}
	return stamp[11:16]
}
