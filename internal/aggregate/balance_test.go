package aggregate

import (
	"fmt"
	"testing"

	"PortfolioDeck/internal/model"
)

func TestBuildBalanceTrend_ReversesToChronological(t *testing.T) {
	// Backend order: newest first.
	statement := []model.StatementEntry{
		{TimeStamp: "2025-03-03 12:00:00", Action: model.ActionDeposit, Amount: 100, Balance: 600},
		{TimeStamp: "2025-03-02 12:00:00", Action: model.ActionWithdraw, Amount: 50, Balance: 500},
		{TimeStamp: "2025-03-01 12:00:00", Action: model.ActionDeposit, Amount: 550, Balance: 550},
	}

	v := BuildBalanceTrend(statement)
	if len(v.Points) != 3 {
		t.Fatalf("points = %d, want 3", len(v.Points))
	}
	if v.Points[0].Label != "2025-03-01" || v.Points[2].Label != "2025-03-03" {
		t.Errorf("labels not chronological: %v", v.Points)
	}
	if v.Points[0].Balance != 550 || v.Points[1].Balance != 500 || v.Points[2].Balance != 600 {
		t.Errorf("balances out of order: %v", v.Points)
	}
}

func TestBuildBalanceTrend_KeepsMostRecentTen(t *testing.T) {
	var statement []model.StatementEntry
	for i := 0; i < 15; i++ {
		statement = append(statement, model.StatementEntry{
			TimeStamp: fmt.Sprintf("2025-03-%02d 09:00:00", 15-i),
			Balance:   int64(1000 - i),
		})
	}

	v := BuildBalanceTrend(statement)
	if len(v.Points) != 10 {
		t.Fatalf("points = %d, want 10", len(v.Points))
	}
	// The 10 newest entries, oldest of them first.
	if v.Points[0].Balance != 991 {
		t.Errorf("first point balance = %d, want 991", v.Points[0].Balance)
	}
	if v.Points[9].Balance != 1000 {
		t.Errorf("last point balance = %d, want 1000", v.Points[9].Balance)
	}
}

func TestBuildBalanceTrend_Empty(t *testing.T) {
	v := BuildBalanceTrend(nil)
	if !v.Empty() {
		t.Error("expected empty view for empty statement")
	}
}

func TestCash(t *testing.T) {
	if got := Cash(300, "USD").Display(); got != "$300.00" {
		t.Errorf("Cash(300, USD) = %s", got)
	}
	// Unknown currency code falls back to USD formatting.
	if got := Cash(5, "???").Display(); got != "$5.00" {
		t.Errorf("Cash(5, ???) = %s", got)
	}
}
