package series

import (
	"testing"

	"PortfolioDeck/internal/model"
)

func sampleSeries(company string, stamps []string, closes []float64) *model.QuoteSeries {
	return &model.QuoteSeries{Company: company, Timestamp: stamps, Close: closes}
}

func TestCombine_FirstSeriesDefinesAxis(t *testing.T) {
	stamps := []string{"2025-03-10 09:00:00", "2025-03-10 10:00:00"}
	other := []string{"2025-03-10 09:30:00", "2025-03-10 10:30:00"}

	v := Combine([]*model.QuoteSeries{
		sampleSeries("AAPL", stamps, []float64{10, 11}),
		sampleSeries("MSFT", other, []float64{20, 21}),
	})

	want := []string{"09:00", "10:00"}
	if len(v.Labels) != len(want) {
		t.Fatalf("got %d labels, want %d", len(v.Labels), len(want))
	}
	for i := range want {
		if v.Labels[i] != want[i] {
			t.Errorf("label[%d] = %s, want %s", i, v.Labels[i], want[i])
		}
	}
	if len(v.Companies) != 2 || v.Companies[0] != "AAPL" || v.Companies[1] != "MSFT" {
		t.Errorf("companies = %v", v.Companies)
	}
	if v.Values[1][0] != 20 {
		t.Errorf("second series kept its own closes, got %v", v.Values[1])
	}
}

func TestCombine_DropsNilAndEmptySeries(t *testing.T) {
	stamps := []string{"2025-03-10 09:00:00"}
	v := Combine([]*model.QuoteSeries{
		nil,
		sampleSeries("EMPTY", nil, nil),
		sampleSeries("GOOG", stamps, []float64{5}),
	})
	if len(v.Companies) != 1 || v.Companies[0] != "GOOG" {
		t.Fatalf("companies = %v, want [GOOG]", v.Companies)
	}
	if v.Labels[0] != "09:00" {
		t.Errorf("axis should come from the first surviving series, got %v", v.Labels)
	}
}

func TestCombine_AllDropped(t *testing.T) {
	v := Combine([]*model.QuoteSeries{nil, nil})
	if !v.Empty() {
		t.Error("expected empty view when no series survive")
	}
}

func TestCombine_CopiesCloses(t *testing.T) {
	closes := []float64{1, 2}
	q := sampleSeries("AAPL", []string{"2025-03-10 09:00:00", "2025-03-10 10:00:00"}, closes)
	v := Combine([]*model.QuoteSeries{q})
	closes[0] = 99
	if v.Values[0][0] != 1 {
		t.Error("combined view should not alias the source slice")
	}
}
