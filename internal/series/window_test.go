package series

import (
	"testing"
	"time"

	"PortfolioDeck/internal/model"
)

// hourly builds a series with one sample per hour ending at end.
func hourly(company string, end time.Time, count int) *model.QuoteSeries {
	q := &model.QuoteSeries{Company: company}
	for i := count - 1; i >= 0; i-- {
		ts := end.Add(-time.Duration(i) * time.Hour)
		q.Timestamp = append(q.Timestamp, ts.Format(model.Stamp))
		q.Open = append(q.Open, 100+float64(i))
		q.Close = append(q.Close, 101+float64(i))
		q.Low = append(q.Low, 99+float64(i))
	}
	return q
}

func TestWindowLast24h_Bounds(t *testing.T) {
	end := time.Date(2025, 3, 10, 15, 30, 0, 0, quoteZone)
	q := hourly("AAPL", end, 48)

	v, err := WindowLast24h(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 24h window inclusive at both ends: 25 hourly samples.
	if len(v.Labels) != 25 {
		t.Fatalf("retained %d samples, want 25", len(v.Labels))
	}
	if len(v.Labels) > len(q.Timestamp) {
		t.Error("output longer than input")
	}

	cutoff := end.Add(-24 * time.Hour)
	for _, label := range v.Labels {
		if len(label) != 5 || label[2] != ':' {
			t.Errorf("label %q is not HH:mm", label)
		}
	}
	// First retained sample is exactly the cutoff, last is the latest.
	if v.Labels[0] != cutoff.Format("15:04") {
		t.Errorf("first label = %s, want %s", v.Labels[0], cutoff.Format("15:04"))
	}
	if v.Labels[len(v.Labels)-1] != end.Format("15:04") {
		t.Errorf("last label = %s, want %s", v.Labels[len(v.Labels)-1], end.Format("15:04"))
	}
}

func TestWindowLast24h_UsesOpenPrices(t *testing.T) {
	end := time.Date(2025, 3, 10, 12, 0, 0, 0, quoteZone)
	q := hourly("AAPL", end, 3)

	v, err := WindowLast24h(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, value := range v.Values {
		// hourly assigns open = 100 + hours-before-end.
		want := 100 + float64(len(q.Open)-1-i)
		if value != want {
			t.Errorf("value[%d] = %f, want open price %f", i, value, want)
		}
	}
}

func TestWindowLast24h_Empty(t *testing.T) {
	v, err := WindowLast24h(&model.QuoteSeries{Company: "AAPL"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Empty() {
		t.Error("expected empty view for empty series")
	}
}

func TestWindowLast24h_BadLatestTimestamp(t *testing.T) {
	q := &model.QuoteSeries{Timestamp: []string{"not a timestamp"}, Open: []float64{1}}
	if _, err := WindowLast24h(q); err == nil {
		t.Error("expected error for unparsable latest sample")
	}
}

func TestWindowLast24h_SkipsUnparsableSamples(t *testing.T) {
	end := time.Date(2025, 3, 10, 12, 0, 0, 0, quoteZone)
	q := hourly("AAPL", end, 3)
	q.Timestamp[1] = "garbage"

	v, err := WindowLast24h(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(v.Labels) != 2 {
		t.Errorf("retained %d samples, want 2", len(v.Labels))
	}
}

func TestWindowLast24h_AllSamplesWithinWindow(t *testing.T) {
	end := time.Date(2025, 3, 10, 9, 0, 0, 0, quoteZone)
	for _, count := range []int{1, 5, 30} {
		q := hourly("X", end, count)
		v, err := WindowLast24h(q)
		if err != nil {
			t.Fatalf("count %d: %v", count, err)
		}
		want := count
		if want > 25 {
			want = 25
		}
		if len(v.Values) != want {
			t.Errorf("count %d: retained %d, want %d", count, len(v.Values), want)
		}
	}
}
