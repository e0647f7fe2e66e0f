package domain

import "testing"

func TestTumblerDrink_ClampsToRemaining(t *testing.T) {
	tb := NewTumbler(1000)

	actual := tb.Drink(150)
	if actual != 150 {
		t.Fatalf("expected actual 150, got %d", actual)
	}
	if tb.CurrentMl != 850 {
		t.Fatalf("expected 850 remaining, got %d", tb.CurrentMl)
	}

	// Requesting more than remains drains the vessel and the logged amount
	// is the pre-drink volume, never the request.
	actual = tb.Drink(900)
	if actual != 850 {
		t.Fatalf("expected actual 850, got %d", actual)
	}
	if tb.CurrentMl != 0 {
		t.Fatalf("expected empty tumbler, got %d", tb.CurrentMl)
	}
}

func TestTumblerDrink_NoOps(t *testing.T) {
	tests := []struct {
		name    string
		current int
		amount  int
	}{
		{"empty tumbler", 0, 150},
		{"zero amount", 500, 0},
		{"negative amount", 500, -50},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tb := Tumbler{CapacityMl: 800, CurrentMl: tc.current}
			if actual := tb.Drink(tc.amount); actual != 0 {
				t.Fatalf("expected no-op, got actual %d", actual)
			}
			if tb.CurrentMl != tc.current {
				t.Fatalf("volume changed on no-op: %d -> %d", tc.current, tb.CurrentMl)
			}
		})
	}
}

func TestTumblerRefill(t *testing.T) {
	for _, current := range []int{0, 123, 800} {
		tb := Tumbler{CapacityMl: 800, CurrentMl: current}
		tb.Refill()
		if tb.CurrentMl != 800 {
			t.Fatalf("refill from %d: expected 800, got %d", current, tb.CurrentMl)
		}
	}
}

func TestTumblerDerivedViews(t *testing.T) {
	tb := NewTumbler(800)
	if !tb.Full() || tb.Empty() {
		t.Fatal("new tumbler should be full")
	}
	if pct := tb.FillPercentage(); pct != 100 {
		t.Fatalf("expected 100%%, got %v", pct)
	}
	tb.Drink(800)
	if !tb.Empty() || tb.Full() {
		t.Fatal("drained tumbler should be empty")
	}
	if pct := tb.FillPercentage(); pct != 0 {
		t.Fatalf("expected 0%%, got %v", pct)
	}
}
