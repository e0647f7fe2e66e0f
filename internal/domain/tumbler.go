package domain

// DefaultTumblerCapacityMl is the device-level capacity used when none is
// configured.
const DefaultTumblerCapacityMl = 800

// Tumbler models the bounded vessel whose remaining volume is simulated per
// user. The only state is CurrentMl in [0, CapacityMl]; "empty", "partial"
// and "full" are derived views.
type Tumbler struct {
	CapacityMl int `json:"capacityMl"`
	CurrentMl  int `json:"currentMl"`
}

// NewTumbler returns a tumbler initialized to full capacity.
func NewTumbler(capacityMl int) Tumbler {
	return Tumbler{CapacityMl: capacityMl, CurrentMl: capacityMl}
}

// Drink removes up to amountMl from the tumbler and returns the amount
// actually consumed, which is what must be logged. Requests that exceed the
// remaining volume drain the tumbler; non-positive requests and drinking
// from an empty tumbler are no-ops returning 0.
func (t *Tumbler) Drink(amountMl int) int {
	actual := amountMl
	if actual > t.CurrentMl {
		actual = t.CurrentMl
	}
	if actual <= 0 {
		return 0
	}
	t.CurrentMl -= actual
	return actual
}

// Refill restores the tumbler to full capacity regardless of prior state.
func (t *Tumbler) Refill() {
	t.CurrentMl = t.CapacityMl
}

// Empty reports whether the tumbler is drained.
func (t *Tumbler) Empty() bool { return t.CurrentMl == 0 }

// Full reports whether the tumbler is at capacity.
func (t *Tumbler) Full() bool { return t.CurrentMl == t.CapacityMl }

// FillPercentage returns the remaining volume as a percentage of capacity.
func (t *Tumbler) FillPercentage() float64 {
	if t.CapacityMl <= 0 {
		return 0
	}
	return float64(t.CurrentMl) / float64(t.CapacityMl) * 100
}
