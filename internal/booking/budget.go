package booking

import "time"

// Budget bounds a retry loop by total elapsed time rather than attempt
// count. Loops check Expired at the head and after each attempt.
type Budget struct {
	deadline time.Time
	now      func() time.Time
}

func NewBudget(limit time.Duration) *Budget {
	return NewBudgetAt(limit, time.Now)
}

func NewBudgetAt(limit time.Duration, now func() time.Time) *Budget {
	return &Budget{deadline: now().Add(limit), now: now}
}

func (b *Budget) Remaining() time.Duration {
	r := b.deadline.Sub(b.now())
	if r < 0 {
		return 0
	}
	return r
}

func (b *Budget) Expired() bool {
	return !b.now().Before(b.deadline)
}
