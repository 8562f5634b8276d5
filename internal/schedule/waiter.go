package schedule

import (
	"errors"
	"fmt"
	"time"
)

// MaxWait bounds how far ahead the target instant may be. The external
// trigger (cron) is expected to fire 10-30 seconds early; anything beyond
// this ceiling means the trigger or the clock is misconfigured.
const MaxWait = 5 * time.Minute

var ErrTargetTooFar = errors.New("target instant too far in the future")

// Waiter blocks until a target instant, sleeping coarsely while far away and
// in small steps near the target to return within ~100ms of it.
type Waiter struct {
	Now   func() time.Time
	Sleep func(time.Duration)
}

func (w *Waiter) WaitUntil(target time.Time) error {
	now := w.now()
	sleep := w.sleep()

	remaining := target.Sub(now())
	if remaining <= 0 {
		return nil
	}
	if remaining > MaxWait {
		return fmt.Errorf("%w: %s away (max %s)", ErrTargetTooFar, remaining.Round(time.Second), MaxWait)
	}

	for {
		remaining = target.Sub(now())
		switch {
		case remaining <= 0:
			return nil
		case remaining > 2*time.Second:
			sleep(time.Second)
		case remaining > 50*time.Millisecond:
			sleep(10 * time.Millisecond)
		default:
			sleep(remaining)
			return nil
		}
	}
}

func (w *Waiter) now() func() time.Time {
	if w.Now != nil {
		return w.Now
	}
	return time.Now
}

func (w *Waiter) sleep() func(time.Duration) {
	if w.Sleep != nil {
		return w.Sleep
	}
	return time.Sleep
}
