package booking

import (
	"log"
	"time"

	"github.com/example/turno-scheduler/internal/browser"
)

// Poller reloads the form until the desired visit date becomes selectable.
type Poller struct {
	Driver   browser.Driver
	Nav      *Navigator
	Unit     string
	Interval time.Duration

	Sleep func(time.Duration)
}

// Prepare loads the form and selects the unit, leaving the page ready for
// the filler. Later stages reuse the loaded page instead of reloading.
func (p *Poller) Prepare() error {
	if err := p.Nav.Open(); err != nil {
		return err
	}
	return p.Driver.SelectOption(unitSelectSelector, p.Unit)
}

// Wait polls until visitDate (ISO formatted) is within the form's date
// constraint or the budget expires. Budget exhaustion is a normal outcome,
// not an error; errors are reserved for the navigator giving up.
func (p *Poller) Wait(visitDate string, budget *Budget) (bool, error) {
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	for {
		ok, err := p.check(visitDate)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
		if budget.Expired() {
			log.Printf("booking: date %s not selectable within budget", visitDate)
			return false, nil
		}
		sleep(p.Interval)
	}
}

func (p *Poller) check(visitDate string) (bool, error) {
	if err := p.Prepare(); err != nil {
		return false, err
	}
	max, err := p.Driver.GetAttribute(dateInputSelector, maxDateAttribute)
	if err != nil {
		// A flaky read is retried like an unavailable date.
		log.Printf("booking: constraint read failed: %v", err)
		return false, nil
	}
	if max == "" {
		// No constraint advertised means no restriction.
		return true, nil
	}
	// ISO dates order lexicographically.
	return max >= visitDate, nil
}
