package booking

import (
	"fmt"
	"log"
	"time"

	"github.com/example/turno-scheduler/internal/browser"
)

// Navigator wraps a single page load with bounded retries. A load counts as
// successful only once the ready selector is visible; the navigation event
// alone is not trusted.
type Navigator struct {
	Driver        browser.Driver
	URL           string
	ReadySelector string
	MaxRetries    int
	Timeout       time.Duration

	Sleep func(time.Duration)
}

func (n *Navigator) Open() error {
	sleep := n.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	var lastErr error
	for attempt := 1; attempt <= n.MaxRetries; attempt++ {
		err := n.Driver.Navigate(n.URL, n.Timeout)
		if err == nil {
			err = n.Driver.WaitForControl(n.ReadySelector, n.Timeout)
		}
		if err == nil {
			return nil
		}
		lastErr = err
		log.Printf("booking: load attempt %d/%d failed: %v", attempt, n.MaxRetries, err)
		if attempt < n.MaxRetries {
			sleep(backoff(attempt))
		}
	}
	return fmt.Errorf("page not ready after %d attempts: %w", n.MaxRetries, lastErr)
}
