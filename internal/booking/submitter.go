package booking

import (
	"fmt"
	"log"
	"time"

	"github.com/example/turno-scheduler/internal/browser"
)

// Submitter clicks the generate button until a confirmation download
// materializes or the budget runs out. The portal rejects submissions when
// its human-verification challenge is unsolved; that rejection looks exactly
// like a network fault here and is retried the same way.
type Submitter struct {
	Driver      browser.Driver
	Poller      *Poller
	Filler      *Filler
	DownloadDir string
	// Window is how long each attempt waits for the download to start.
	Window time.Duration

	Now   func() time.Time
	Sleep func(time.Duration)
}

// Submit returns the saved artifact path, or "" when the budget expired
// without a download. Between attempts the page is fully reloaded and
// refilled, since a failed submission can leave the form in any state.
func (s *Submitter) Submit(visitDate time.Time, budget *Budget) (string, error) {
	now := s.Now
	if now == nil {
		now = time.Now
	}
	sleep := s.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	for attempt := 1; ; attempt++ {
		if budget.Expired() {
			log.Printf("booking: submission budget exhausted after %d attempts", attempt-1)
			return "", nil
		}

		dl, err := s.Driver.ExpectDownload(s.Window, func() error {
			return s.Driver.Click(submitButtonSelector)
		})
		if err == nil {
			path := artifactPath(s.DownloadDir, "turno", downloadExt(dl), now())
			if err := dl.SaveAs(path); err != nil {
				return "", fmt.Errorf("save confirmation: %w", err)
			}
			log.Printf("booking: confirmation saved to %s", path)
			return path, nil
		}

		log.Printf("booking: submit attempt %d failed: %v", attempt, err)
		s.captureDiagnostic(now())

		if budget.Expired() {
			log.Printf("booking: submission budget exhausted after %d attempts", attempt)
			return "", nil
		}
		sleep(backoff(attempt))

		if err := s.reload(visitDate); err != nil {
			log.Printf("booking: reload before retry failed: %v", err)
		}
	}
}

// captureDiagnostic saves a best-effort screenshot of the failed state. Its
// own failure is reported only through the return value so it can never
// mask the submission error being diagnosed.
func (s *Submitter) captureDiagnostic(now time.Time) bool {
	path := artifactPath(s.DownloadDir, "error", "png", now)
	if err := s.Driver.Screenshot(path); err != nil {
		log.Printf("booking: diagnostic screenshot failed: %v", err)
		return false
	}
	log.Printf("booking: diagnostic screenshot saved to %s", path)
	return true
}

func (s *Submitter) reload(visitDate time.Time) error {
	if err := s.Poller.Prepare(); err != nil {
		return err
	}
	return s.Filler.Fill(visitDate)
}
