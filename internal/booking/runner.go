package booking

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/turno-scheduler/internal/browser"
	"github.com/example/turno-scheduler/internal/config"
	"github.com/example/turno-scheduler/internal/schedule"
)

// Recorder persists per-phase outcomes of a run. A nil Recorder disables
// recording.
type Recorder interface {
	Phase(ctx context.Context, phase string, success bool, detail string) error
}

// Result is what a completed run produced. ArtifactPath is empty when the
// run finished without a confirmation document, which is a reported outcome
// rather than an error.
type Result struct {
	VisitDate    time.Time
	ArtifactPath string
}

// Runner drives one booking attempt end to end: compute the visit date,
// wait for the release instant, poll availability, fill and submit. All
// phases share the single browser page and run strictly in sequence.
type Runner struct {
	Cfg     config.Config
	Driver  browser.Driver
	History Recorder

	Now   func() time.Time
	Sleep func(time.Duration)
}

func (r *Runner) Run(ctx context.Context) (Result, error) {
	now := r.Now
	if now == nil {
		now = time.Now
	}
	local := func() time.Time { return now().In(r.Cfg.Timezone) }

	visit := schedule.NextVisitDate(local())
	log.Printf("run: visit date %s", visit.Format("02/01/2006"))

	if err := os.MkdirAll(r.Cfg.DownloadDir, 0o755); err != nil {
		return Result{}, err
	}

	nav := &Navigator{
		Driver:        r.Driver,
		URL:           r.Cfg.PortalURL,
		ReadySelector: unitSelectSelector,
		MaxRetries:    r.Cfg.NavMaxRetries,
		Timeout:       r.Cfg.NavTimeout,
		Sleep:         r.Sleep,
	}
	poller := &Poller{
		Driver:   r.Driver,
		Nav:      nav,
		Unit:     r.Cfg.Applicant.Unit,
		Interval: r.Cfg.PollInterval,
		Sleep:    r.Sleep,
	}
	filler := &Filler{Driver: r.Driver, Applicant: r.Cfg.Applicant}
	submitter := &Submitter{
		Driver:      r.Driver,
		Poller:      poller,
		Filler:      filler,
		DownloadDir: r.Cfg.DownloadDir,
		Window:      r.Cfg.SubmitWindow,
		Now:         local,
		Sleep:       r.Sleep,
	}

	if r.Cfg.TestMode {
		log.Printf("run: test mode, skipping release wait and availability poll")
		if err := poller.Prepare(); err != nil {
			r.record(ctx, "availability", false, err.Error())
			return Result{}, err
		}
	} else {
		target := schedule.ResolveTargetInstant(r.Cfg.TargetTime, local())
		log.Printf("run: waiting for release instant %s", target.Format(time.RFC3339))
		waiter := &schedule.Waiter{Now: local, Sleep: r.Sleep}
		if err := waiter.WaitUntil(target); err != nil {
			return Result{}, err
		}

		ok, err := poller.Wait(visit.Format(isoDateLayout), NewBudgetAt(r.Cfg.PollBudget, now))
		if err != nil {
			r.record(ctx, "availability", false, err.Error())
			return Result{}, err
		}
		if !ok {
			r.record(ctx, "availability", false, "date not selectable within budget")
			return Result{VisitDate: visit}, nil
		}
	}
	r.record(ctx, "availability", true, "")

	log.Printf("run: filling form for %s", visit.Format("02/01/2006"))
	if err := filler.Fill(visit); err != nil {
		r.record(ctx, "fill", false, err.Error())
		return Result{}, err
	}
	r.record(ctx, "fill", true, "")

	artifact, err := submitter.Submit(visit, NewBudgetAt(r.Cfg.SubmitBudget, now))
	if err != nil {
		r.record(ctx, "submit", false, err.Error())
		return Result{}, err
	}
	if artifact == "" {
		r.record(ctx, "submit", false, "no download within budget")
		return Result{VisitDate: visit}, nil
	}
	r.record(ctx, "submit", true, artifact)

	return Result{VisitDate: visit, ArtifactPath: artifact}, nil
}

func (r *Runner) record(ctx context.Context, phase string, success bool, detail string) {
	if r.History == nil {
		return
	}
	if err := r.History.Phase(ctx, phase, success, detail); err != nil {
		log.Printf("run: recording %s phase: %v", phase, err)
	}
}
