package history

import "context"

// RunRecorder binds a repo to one run so the booking flow can record phase
// outcomes without knowing about run ids.
type RunRecorder struct {
	Repo  *Repo
	RunID int64
}

func (r *RunRecorder) Phase(ctx context.Context, phase string, success bool, detail string) error {
	return r.Repo.RecordPhase(ctx, r.RunID, phase, success, detail)
}
