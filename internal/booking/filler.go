package booking

import (
	"time"

	"github.com/example/turno-scheduler/internal/browser"
	"github.com/example/turno-scheduler/internal/config"
)

// Filler populates the applicant fields. It requires a page that is already
// loaded with the unit selected and never navigates; reloading is the
// navigator's job.
type Filler struct {
	Driver    browser.Driver
	Applicant config.Applicant
}

func (f *Filler) Fill(visitDate time.Time) error {
	if err := f.Driver.Fill(nameSelector, f.Applicant.Name); err != nil {
		return err
	}
	if err := f.Driver.Fill(surnameSelector, f.Applicant.Surname); err != nil {
		return err
	}
	if err := f.Driver.Fill(dateInputSelector, visitDate.Format(isoDateLayout)); err != nil {
		return err
	}
	if err := f.Driver.Fill(documentSelector, f.Applicant.Document); err != nil {
		return err
	}
	return f.Driver.SelectOption(minorsSelectSelector, f.Applicant.Minors)
}
