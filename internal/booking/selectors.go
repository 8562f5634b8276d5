package booking

import "time"

// Selectors for the seturnosweb form. The portal exposes no ids or names,
// so fields are located by placeholder text and element order.
const (
	unitSelectSelector   = "select >> nth=0"
	minorsSelectSelector = "select >> nth=1"
	nameSelector         = `input[placeholder="Nombre*"]`
	surnameSelector      = `input[placeholder="Apellido*"]`
	documentSelector     = `input[placeholder="DOCUMENTO*"]`
	dateInputSelector    = `input[type="date"]`
	submitButtonSelector = `button:has-text("Generar Turno")`

	// maxDateAttribute is the form's availability constraint: the latest
	// date currently selectable in the visit date picker.
	maxDateAttribute = "max"
)

const isoDateLayout = "2006-01-02"

// backoff returns min(2^attempt, 15) seconds.
func backoff(attempt int) time.Duration {
	if attempt >= 4 {
		return 15 * time.Second
	}
	return time.Duration(1<<uint(attempt)) * time.Second
}
