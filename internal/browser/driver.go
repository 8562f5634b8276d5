package browser

import "time"

// Download is a file produced by the page in response to a click.
type Download interface {
	SaveAs(path string) error
	SuggestedFilename() string
}

// Driver is the minimal surface the booking flow needs from a browser. The
// real implementation drives a headless chromium page via playwright; tests
// substitute fakes.
type Driver interface {
	// Navigate loads url and returns once the DOM is ready. It deliberately
	// does not wait for network idle: the portal keeps connections open and
	// that signal times out spuriously. Callers confirm readiness with
	// WaitForControl.
	Navigate(url string, timeout time.Duration) error

	// WaitForControl blocks until the element matching selector is visible.
	WaitForControl(selector string, timeout time.Duration) error

	Fill(selector, value string) error
	SelectOption(selector, value string) error
	Click(selector string) error

	// ExpectDownload runs trigger and waits up to timeout for the page to
	// start a download in response.
	ExpectDownload(timeout time.Duration, trigger func() error) (Download, error)

	// Screenshot captures the full page to path.
	Screenshot(path string) error

	// GetAttribute reads an attribute off the first element matching
	// selector. A present element with the attribute unset yields "".
	GetAttribute(selector, name string) (string, error)
}
