package booking

import (
	"errors"
	"time"

	"github.com/example/turno-scheduler/internal/browser"
)

// fakeDriver scripts per-call outcomes and records every interaction so
// tests can assert attempt counts and field values.
type fakeDriver struct {
	navCalls  int
	waitCalls int
	shotCalls int
	dlCalls   int
	attrCalls int

	fills   [][2]string
	selects [][2]string

	navErrs  []error
	waitErrs []error

	// attrs is the sequence of constraint reads; the last entry repeats
	// once the script is exhausted. Empty script means "no constraint".
	attrs []string

	// dls scripts ExpectDownload outcomes; exhausted script keeps failing.
	dls []dlResult

	shotErr error
}

type dlResult struct {
	dl  browser.Download
	err error
}

type fakeDownload struct {
	name    string
	saved   []string
	saveErr error
}

func (d *fakeDownload) SaveAs(path string) error {
	d.saved = append(d.saved, path)
	return d.saveErr
}

func (d *fakeDownload) SuggestedFilename() string { return d.name }

func errAt(errs []error, i int) error {
	if i < len(errs) {
		return errs[i]
	}
	return nil
}

func (f *fakeDriver) Navigate(url string, timeout time.Duration) error {
	f.navCalls++
	return errAt(f.navErrs, f.navCalls-1)
}

func (f *fakeDriver) WaitForControl(selector string, timeout time.Duration) error {
	f.waitCalls++
	return errAt(f.waitErrs, f.waitCalls-1)
}

func (f *fakeDriver) Fill(selector, value string) error {
	f.fills = append(f.fills, [2]string{selector, value})
	return nil
}

func (f *fakeDriver) SelectOption(selector, value string) error {
	f.selects = append(f.selects, [2]string{selector, value})
	return nil
}

func (f *fakeDriver) Click(selector string) error { return nil }

func (f *fakeDriver) ExpectDownload(timeout time.Duration, trigger func() error) (browser.Download, error) {
	f.dlCalls++
	if err := trigger(); err != nil {
		return nil, err
	}
	if f.dlCalls-1 < len(f.dls) {
		r := f.dls[f.dlCalls-1]
		return r.dl, r.err
	}
	return nil, errors.New("no download")
}

func (f *fakeDriver) Screenshot(path string) error {
	f.shotCalls++
	return f.shotErr
}

func (f *fakeDriver) GetAttribute(selector, name string) (string, error) {
	f.attrCalls++
	if len(f.attrs) == 0 {
		return "", nil
	}
	i := f.attrCalls - 1
	if i >= len(f.attrs) {
		i = len(f.attrs) - 1
	}
	return f.attrs[i], nil
}

// fakeClock advances only when something sleeps, making elapsed-time budgets
// deterministic in tests.
type fakeClock struct {
	t      time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.t = c.t.Add(d)
}
