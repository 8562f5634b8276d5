package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNavigator(d *fakeDriver, clk *fakeClock, retries int) *Navigator {
	return &Navigator{
		Driver:        d,
		URL:           "https://portal.test/",
		ReadySelector: unitSelectSelector,
		MaxRetries:    retries,
		Timeout:       30 * time.Second,
		Sleep:         clk.Sleep,
	}
}

func TestNavigatorRetriesTransientFailures(t *testing.T) {
	boom := errors.New("net::ERR_CONNECTION_RESET")
	d := &fakeDriver{navErrs: []error{boom, boom, nil}}
	clk := &fakeClock{t: time.Now()}

	err := newTestNavigator(d, clk, 5).Open()
	require.NoError(t, err)

	assert.Equal(t, 3, d.navCalls, "two failures then success means three load attempts")
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, clk.sleeps)
}

func TestNavigatorBacksOffExponentiallyWithCap(t *testing.T) {
	boom := errors.New("timeout")
	d := &fakeDriver{navErrs: []error{boom, boom, boom, boom, boom, nil}}
	clk := &fakeClock{t: time.Now()}

	err := newTestNavigator(d, clk, 10).Open()
	require.NoError(t, err)

	assert.Equal(t, []time.Duration{
		2 * time.Second, 4 * time.Second, 8 * time.Second, 15 * time.Second, 15 * time.Second,
	}, clk.sleeps)
}

func TestNavigatorGivesUpAfterMaxRetries(t *testing.T) {
	boom := errors.New("timeout")
	d := &fakeDriver{navErrs: []error{boom, boom, boom, boom}}
	clk := &fakeClock{t: time.Now()}

	err := newTestNavigator(d, clk, 4).Open()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 4 attempts")
	assert.Equal(t, 4, d.navCalls)
	assert.ErrorIs(t, err, boom)
}

func TestNavigatorMissingControlCountsAsFailure(t *testing.T) {
	notReady := errors.New("control not visible")
	d := &fakeDriver{waitErrs: []error{notReady, nil}}
	clk := &fakeClock{t: time.Now()}

	err := newTestNavigator(d, clk, 3).Open()
	require.NoError(t, err)

	// Navigation succeeded both times; only the readiness check failed once.
	assert.Equal(t, 2, d.navCalls)
	assert.Equal(t, 2, d.waitCalls)
	assert.Equal(t, []time.Duration{2 * time.Second}, clk.sleeps)
}
