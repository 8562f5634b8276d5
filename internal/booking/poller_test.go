package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPoller(d *fakeDriver, clk *fakeClock) *Poller {
	return &Poller{
		Driver:   d,
		Nav:      newTestNavigator(d, clk, 3),
		Unit:     "Unidad 16, PEREZ",
		Interval: 5 * time.Second,
		Sleep:    clk.Sleep,
	}
}

func TestPollerAbsentConstraintMeansNoRestriction(t *testing.T) {
	d := &fakeDriver{} // GetAttribute yields ""
	clk := &fakeClock{t: time.Now()}
	p := newTestPoller(d, clk)

	ok, err := p.Wait("2026-02-18", NewBudgetAt(300*time.Second, clk.Now))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, d.attrCalls)
	assert.Empty(t, clk.sleeps)
}

func TestPollerSucceedsOnKthRead(t *testing.T) {
	d := &fakeDriver{attrs: []string{"2026-02-11", "2026-02-11", "2026-02-18"}}
	clk := &fakeClock{t: time.Now()}
	p := newTestPoller(d, clk)

	ok, err := p.Wait("2026-02-18", NewBudgetAt(300*time.Second, clk.Now))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, d.attrCalls, "exactly k reads")
	assert.Equal(t, []time.Duration{5 * time.Second, 5 * time.Second}, clk.sleeps, "k-1 sleeps")
}

func TestPollerConstraintPastTargetIsSelectable(t *testing.T) {
	d := &fakeDriver{attrs: []string{"2026-03-01"}}
	clk := &fakeClock{t: time.Now()}
	p := newTestPoller(d, clk)

	ok, err := p.Wait("2026-02-18", NewBudgetAt(300*time.Second, clk.Now))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPollerGivesUpWhenBudgetExpires(t *testing.T) {
	d := &fakeDriver{attrs: []string{"2026-02-11"}}
	clk := &fakeClock{t: time.Now()}
	p := newTestPoller(d, clk)

	ok, err := p.Wait("2026-02-18", NewBudgetAt(12*time.Second, clk.Now))
	require.NoError(t, err)
	assert.False(t, ok, "budget exhaustion is a failure, not an error")
	assert.GreaterOrEqual(t, d.attrCalls, 3)
}

func TestPollerPropagatesNavigatorExhaustion(t *testing.T) {
	boom := errors.New("timeout")
	d := &fakeDriver{navErrs: []error{boom, boom, boom}}
	clk := &fakeClock{t: time.Now()}
	p := newTestPoller(d, clk)

	_, err := p.Wait("2026-02-18", NewBudgetAt(300*time.Second, clk.Now))
	require.Error(t, err)
	assert.Zero(t, d.attrCalls)
}

func TestPollerLeavesUnitSelected(t *testing.T) {
	d := &fakeDriver{}
	clk := &fakeClock{t: time.Now()}
	p := newTestPoller(d, clk)

	ok, err := p.Wait("2026-02-18", NewBudgetAt(300*time.Second, clk.Now))
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, d.selects, 1)
	assert.Equal(t, [2]string{unitSelectSelector, "Unidad 16, PEREZ"}, d.selects[0])
}
