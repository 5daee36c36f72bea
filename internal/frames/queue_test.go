package frames

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPendingRunsEachRequestOnce(t *testing.T) {
	var q Queue
	calls := 0
	q.RequestFrame(func() { calls++ })
	q.RequestFrame(func() { calls++ })

	require.Equal(t, 2, q.Pending())
	assert.Equal(t, 2, q.RunPending())
	assert.Equal(t, 2, calls)
	assert.Equal(t, 0, q.RunPending())
	assert.Equal(t, 2, calls)
}

func TestRescheduleDuringRunIsDeferred(t *testing.T) {
	var q Queue
	ticks := 0
	var tick func()
	tick = func() {
		ticks++
		q.RequestFrame(tick)
	}
	q.RequestFrame(tick)

	for i := 0; i < 5; i++ {
		assert.Equal(t, 1, q.RunPending())
	}
	assert.Equal(t, 5, ticks)
	assert.Equal(t, 1, q.Pending())
}

func TestCancelFrame(t *testing.T) {
	var q Queue
	called := false
	h := q.RequestFrame(func() { called = true })
	assert.NotZero(t, h)

	q.CancelFrame(h)
	q.CancelFrame(h)
	q.CancelFrame(Handle(999))

	assert.Equal(t, 0, q.RunPending())
	assert.False(t, called)
}

func TestCancelLaterCallbackInSameFrame(t *testing.T) {
	var q Queue
	var second Handle
	secondRan := false
	q.RequestFrame(func() { q.CancelFrame(second) })
	second = q.RequestFrame(func() { secondRan = true })

	assert.Equal(t, 1, q.RunPending())
	assert.False(t, secondRan)
}

func TestHandlesAreUnique(t *testing.T) {
	var q Queue
	seen := map[Handle]bool{}
	for i := 0; i < 100; i++ {
		h := q.RequestFrame(func() {})
		require.False(t, seen[h])
		seen[h] = true
	}
}
