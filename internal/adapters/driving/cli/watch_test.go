package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitSettled(t *testing.T, d *debouncer) settledFile {
	t.Helper()
	select {
	case f := <-d.settled:
		return f
	case <-time.After(2 * time.Second):
		t.Fatal("no settle within timeout")
		return settledFile{}
	}
}

func TestDebouncer_CoalescesBursts(t *testing.T) {
	d := newDebouncer(30 * time.Millisecond)
	ctx := context.Background()

	d.touch(ctx, "a.pdf")
	time.Sleep(10 * time.Millisecond)
	d.touch(ctx, "a.pdf")

	f := waitSettled(t, d)
	assert.Equal(t, "a.pdf", f.path)
	require.True(t, d.accept(f))

	// The burst produced exactly one settle.
	select {
	case extra := <-d.settled:
		t.Fatalf("unexpected second settle for %s", extra.path)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDebouncer_StaleFireRejected(t *testing.T) {
	d := newDebouncer(10 * time.Millisecond)
	ctx := context.Background()

	d.touch(ctx, "a.pdf")
	first := waitSettled(t, d)

	// A write lands after the timer fired but before the settle was
	// handled. The fired timer must not be re-armed; a fresh one takes
	// over and the stale fire is dropped.
	d.touch(ctx, "a.pdf")
	assert.False(t, d.accept(first))

	second := waitSettled(t, d)
	require.True(t, d.accept(second))
	assert.Equal(t, "a.pdf", second.path)
}

func TestDebouncer_IndependentFiles(t *testing.T) {
	d := newDebouncer(10 * time.Millisecond)
	ctx := context.Background()

	d.touch(ctx, "a.pdf")
	d.touch(ctx, "b.pdf")

	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		f := waitSettled(t, d)
		require.True(t, d.accept(f))
		seen[f.path] = true
	}
	assert.True(t, seen["a.pdf"])
	assert.True(t, seen["b.pdf"])
}
