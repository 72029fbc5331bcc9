package ticketing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDeferredTasksSchedule(t *testing.T) {
	d := NewDeferredTasks()
	fired := make(chan struct{})

	d.Schedule("key", 10*time.Millisecond, func() {
		close(fired)
	})

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("task never fired")
	}

	// Once fired there is nothing to cancel.
	require.False(t, d.Cancel("key"))
}

func TestDeferredTasksCancel(t *testing.T) {
	d := NewDeferredTasks()
	fired := make(chan struct{}, 1)

	d.Schedule("key", 50*time.Millisecond, func() {
		fired <- struct{}{}
	})

	require.True(t, d.Cancel("key"))

	select {
	case <-fired:
		t.Fatal("task fired after cancellation")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestDeferredTasksReschedulingReplaces(t *testing.T) {
	d := NewDeferredTasks()
	fired := make(chan string, 2)

	d.Schedule("key", 50*time.Millisecond, func() {
		fired <- "first"
	})
	d.Schedule("key", 10*time.Millisecond, func() {
		fired <- "second"
	})

	select {
	case got := <-fired:
		require.Equal(t, "second", got)
	case <-time.After(time.Second):
		t.Fatal("task never fired")
	}

	// The replaced task stays dead.
	select {
	case <-fired:
		t.Fatal("replaced task fired")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestDeferredTasksCancelUnknownKey(t *testing.T) {
	d := NewDeferredTasks()
	require.False(t, d.Cancel("missing"))
}
