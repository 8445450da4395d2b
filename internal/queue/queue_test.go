package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S5 — capacity-2 queue, push A, B, C, then pop twice yields B, C and the
// overflow counter reads 1.
func TestQueueDropOldestOnOverflow(t *testing.T) {
	var dropped []string
	q := New[string](2, func(d string) { dropped = append(dropped, d) })

	q.Push("A")
	q.Push("B")
	q.Push("C")

	v1, s1 := q.Pop(10 * time.Millisecond)
	require.Equal(t, PopOK, s1)
	assert.Equal(t, "B", v1)

	v2, s2 := q.Pop(10 * time.Millisecond)
	require.Equal(t, PopOK, s2)
	assert.Equal(t, "C", v2)

	assert.EqualValues(t, 1, q.Overflow())
	assert.Equal(t, []string{"A"}, dropped)
}

func TestQueuePopTimeoutWhenEmpty(t *testing.T) {
	q := New[int](4, nil)
	_, status := q.Pop(20 * time.Millisecond)
	assert.Equal(t, PopTimeout, status)
}

func TestQueuePopWakesOnPush(t *testing.T) {
	q := New[int](4, nil)

	done := make(chan struct{})
	var got int
	var status PopStatus
	go func() {
		got, status = q.Pop(2 * time.Second)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	q.Push(42)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Pop did not wake on Push")
	}
	assert.Equal(t, PopOK, status)
	assert.Equal(t, 42, got)
}

func TestQueueCloseWakesBlockedPop(t *testing.T) {
	q := New[int](4, nil)

	done := make(chan struct{})
	var status PopStatus
	go func() {
		_, status = q.Pop(2 * time.Second)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	q.Close()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Pop did not wake on Close")
	}
	assert.Equal(t, PopStopped, status)
}

func TestQueueNoOverflowUnderCapacity(t *testing.T) {
	q := New[int](4, func(int) { t.Fatal("unexpected overflow callback") })
	q.Push(1)
	q.Push(2)
	assert.EqualValues(t, 0, q.Overflow())
	assert.Equal(t, 2, q.Len())
}
