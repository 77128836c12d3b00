package cli

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAsyncReaderPollIsTimeBoxed(t *testing.T) {
	// Nothing is ever written, so the background read blocks for good
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	a := newAsyncReader(pr)
	h := newInputHandler(a, a.wait)

	start := time.Now()
	for i := 0; i < 5; i++ {
		key, err := h.Poll(10 * time.Millisecond)
		require.NoError(t, err)
		require.Equal(t, KeyNone, key)
	}
	require.Less(t, time.Since(start), 2*time.Second)
}

func TestAsyncReaderDeliversKeys(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	a := newAsyncReader(pr)
	h := newInputHandler(a, a.wait)

	go pw.Write([]byte("x"))
	key, err := h.Poll(5 * time.Second)
	require.NoError(t, err)
	require.Equal(t, KeyOther, key)

	// Nothing follows the key, the next poll still returns on time
	key, err = h.Poll(10 * time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, KeyNone, key)

	go pw.Write([]byte("q"))
	key, err = h.Poll(5 * time.Second)
	require.NoError(t, err)
	require.Equal(t, KeyQuit, key)
}

func TestAsyncReaderReportsClosedInput(t *testing.T) {
	pr, pw := io.Pipe()
	a := newAsyncReader(pr)
	h := newInputHandler(a, a.wait)

	require.NoError(t, pw.Close())
	_, err := h.Poll(5 * time.Second)
	require.ErrorIs(t, err, ErrInput)
	require.ErrorIs(t, err, io.EOF)
}
