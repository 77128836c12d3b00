package cli

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// scriptedReader hands out one chunk per Read.
type scriptedReader struct {
	chunks []string
}

func (s *scriptedReader) Read(p []byte) (int, error) {
	if len(s.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, s.chunks[0])
	s.chunks = s.chunks[1:]
	return n, nil
}

func (s *scriptedReader) ready(time.Duration) (bool, error) {
	return len(s.chunks) > 0, nil
}

func newScriptedHandler(chunks ...string) *InputHandler {
	r := &scriptedReader{chunks: chunks}
	return newInputHandler(r, r.ready)
}

func TestPollQuit(t *testing.T) {
	h := newScriptedHandler("q")

	key, err := h.Poll(time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, KeyQuit, key)
}

func TestPollNothingPending(t *testing.T) {
	h := newScriptedHandler()

	key, err := h.Poll(time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, KeyNone, key)
}

func TestPollOtherKeys(t *testing.T) {
	for _, in := range []string{"x", "Q", " ", "\r", "\x03", "hello"} {
		h := newScriptedHandler(in)
		key, err := h.Poll(time.Millisecond)
		require.NoError(t, err)
		require.Equal(t, KeyOther, key, "input %q", in)
	}
}

func TestPollQuitAmongOtherInput(t *testing.T) {
	h := newScriptedHandler("abq")

	key, err := h.Poll(time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, KeyQuit, key)
}

func TestEscapeSequencesNeverQuit(t *testing.T) {
	sequences := []string{
		"\x1bOq",       // keypad 1 in application mode
		"\x1b[A",       // up
		"\x1b[1;5q",    // CSI ending in q
		"\x1b[15~",     // F5
		"\x1bq",        // Alt+q
		"\x1b\x1bOq",   // ESC then keypad
		"\x1b[200~abc", // bracketed paste start plus text
	}
	for _, seq := range sequences {
		h := newScriptedHandler(seq)
		key, err := h.Poll(time.Millisecond)
		require.NoError(t, err)
		require.Equal(t, KeyOther, key, "sequence %q", seq)
	}
}

func TestEscapeSequenceThenQuit(t *testing.T) {
	h := newScriptedHandler("\x1b[Aq")

	key, err := h.Poll(time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, KeyQuit, key)
}

func TestEscapeSequenceSplitAcrossReads(t *testing.T) {
	h := newScriptedHandler("\x1bO", "q")

	key, err := h.Poll(time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, KeyOther, key)

	key, err = h.Poll(time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, KeyOther, key, "tail of ESC O q")
}

func TestLoneEscapeExpires(t *testing.T) {
	h := newScriptedHandler("\x1b", "q")
	now := time.Unix(0, 0)
	h.now = func() time.Time { return now }

	key, err := h.Poll(time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, KeyOther, key)

	now = now.Add(time.Second)
	key, err = h.Poll(time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, KeyQuit, key)
}

func TestPollErrors(t *testing.T) {
	boom := errors.New("boom")
	h := newInputHandler(strings.NewReader(""), func(time.Duration) (bool, error) {
		return false, boom
	})
	_, err := h.Poll(time.Millisecond)
	require.ErrorIs(t, err, ErrInput)
	require.ErrorIs(t, err, boom)

	// Readable but at EOF means the input went away
	h = newInputHandler(strings.NewReader(""), func(time.Duration) (bool, error) {
		return true, nil
	})
	_, err = h.Poll(time.Millisecond)
	require.ErrorIs(t, err, ErrInput)
	require.ErrorIs(t, err, io.EOF)
}

func TestParseEscapeSequence(t *testing.T) {
	tests := []struct {
		seq      string
		consumed int
		complete bool
	}{
		{"\x1b", 0, false},
		{"\x1b[", 0, false},
		{"\x1b[1;5", 0, false},
		{"\x1b[1;5A", 6, true},
		{"\x1bO", 0, false},
		{"\x1bOP", 3, true},
		{"\x1ba", 2, true},
		{"\x1b\x1b", 1, true},
		{"\x1b[\x01", 2, true},
	}
	for _, tt := range tests {
		consumed, complete := parseEscapeSequence([]byte(tt.seq))
		require.Equal(t, tt.consumed, consumed, "%q", tt.seq)
		require.Equal(t, tt.complete, complete, "%q", tt.seq)
	}
}

func TestKeyString(t *testing.T) {
	require.Equal(t, "quit", KeyQuit.String())
	require.Equal(t, "ignored", KeyOther.String())
	require.Equal(t, "none", KeyNone.String())
}
