package cli

import (
	"io"
	"time"
)

type readResult struct {
	data []byte
	err  error
}

// asyncReader moves blocking reads off the render loop. One goroutine reads
// for the life of the process; wait hands its chunks over with a timeout.
type asyncReader struct {
	results chan readResult
	pending []byte
	err     error
}

func newAsyncReader(r io.Reader) *asyncReader {
	a := &asyncReader{results: make(chan readResult, 1)}
	go a.readLoop(r)
	return a
}

func (a *asyncReader) readLoop(r io.Reader) {
	buf := make([]byte, inputBufferSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			a.results <- readResult{data: append([]byte(nil), buf[:n]...)}
		}
		if err != nil {
			a.results <- readResult{err: err}
			return
		}
	}
}

// wait reports whether Read has something to return, waiting at most timeout.
func (a *asyncReader) wait(timeout time.Duration) (bool, error) {
	if len(a.pending) > 0 || a.err != nil {
		return true, nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-a.results:
		a.take(res)
		return true, nil
	case <-timer.C:
		return false, nil
	}
}

// Read returns buffered input without blocking.
func (a *asyncReader) Read(p []byte) (int, error) {
	if len(a.pending) == 0 && a.err == nil {
		select {
		case res := <-a.results:
			a.take(res)
		default:
			return 0, nil
		}
	}
	if len(a.pending) > 0 {
		n := copy(p, a.pending)
		a.pending = a.pending[n:]
		return n, nil
	}
	return 0, a.err
}

func (a *asyncReader) take(res readResult) {
	a.pending = res.data
	if res.err != nil {
		a.err = res.err
	}
}
