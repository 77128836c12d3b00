//go:build unix

package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// newFileInputHandler polls the descriptor directly, so reads never block.
func newFileInputHandler(in *os.File) *InputHandler {
	return newInputHandler(in, func(timeout time.Duration) (bool, error) {
		return waitReadable(in, timeout)
	})
}

// waitReadable blocks until f has input or timeout elapses.
func waitReadable(f *os.File, timeout time.Duration) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(f.Fd()), Events: unix.POLLIN}}

	n, err := unix.Poll(fds, int(timeout/time.Millisecond))
	if errors.Is(err, unix.EINTR) {
		// Interrupted by a signal such as SIGWINCH, the next frame picks it up
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	if fds[0].Revents&(unix.POLLERR|unix.POLLNVAL) != 0 {
		return false, fmt.Errorf("poll %s: revents %#x", f.Name(), fds[0].Revents)
	}
	// POLLIN or POLLHUP, the read reports which
	return true, nil
}
