//go:build !unix

package cli

import "os"

// newFileInputHandler reads on a background goroutine. A console handle
// signals for key-up, focus and mouse records that a read then skips while
// blocking, so readiness of the handle cannot be trusted here.
func newFileInputHandler(in *os.File) *InputHandler {
	a := newAsyncReader(in)
	return newInputHandler(a, a.wait)
}
