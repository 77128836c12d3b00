// Package cli runs the PurfectClock face inside a real terminal.
//
// It owns the host terminal for the lifetime of the clock: raw mode, the
// alternate screen, a hidden cursor, key input and the output stream. The
// geometry itself lives in the purfectclock package; this package only
// samples the time, paints frames and watches for the quit key.
//
// # Basic Usage
//
//	import "github.com/phroun/purfectclock/cli"
//
//	term, err := cli.New(cli.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Enter raw mode and the alternate screen
//	if err := term.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer term.Stop()
//
//	runner, err := cli.NewRunner(term, term.Input(), cli.RunOptions{
//	    AspectRatio: 0.6,
//	    Theme:       purfectclock.DefaultTheme(),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = runner.Run(ctx)
//
// # Keys
//
// Only "q" quits. Everything else, including escape sequences from arrow,
// function and keypad keys, is read and dropped.
//
// # Architecture
//
// The package consists of four main components:
//
//   - Terminal: raw-mode session over stdin/stdout, restored exactly once by Stop
//   - InputHandler: time-boxed key polling with an escape-sequence parser
//   - Renderer: writes canvas cells as ANSI text, only re-sending cells that changed
//   - Runner: the single-threaded sample, paint, poll loop
package cli
