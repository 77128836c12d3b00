package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListThemes(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"--list-themes"}, &stdout, &stderr)
	require.Equal(t, 0, code)
	require.Equal(t, []string{"default", "rose_pine", "rose_pine_dawn", "rose_pine_moon"},
		strings.Fields(stdout.String()))
	require.Empty(t, stderr.String())
}

func TestHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"--help"}, &stdout, &stderr)
	require.Equal(t, 0, code)
	require.Contains(t, stdout.String(), "purfectclock")
	require.Contains(t, stdout.String(), "rose_pine_dawn")
}

func TestNonNumericAspectRatio(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"wide"}, &stdout, &stderr)
	require.NotZero(t, code)
	require.NotEmpty(t, stderr.String())
}

func TestMissingAspectRatio(t *testing.T) {
	for _, k := range []string{"PURFECTCLOCK_CONFIG", "PURFECTCLOCK_ASPECT_RATIO"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	var stdout, stderr bytes.Buffer

	code := run(nil, &stdout, &stderr)
	require.Equal(t, 1, code)
	require.Contains(t, stderr.String(), "aspect ratio is required")
}

func TestZeroAspectRatio(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"0"}, &stdout, &stderr)
	require.Equal(t, 1, code)
	require.Contains(t, stderr.String(), "must be a positive number")
	require.NotContains(t, stderr.String(), "required")
}

func TestBadConfigFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	path := filepath.Join(t.TempDir(), "missing.yaml")

	code := run([]string{"--config", path, "0.5"}, &stdout, &stderr)
	require.Equal(t, 1, code)
	require.Contains(t, stderr.String(), "missing.yaml")
}

func TestRequiresTerminal(t *testing.T) {
	if f, err := os.Open(os.DevNull); err == nil {
		// Make sure stdin is not a terminal even when run interactively
		old := os.Stdin
		os.Stdin = f
		t.Cleanup(func() {
			os.Stdin = old
			f.Close()
		})
	}
	var stdout, stderr bytes.Buffer

	code := run([]string{"0.5"}, &stdout, &stderr)
	require.Equal(t, 1, code)
	require.Contains(t, stderr.String(), "not a terminal")
}
