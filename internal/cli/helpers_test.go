package cli

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/isotower/pkg/diagram"
	isoio "github.com/matzehuels/isotower/pkg/io"
)

// captureOutput redirects user-facing output for the rest of the test.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	oldOut, oldErr := stdout, stderr
	stdout, stderr = &buf, io.Discard
	t.Cleanup(func() { stdout, stderr = oldOut, oldErr })
	return &buf
}

// isolateCache points the file cache at a temporary directory.
func isolateCache(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)
	return filepath.Join(dir, appName)
}

// writeSample writes the sample config in the format implied by name.
func writeSample(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := isoio.Export(diagram.Sample(), path); err != nil {
		t.Fatalf("Export: %v", err)
	}
	return path
}

// runCLI executes the root command with args.
func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, log.DebugLevel)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.Execute()
}
