package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// resetFlags puts the global flags back to their defaults.
func resetFlags() {
	verbose = false
	quiet = false
	jsonOut = false
	inspectDirect = false
	verifyDirect = false
	recoverDirect = false
	recoverOffset = false
	restoreForce = false
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	done := make(chan []byte)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		done <- buf.Bytes()
	}()

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout
	return string(<-done), fnErr
}

// createJournal runs the create command for a new journal in a temp dir.
func createJournal(t *testing.T, extra ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.jrnl")
	cmd := newCreateCmd()
	cmd.SetArgs(append([]string{path}, extra...))
	_, err := captureOutput(t, cmd.Execute)
	require.NoError(t, err)
	return path
}

// assertJSON decodes output into v
func assertJSON(t *testing.T, output string, v any) {
	t.Helper()
	if err := json.Unmarshal([]byte(output), v); err != nil {
		t.Fatalf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}
