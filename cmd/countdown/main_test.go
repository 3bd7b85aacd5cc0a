package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var stdout, stderr bytes.Buffer
	code := run(ctx, args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		code     int
		expected string
	}{
		{"Counts down minutes and seconds", []string{"--granularity", "5ms", "00:03"}, exitOK, "00:02\n00:01\ndone\n"},
		{"Keeps the hour layout", []string{"--granularity=5ms", "00:00:02"}, exitOK, "00:00:01\ndone\n"},
		{"Zero tick", []string{"--granularity", "5ms", "--zero-tick", "00:02"}, exitOK, "00:01\n00:00\ndone\n"},
		{"Zero duration", []string{"--granularity", "5ms", "00:00"}, exitOK, "done\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code, stdout, _ := runCLI(t, tc.args...)

			assert.Equal(t, tc.code, code)
			assert.Equal(t, tc.expected, stdout)
		})
	}
}

func TestRunRejectsInput(t *testing.T) {
	t.Run("Unsupported format", func(t *testing.T) {
		code, stdout, stderr := runCLI(t, "5:9")

		assert.Equal(t, exitUsage, code)
		assert.Empty(t, stdout)
		assert.Contains(t, stderr, "unsupported time format")
	})

	t.Run("Missing argument", func(t *testing.T) {
		code, _, stderr := runCLI(t)

		assert.Equal(t, exitUsage, code)
		assert.Contains(t, stderr, "Usage: countdown")
	})

	t.Run("Unknown flag", func(t *testing.T) {
		code, _, _ := runCLI(t, "--nope", "00:01")

		assert.Equal(t, exitUsage, code)
	})

	t.Run("Help", func(t *testing.T) {
		code, _, _ := runCLI(t, "--help")

		assert.Equal(t, exitOK, code)
	})
}

func TestRunInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	code := run(ctx, []string{"00:10"}, &stdout, &stderr)

	assert.Equal(t, exitInterrupted, code)
}
