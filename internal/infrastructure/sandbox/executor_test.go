package sandbox

import (
	"context"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"python-tutor-bot/internal/domain/sandbox"
)

func testExecutor(t *testing.T) *Executor {
	t.Helper()
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not installed")
	}
	return NewExecutor(DefaultConfig())
}

func TestRun_CapturesStdout(t *testing.T) {
	e := testExecutor(t)

	result, err := e.Run(context.Background(), "print('hello sandbox')")
	require.NoError(t, err)

	assert.Equal(t, "hello sandbox\n", result.Stdout)
	assert.Empty(t, result.Stderr)
	assert.False(t, result.TimedOut)
	assert.False(t, result.Truncated)
}

func TestRun_EmptyOutput(t *testing.T) {
	e := testExecutor(t)

	result, err := e.Run(context.Background(), "x = 1 + 1")
	require.NoError(t, err)

	assert.True(t, result.Empty())
	assert.False(t, result.TimedOut)
}

func TestRun_SyntaxErrorIsResultNotError(t *testing.T) {
	e := testExecutor(t)

	result, err := e.Run(context.Background(), "def broken(:")
	require.NoError(t, err)

	assert.Contains(t, result.Stderr, "SyntaxError")
}

func TestRun_RuntimeTracebackIsResultNotError(t *testing.T) {
	e := testExecutor(t)

	result, err := e.Run(context.Background(), "1 / 0")
	require.NoError(t, err)

	assert.Contains(t, result.Stderr, "ZeroDivisionError")
}

func TestRun_InfiniteLoopTimesOut(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping timeout test in short mode")
	}
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not installed")
	}

	config := DefaultConfig()
	config.Timeout = 2 * time.Second
	e := NewExecutor(config)

	start := time.Now()
	result, err := e.Run(context.Background(), "while True:\n    pass")
	require.NoError(t, err)

	assert.True(t, result.TimedOut)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestRun_DetachedChildCannotHoldPastDeadline(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping timeout test in short mode")
	}
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not installed")
	}

	config := DefaultConfig()
	config.Timeout = 1 * time.Second
	e := NewExecutor(config)

	// The detached sleep inherits the output pipes; the deadline kill must
	// take out the whole process group, not just the interpreter
	code := "import subprocess\n" +
		"subprocess.Popen(['sleep', '30'])\n" +
		"while True:\n" +
		"    pass\n"

	start := time.Now()
	result, err := e.Run(context.Background(), code)
	require.NoError(t, err)

	assert.True(t, result.TimedOut)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestRun_DetachedChildAfterCleanExitDoesNotBlock(t *testing.T) {
	e := testExecutor(t)

	code := "import subprocess\n" +
		"subprocess.Popen(['sleep', '30'])\n" +
		"print('done')\n"

	start := time.Now()
	result, err := e.Run(context.Background(), code)
	require.NoError(t, err)

	assert.Contains(t, result.Stdout, "done")
	assert.False(t, result.TimedOut)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestRun_OversizedOutputIsTruncated(t *testing.T) {
	config := DefaultConfig()
	config.MaxOutputBytes = 100
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not installed")
	}
	e := NewExecutor(config)

	result, err := e.Run(context.Background(), "print('x' * 10000)")
	require.NoError(t, err)

	assert.True(t, result.Truncated)
	assert.LessOrEqual(t, len(result.Stdout)+len(result.Stderr), 100)
}

func TestRun_IsolatedFromHostEnvironment(t *testing.T) {
	t.Setenv("SANDBOX_SECRET", "leaky")
	e := testExecutor(t)

	result, err := e.Run(context.Background(), "import os; print(os.environ.get('SANDBOX_SECRET'))")
	require.NoError(t, err)

	assert.Equal(t, "None\n", result.Stdout)
}

func TestTruncate(t *testing.T) {
	t.Run("under budget untouched", func(t *testing.T) {
		r := &sandbox.Result{Stdout: "abc", Stderr: "de"}
		truncate(r, 10)
		assert.Equal(t, "abc", r.Stdout)
		assert.Equal(t, "de", r.Stderr)
		assert.False(t, r.Truncated)
	})

	t.Run("stdout eats the whole budget", func(t *testing.T) {
		r := &sandbox.Result{Stdout: strings.Repeat("a", 20), Stderr: "err"}
		truncate(r, 10)
		assert.Len(t, r.Stdout, 10)
		assert.Empty(t, r.Stderr)
		assert.True(t, r.Truncated)
	})

	t.Run("stderr takes the remainder", func(t *testing.T) {
		r := &sandbox.Result{Stdout: "abcd", Stderr: strings.Repeat("e", 20)}
		truncate(r, 10)
		assert.Equal(t, "abcd", r.Stdout)
		assert.Len(t, r.Stderr, 6)
		assert.True(t, r.Truncated)
	})
}
