// Package sandbox runs user-submitted Python in a throwaway workspace with
// a wall-clock deadline and resource limits. This is the trust boundary of
// the whole system: code reaching this package is hostile until proven
// boring.
package sandbox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"python-tutor-bot/internal/domain/sandbox"
)

// Config holds executor settings
type Config struct {
	// PythonBin is the interpreter to run, e.g. "python3"
	PythonBin string

	// Timeout is the wall-clock limit per run
	Timeout time.Duration

	// MaxOutputBytes bounds the combined captured output
	MaxOutputBytes int

	// MaxConcurrent caps simultaneous runs across all users
	MaxConcurrent int64

	// MaxCPUSeconds and MaxMemoryMB are enforced via ulimit in the child
	// shell, on top of the wall-clock deadline
	MaxCPUSeconds int
	MaxMemoryMB   int
}

// DefaultConfig returns the reference executor settings
func DefaultConfig() Config {
	return Config{
		PythonBin:      "python3",
		Timeout:        5 * time.Second,
		MaxOutputBytes: 4000,
		MaxConcurrent:  4,
		MaxCPUSeconds:  5,
		MaxMemoryMB:    256,
	}
}

// Executor implements the sandbox runner contract on top of a subprocess
// interpreter
type Executor struct {
	config Config
	sem    *semaphore.Weighted
}

// NewExecutor creates a new sandbox executor
func NewExecutor(config Config) *Executor {
	if config.MaxConcurrent < 1 {
		config.MaxConcurrent = 1
	}
	return &Executor{
		config: config,
		sem:    semaphore.NewWeighted(config.MaxConcurrent),
	}
}

// Run executes code in an isolated workspace. Faults in the submitted code
// end up in the result's stderr; the error return is reserved for host-side
// failures.
func (e *Executor) Run(ctx context.Context, code string) (*sandbox.Result, error) {
	if err := e.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("failed to acquire sandbox slot: %w", err)
	}
	defer e.sem.Release(1)

	runID := uuid.NewString()

	workspace, err := os.MkdirTemp("", "pysandbox-"+runID[:8]+"-")
	if err != nil {
		return nil, fmt.Errorf("failed to create sandbox workspace: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(workspace); err != nil {
			log.Printf("sandbox %s: failed to reclaim workspace: %v", runID, err)
		}
	}()

	script := filepath.Join(workspace, "main.py")
	if err := os.WriteFile(script, []byte(code), 0o600); err != nil {
		return nil, fmt.Errorf("failed to write submission: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, e.config.Timeout)
	defer cancel()

	// -I runs the interpreter isolated from the host environment and user
	// site-packages; -S skips site initialization. CPU and memory caps go
	// through ulimit in the child shell so they bind the whole process.
	shellCmd := fmt.Sprintf("ulimit -t %d; ulimit -v %d; exec %s -I -S main.py",
		e.config.MaxCPUSeconds, e.config.MaxMemoryMB*1024, e.config.PythonBin)

	cmd := exec.CommandContext(runCtx, "sh", "-c", shellCmd)
	cmd.Dir = workspace
	cmd.Env = []string{
		"PATH=/usr/local/bin:/usr/bin:/bin",
		"HOME=" + workspace,
		"TMPDIR=" + workspace,
		"LANG=C.UTF-8",
	}
	// Own process group so the deadline kill reaches grandchildren too
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	// At the deadline, kill the whole group. A detached descendant inherits
	// the output pipes and would otherwise keep Wait blocked until it exits
	// on its own.
	cmd.Cancel = func() error {
		err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		if err == syscall.ESRCH {
			return os.ErrProcessDone
		}
		return err
	}
	// Wait must not linger on pipe ends held by surviving descendants
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err = cmd.Run()
	elapsed := time.Since(start)

	if cmd.Process != nil {
		// Reap descendants that outlived a clean interpreter exit
		syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}

	if runCtx.Err() == context.DeadlineExceeded {
		log.Printf("sandbox %s: timed out after %v", runID, e.config.Timeout)
		return &sandbox.Result{TimedOut: true}, nil
	}

	if err != nil && !errors.Is(err, exec.ErrWaitDelay) {
		// Non-zero exits mean the submitted code failed; its traceback is
		// already in the captured output. ErrWaitDelay means the interpreter
		// exited but a descendant still held the pipes. Anything else is a
		// host-side fault.
		if _, ok := err.(*exec.ExitError); !ok {
			return nil, fmt.Errorf("failed to run interpreter: %w", err)
		}
	}

	log.Printf("sandbox %s: finished in %v (%d bytes)", runID, elapsed, stdout.Len()+stderr.Len())

	result := &sandbox.Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	truncate(result, e.config.MaxOutputBytes)

	return result, nil
}

// truncate cuts the combined output down to the byte budget, stdout first,
// and flags the cut.
func truncate(r *sandbox.Result, budget int) {
	if len(r.Stdout)+len(r.Stderr) <= budget {
		return
	}
	r.Truncated = true
	if len(r.Stdout) > budget {
		r.Stdout = r.Stdout[:budget]
		r.Stderr = ""
		return
	}
	r.Stderr = r.Stderr[:budget-len(r.Stdout)]
}

var _ sandbox.Runner = (*Executor)(nil)
