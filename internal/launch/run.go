package launch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/vk/nerbox/internal/ctxlog"
)

// Run starts cmd and waits for it to finish. The child inherits this
// process's stdio, so server logs and tagged output land on the caller's
// terminal. The returned int is the child's exit code and is only
// meaningful when the error is nil.
func Run(ctx context.Context, cmd *Command) (int, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Info("🚀 Launching toolkit.", "command", cmd.String(), "dir", cmd.Dir)

	child := exec.Command(cmd.Bin, cmd.Args...)
	child.Dir = cmd.Dir
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr
	// Own process group, so cancellation takes down the whole JVM tree.
	child.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := child.Start(); err != nil {
		return 0, fmt.Errorf("starting %q: %w", cmd.Bin, err)
	}

	done := make(chan error, 1)
	go func() {
		done <- child.Wait()
	}()

	select {
	case <-ctx.Done():
		if child.Process != nil {
			_ = syscall.Kill(-child.Process.Pid, syscall.SIGKILL)
		}
		<-done
		return 0, ctx.Err()
	case err := <-done:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		if err != nil {
			return 0, fmt.Errorf("waiting for %q: %w", cmd.Bin, err)
		}
		return 0, nil
	}
}
