//go:build linux

package enforcer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/result"
	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/spec"
	"github.com/alexespinoza28/offline-leetcode-sub000/pkg/utils/logger"
)

type linuxEnforcer struct {
	cfg Config
}

// New creates the native Linux enforcer.
func New(cfg Config) (Enforcer, error) {
	if cfg.HelperPath == "" {
		cfg.HelperPath = DefaultConfig().HelperPath
	}
	if cfg.ReadBackLimitBytes <= 0 {
		cfg.ReadBackLimitBytes = DefaultConfig().ReadBackLimitBytes
	}
	return &linuxEnforcer{cfg: cfg}, nil
}

func (e *linuxEnforcer) Run(ctx context.Context, rs spec.RunSpec) (result.RunResult, error) {
	if err := validateRunSpec(rs); err != nil {
		return result.RunResult{}, err
	}
	if err := rs.Limits.Validate(); err != nil {
		return result.RunResult{}, err
	}

	req := InitRequest{
		Cmd:        rs.Cmd,
		Env:        rs.Env,
		WorkDir:    rs.WorkDir,
		StdinPath:  rs.StdinPath,
		StdoutPath: rs.StdoutPath,
		StderrPath: rs.StderrPath,
		Limits:     rs.Limits,
	}
	if e.cfg.EnableSeccomp {
		req.SeccompProfile = e.cfg.SeccompProfile
	}
	stdinPipe, err := jsonToPipe(req)
	if err != nil {
		return result.RunResult{}, fmt.Errorf("encode init request: %w", err)
	}
	defer stdinPipe.Close()

	cmd := exec.Command(e.cfg.HelperPath)
	cmd.Stdin = stdinPipe
	// The helper reports setup failures (chdir, rlimits) on its own
	// stderr before stdio is redirected into the scratch files.
	var helperErr bytes.Buffer
	cmd.Stderr = &helperErr
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid:   true,
		Pdeathsig: syscall.SIGKILL,
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		// A helper that cannot even start is a run failure, not a
		// judge fault: the verdict pipeline needs something to report.
		return result.RunResult{
			Status:   result.StatusRE,
			ExitCode: -1,
			Stderr:   fmt.Sprintf("sandbox start failed: %v", err),
		}, nil
	}
	pid := cmd.Process.Pid

	var timedOut, cancelled atomic.Bool
	done := make(chan struct{})
	go func() {
		wallTimer := time.After(time.Duration(rs.Limits.WallClockMs) * time.Millisecond)
		select {
		case <-ctx.Done():
			cancelled.Store(true)
			killProcessGroup(pid)
		case <-wallTimer:
			timedOut.Store(true)
			killProcessGroup(pid)
		case <-done:
		}
	}()

	waitErr := cmd.Wait()
	close(done)

	// Reap any children the target managed to fork.
	killProcessGroup(pid)

	wallMs := time.Since(start).Milliseconds()
	state := cmd.ProcessState
	if state == nil {
		return result.RunResult{}, fmt.Errorf("wait sandbox helper: %w", waitErr)
	}
	ws := unix.WaitStatus(state.Sys().(syscall.WaitStatus))
	cpuMs := cpuTimeMs(state)
	memMB := peakMemoryMB(state)

	res := result.RunResult{
		Status:   deriveStatus(cancelled.Load(), timedOut.Load(), ws, cpuMs, rs.Limits),
		ExitCode: state.ExitCode(),
		TimeMs:   wallMs,
		MemoryMB: memMB,
		Stdout:   readLimitedFile(rs.StdoutPath, e.cfg.ReadBackLimitBytes),
		Stderr:   readLimitedFile(rs.StderrPath, e.cfg.ReadBackLimitBytes),
	}
	if res.Stderr == "" && helperErr.Len() > 0 {
		res.Stderr = strings.TrimSpace(helperErr.String())
	}
	if ws.Signaled() {
		res.Signal = int(ws.Signal())
	}
	if res.Status != result.StatusOK {
		logger.Debug(ctx, "sandboxed run ended abnormally",
			zap.String("submission_id", rs.SubmissionID),
			zap.String("test_id", rs.TestID),
			zap.String("status", string(res.Status)),
			zap.Int("signal", res.Signal),
			zap.Int64("wall_ms", wallMs),
			zap.Int64("cpu_ms", cpuMs))
	}
	return res, nil
}

func validateRunSpec(rs spec.RunSpec) error {
	if rs.WorkDir == "" {
		return fmt.Errorf("work dir is required")
	}
	if len(rs.Cmd) == 0 {
		return fmt.Errorf("command is required")
	}
	if rs.StdoutPath == "" || rs.StderrPath == "" {
		return fmt.Errorf("stdout and stderr paths are required")
	}
	return nil
}

func jsonToPipe(req InitRequest) (io.ReadCloser, error) {
	reader, writer := io.Pipe()
	go func() {
		enc := json.NewEncoder(writer)
		err := enc.Encode(req)
		_ = writer.CloseWithError(err)
	}()
	return reader, nil
}

func killProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}

func cpuTimeMs(state *os.ProcessState) int64 {
	ru, ok := state.SysUsage().(*syscall.Rusage)
	if !ok || ru == nil {
		return 0
	}
	user := time.Duration(ru.Utime.Sec)*time.Second + time.Duration(ru.Utime.Usec)*time.Microsecond
	sys := time.Duration(ru.Stime.Sec)*time.Second + time.Duration(ru.Stime.Usec)*time.Microsecond
	return (user + sys).Milliseconds()
}

// peakMemoryMB reads the peak resident set size from getrusage.
// Best effort: Maxrss is in kilobytes on Linux.
func peakMemoryMB(state *os.ProcessState) int64 {
	ru, ok := state.SysUsage().(*syscall.Rusage)
	if !ok || ru == nil {
		return 0
	}
	return ru.Maxrss / 1024
}

func readLimitedFile(path string, maxBytes int64) string {
	if path == "" {
		return ""
	}
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxBytes))
	if err != nil {
		return ""
	}
	return string(data)
}
