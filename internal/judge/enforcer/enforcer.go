// Package enforcer runs untrusted commands under kernel-enforced
// resource limits. It spawns the sandbox-init helper in a fresh
// process group, the helper applies rlimits and stdio redirection
// before exec'ing the target, and the enforcer supervises the wall
// clock from outside.
package enforcer

import (
	"context"

	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/result"
	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/spec"
)

// Enforcer executes one sandboxed task to completion and reports how
// it ended. The returned error is reserved for faults of the enforcer
// itself; anything the child process does wrong is a Status on the
// RunResult, not an error.
type Enforcer interface {
	Run(ctx context.Context, rs spec.RunSpec) (result.RunResult, error)
}

// Config holds enforcer settings.
type Config struct {
	// HelperPath is the sandbox-init binary applying limits pre-exec.
	HelperPath string `yaml:"helperPath" json:"helper_path"`

	// ReadBackLimitBytes caps how much captured stdout/stderr is
	// loaded back into memory per stream. The kernel fsize limit
	// bounds the files themselves.
	ReadBackLimitBytes int64 `yaml:"readBackLimitBytes" json:"read_back_limit_bytes"`

	// EnableSeccomp makes the helper load SeccompProfile before exec.
	EnableSeccomp  bool   `yaml:"enableSeccomp" json:"enable_seccomp"`
	SeccompProfile string `yaml:"seccompProfile" json:"seccomp_profile"`
}

// DefaultConfig returns enforcer settings with a 1 MiB read-back cap.
func DefaultConfig() Config {
	return Config{
		HelperPath:         "sandbox-init",
		ReadBackLimitBytes: 1 << 20,
	}
}

// InitRequest is the handshake decoded by the sandbox-init helper
// from its stdin. The helper applies everything here before exec'ing
// Cmd, so by the time the target runs every limit is already live.
type InitRequest struct {
	Cmd        []string            `json:"cmd"`
	Env        []string            `json:"env"`
	WorkDir    string              `json:"work_dir"`
	StdinPath  string              `json:"stdin_path,omitempty"`
	StdoutPath string              `json:"stdout_path"`
	StderrPath string              `json:"stderr_path"`
	Limits     spec.ResourceLimits `json:"limits"`

	// SeccompProfile is an optional syscall filter description loaded
	// by the helper right before exec.
	SeccompProfile string `json:"seccomp_profile,omitempty"`
}
