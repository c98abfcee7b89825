//go:build linux

package enforcer

import (
	"golang.org/x/sys/unix"

	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/result"
	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/spec"
)

// deriveStatus maps how the child ended onto a run status. A caller
// abort is checked first: a process we killed because the judge is
// shutting down says nothing about the submission. The wall timeout
// flag wins next: a process we killed for running too long reports
// TLE no matter which signal actually felled it.
//
// Signal mapping:
//
//	SIGXCPU  CPU rlimit hit           -> TLE
//	SIGKILL  kernel OOM / rlimit kill -> MLE
//	SIGXFSZ  output file rlimit hit   -> OLE
//	other    crash (SIGSEGV, SIGABRT, SIGFPE, ...) -> RE
func deriveStatus(cancelled, wallTimedOut bool, ws unix.WaitStatus, cpuMs int64, limits spec.ResourceLimits) result.Status {
	if cancelled {
		return result.StatusIE
	}
	if wallTimedOut {
		return result.StatusTLE
	}
	if ws.Signaled() {
		switch ws.Signal() {
		case unix.SIGXCPU:
			return result.StatusTLE
		case unix.SIGKILL:
			// SIGKILL without a wall timeout is the kernel refusing
			// an allocation, but a process racing the CPU rlimit can
			// also die this way on the second (hard) limit.
			if cpuMs >= limits.CPUTimeMs {
				return result.StatusTLE
			}
			return result.StatusMLE
		case unix.SIGXFSZ:
			return result.StatusOLE
		default:
			return result.StatusRE
		}
	}
	if ws.Exited() && ws.ExitStatus() == 0 {
		return result.StatusOK
	}
	return result.StatusRE
}
